package membership

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Reason names a rejection cause. Values are part of the public API and must not change.
type Reason string

const (
	BelowMinimumTier Reason = "BelowMinimumTier"
	NoMatchingPlan   Reason = "NoMatchingPlan"
	BelowPlanMinimum Reason = "BelowPlanMinimum"
	AbovePlanMaximum Reason = "AbovePlanMaximum"
)

// RejectionError is an expected, data-dependent refusal of an investment.
type RejectionError struct {
	Reason Reason
	Detail string
}

func (e *RejectionError) Error() string {
	return string(e.Reason) + ": " + e.Detail
}

type InvestmentRequest struct {
	Amount     float64
	Rate       float64
	TermMonths int
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a whole-dollar amount with thousands separators, e.g. "$20,000".
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("$%d", int64(math.Round(v)))
}

// Validate checks a proposed investment against the caller's membership status.
// It returns the matched plan, or a *RejectionError.
func (e *Engine) Validate(status Status, req InvestmentRequest) (Plan, error) {
	if !status.IsMember() {
		lowest := e.catalog.Lowest()
		return Plan{}, &RejectionError{
			Reason: BelowMinimumTier,
			Detail: fmt.Sprintf("Minimum investment required is %s to become a %s",
				FormatAmount(lowest.MinAmount), lowest.Name),
		}
	}

	plan, ok := matchPlan(status.AvailablePlans, req)
	if !ok {
		return Plan{}, &RejectionError{
			Reason: NoMatchingPlan,
			Detail: "Invalid investment plan for your membership level",
		}
	}

	if req.Amount < plan.MinAmount {
		return Plan{}, &RejectionError{
			Reason: BelowPlanMinimum,
			Detail: "Minimum investment for your membership level is " + FormatAmount(plan.MinAmount),
		}
	}
	if req.Amount > plan.MaxAmount {
		return Plan{}, &RejectionError{
			Reason: AbovePlanMaximum,
			Detail: "Maximum investment per transaction is " + FormatAmount(plan.MaxAmount),
		}
	}

	return plan, nil
}

// matchPlan requires an exact rate and term match. Months are compared in the
// legacy unit plans are displayed in, so 6 selects the 180-day plan and 12 the 365-day one.
func matchPlan(plans []Plan, req InvestmentRequest) (Plan, bool) {
	for _, p := range plans {
		if p.Rate == req.Rate && LegacyMonths(p.TermDays) == req.TermMonths {
			return p, true
		}
	}
	return Plan{}, false
}
