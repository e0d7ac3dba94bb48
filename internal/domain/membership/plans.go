package membership

import (
	"fmt"
	"strconv"
)

const daysPerLegacyMonth = 30

type Plan struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	MembershipLevel TierKey `json:"membership_level"`
	Rate            float64 `json:"rate"` // annual percentage yield
	TermDays        int     `json:"term_days"`
	Term            int     `json:"term"` // legacy months
	MinAmount       float64 `json:"min_amount"`
	MaxAmount       float64 `json:"max_amount"`
	IsActive        bool    `json:"is_active"`
}

// Engine derives tiers, plans and investment decisions from an immutable Catalog.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog Catalog
}

func NewEngine(c Catalog) *Engine {
	if len(c.tiers) == 0 {
		panic("membership: engine needs a catalog built with NewCatalog")
	}
	return &Engine{catalog: c}
}

func (e *Engine) Catalog() Catalog { return e.catalog }

// PlansFor returns the plans offered at a tier, shortest term first.
// An unknown key means the caller and the catalog disagree, which is a bug.
func (e *Engine) PlansFor(key TierKey) []Plan {
	if key == TierNone {
		return []Plan{}
	}
	t, ok := e.catalog.Tier(key)
	if !ok {
		panic(fmt.Sprintf("membership: unknown tier %q", key))
	}

	plans := make([]Plan, 0, len(t.Rates))
	for _, r := range t.Rates {
		plans = append(plans, Plan{
			ID:              fmt.Sprintf("%s_%d", t.Key, r.TermDays),
			Name:            fmt.Sprintf("%s %s - %s", t.Emoji, t.Name, termLabel(r.TermDays)),
			Description:     fmt.Sprintf("%s%% APY locked for %s", formatRate(r.Rate), termPhrase(r.TermDays)),
			MembershipLevel: t.Key,
			Rate:            r.Rate,
			TermDays:        r.TermDays,
			Term:            LegacyMonths(r.TermDays),
			MinAmount:       t.MinAmount,
			MaxAmount:       t.MaxPerInvestment,
			IsActive:        true,
		})
	}
	return plans
}

// AllPlans lists every tier's plans in rank order.
func (e *Engine) AllPlans() []Plan {
	var all []Plan
	for _, t := range e.catalog.tiers {
		all = append(all, e.PlansFor(t.Key)...)
	}
	return all
}

// LegacyMonths converts a lock period to the month count older clients send and display.
func LegacyMonths(termDays int) int {
	return termDays / daysPerLegacyMonth
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

func termLabel(days int) string {
	switch days {
	case 365:
		return "1 Year"
	case 180:
		return "6 Months"
	}
	return fmt.Sprintf("%d Days", days)
}

func termPhrase(days int) string {
	switch days {
	case 365:
		return "1 year"
	case 180:
		return "6 months"
	}
	return fmt.Sprintf("%d days", days)
}
