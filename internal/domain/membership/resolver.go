package membership

import (
	"fmt"
	"math"
)

// Status is a user's membership, recomputed on every request.
type Status struct {
	Level          TierKey  `json:"level"`
	LevelName      string   `json:"level_name"`
	Emoji          string   `json:"emoji"`
	TotalInvested  float64  `json:"total_invested"`
	CurrentMin     float64  `json:"current_min"`
	CurrentMax     *float64 `json:"current_max"`
	NextLevel      *TierKey `json:"next_level"`
	NextLevelName  *string  `json:"next_level_name"`
	AmountToNext   *float64 `json:"amount_to_next"`
	AvailablePlans []Plan   `json:"available_plans"`
}

// IsMember reports whether the status holds any catalog tier.
func (s Status) IsMember() bool { return s.Level != TierNone }

// Resolve maps a cumulative invested amount to a tier and the progress toward the next one.
// Lower bounds are inclusive; ranges are contiguous so no upper bound is checked.
func (e *Engine) Resolve(totalInvested float64) Status {
	if math.IsNaN(totalInvested) || totalInvested < 0 {
		panic(fmt.Sprintf("membership: invalid total invested %v", totalInvested))
	}

	current, ok := e.tierFor(totalInvested)
	if !ok {
		lowest := e.catalog.Lowest()
		return Status{
			Level:          TierNone,
			LevelName:      noneName,
			Emoji:          noneEmoji,
			TotalInvested:  totalInvested,
			CurrentMin:     0,
			CurrentMax:     amount(lowest.MinAmount - 1),
			NextLevel:      keyPtr(lowest.Key),
			NextLevelName:  strPtr(lowest.Name),
			AmountToNext:   amount(lowest.MinAmount - totalInvested),
			AvailablePlans: []Plan{},
		}
	}

	status := Status{
		Level:          current.Key,
		LevelName:      current.Name,
		Emoji:          current.Emoji,
		TotalInvested:  totalInvested,
		CurrentMin:     current.MinAmount,
		CurrentMax:     current.MaxAmount,
		AvailablePlans: e.PlansFor(current.Key),
	}
	if next, ok := e.catalog.Next(current); ok {
		status.NextLevel = keyPtr(next.Key)
		status.NextLevelName = strPtr(next.Name)
		status.AmountToNext = amount(next.MinAmount - totalInvested)
	}
	return status
}

func (e *Engine) tierFor(total float64) (Tier, bool) {
	tiers := e.catalog.tiers
	for i := len(tiers) - 1; i >= 0; i-- {
		if total >= tiers[i].MinAmount {
			return tiers[i].clone(), true
		}
	}
	return Tier{}, false
}

func keyPtr(k TierKey) *TierKey { return &k }
func strPtr(s string) *string    { return &s }
