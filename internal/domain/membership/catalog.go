package membership

import (
	"fmt"
	"strings"
)

// TierKey identifies a membership tier.
type TierKey string

// Tier keys (single source of truth)
const (
	TierNone    TierKey = "none"
	TierClub    TierKey = "club"
	TierPremium TierKey = "premium"
	TierVIP     TierKey = "vip"
	TierElite   TierKey = "elite"
)

const (
	noneName  = "Not a Member"
	noneEmoji = "📊"
)

// PlanRate is one row of a tier's static rate table.
type PlanRate struct {
	TermDays int     `json:"term_days"`
	Rate     float64 `json:"rate"`
}

type Tier struct {
	Key              TierKey    `json:"key"`
	Rank             int        `json:"rank"`
	Name             string     `json:"name"`
	Emoji            string     `json:"emoji"`
	Benefits         string     `json:"benefits"`
	MinAmount        float64    `json:"min_amount"`
	MaxAmount        *float64   `json:"max_amount"` // nil = unbounded
	MaxPerInvestment float64    `json:"max_per_investment"`
	Rates            []PlanRate `json:"-"`
}

// Catalog is the ordered, immutable tier table. Build it with NewCatalog.
type Catalog struct {
	tiers []Tier
	byKey map[TierKey]int
}

// NewCatalog copies and validates the given tiers. Tiers must be passed in rank order.
func NewCatalog(tiers []Tier) (Catalog, error) {
	if len(tiers) == 0 {
		return Catalog{}, fmt.Errorf("catalog has no tiers")
	}

	c := Catalog{
		tiers: make([]Tier, len(tiers)),
		byKey: make(map[TierKey]int, len(tiers)),
	}
	for i, t := range tiers {
		c.tiers[i] = t.clone()
	}

	for i, t := range c.tiers {
		if strings.TrimSpace(string(t.Key)) == "" || t.Key == TierNone {
			return Catalog{}, fmt.Errorf("tier %d: invalid key %q", i, t.Key)
		}
		if _, dup := c.byKey[t.Key]; dup {
			return Catalog{}, fmt.Errorf("tier %q: duplicate key", t.Key)
		}
		c.byKey[t.Key] = i

		if t.Rank != i+1 {
			return Catalog{}, fmt.Errorf("tier %q: rank %d, want %d", t.Key, t.Rank, i+1)
		}
		if i == 0 && t.MinAmount <= 0 {
			return Catalog{}, fmt.Errorf("tier %q: lowest tier needs a positive minimum", t.Key)
		}
		if t.MaxPerInvestment < t.MinAmount {
			return Catalog{}, fmt.Errorf("tier %q: max per investment below tier minimum", t.Key)
		}

		last := i == len(c.tiers)-1
		switch {
		case last && t.MaxAmount != nil:
			return Catalog{}, fmt.Errorf("tier %q: top tier must be unbounded", t.Key)
		case !last && t.MaxAmount == nil:
			return Catalog{}, fmt.Errorf("tier %q: only the top tier may be unbounded", t.Key)
		case !last && *t.MaxAmount+1 != c.tiers[i+1].MinAmount:
			return Catalog{}, fmt.Errorf("tier %q: range ends at %.2f but %q starts at %.2f",
				t.Key, *t.MaxAmount, c.tiers[i+1].Key, c.tiers[i+1].MinAmount)
		}

		if err := validateRates(i, t); err != nil {
			return Catalog{}, err
		}
		if i > 0 && lowestRate(t) <= highestRate(c.tiers[i-1]) {
			return Catalog{}, fmt.Errorf("tier %q: rates must exceed those of %q", t.Key, c.tiers[i-1].Key)
		}
	}

	return c, nil
}

func validateRates(i int, t Tier) error {
	want := 2
	if i == 0 {
		want = 1
	}
	if len(t.Rates) != want {
		return fmt.Errorf("tier %q: %d plans, want %d", t.Key, len(t.Rates), want)
	}
	for j, r := range t.Rates {
		if r.TermDays <= 0 || r.Rate < 0 {
			return fmt.Errorf("tier %q: invalid plan %+v", t.Key, r)
		}
		if j > 0 {
			prev := t.Rates[j-1]
			if r.TermDays <= prev.TermDays || r.Rate <= prev.Rate {
				return fmt.Errorf("tier %q: longer terms must carry strictly higher rates", t.Key)
			}
		}
	}
	return nil
}

func (t Tier) clone() Tier {
	t.Rates = append([]PlanRate(nil), t.Rates...)
	if t.MaxAmount != nil {
		t.MaxAmount = amount(*t.MaxAmount)
	}
	return t
}

func lowestRate(t Tier) float64  { return t.Rates[0].Rate }
func highestRate(t Tier) float64 { return t.Rates[len(t.Rates)-1].Rate }

// MustCatalog is NewCatalog for compiled-in tables.
func MustCatalog(tiers []Tier) Catalog {
	c, err := NewCatalog(tiers)
	if err != nil {
		panic("membership: invalid catalog: " + err.Error())
	}
	return c
}

// Tiers returns a copy of the tiers in rank order.
func (c Catalog) Tiers() []Tier {
	out := make([]Tier, len(c.tiers))
	for i, t := range c.tiers {
		out[i] = t.clone()
	}
	return out
}

func (c Catalog) Lowest() Tier { return c.tiers[0].clone() }

func (c Catalog) Top() Tier { return c.tiers[len(c.tiers)-1].clone() }

// Tier looks a tier up by key. TierNone is not a catalog row.
func (c Catalog) Tier(key TierKey) (Tier, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Tier{}, false
	}
	return c.tiers[i].clone(), true
}

// Next returns the tier ranked immediately above t.
func (c Catalog) Next(t Tier) (Tier, bool) {
	if t.Rank < 1 || t.Rank >= len(c.tiers) {
		return Tier{}, false
	}
	return c.tiers[t.Rank].clone(), true
}

func amount(v float64) *float64 { return &v }

// DefaultTiers is the production tier table.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Key:              TierClub,
			Rank:             1,
			Name:             "Club Member",
			Emoji:            "🥉",
			Benefits:         "Entry-level membership with solid returns",
			MinAmount:        20000,
			MaxAmount:        amount(49999),
			MaxPerInvestment: 50000,
			Rates:            []PlanRate{{TermDays: 365, Rate: 6.0}},
		},
		{
			Key:              TierPremium,
			Rank:             2,
			Name:             "Premium Member",
			Emoji:            "🥈",
			Benefits:         "Enhanced returns with flexible lock periods",
			MinAmount:        50000,
			MaxAmount:        amount(99999),
			MaxPerInvestment: 100000,
			Rates:            []PlanRate{{TermDays: 180, Rate: 8.0}, {TermDays: 365, Rate: 10.0}},
		},
		{
			Key:              TierVIP,
			Rank:             3,
			Name:             "VIP Member",
			Emoji:            "🥇",
			Benefits:         "Premium rates with exclusive VIP treatment",
			MinAmount:        100000,
			MaxAmount:        amount(249999),
			MaxPerInvestment: 250000,
			Rates:            []PlanRate{{TermDays: 180, Rate: 12.0}, {TermDays: 365, Rate: 14.0}},
		},
		{
			Key:              TierElite,
			Rank:             4,
			Name:             "Elite Member",
			Emoji:            "💎",
			Benefits:         "Highest rates with unlimited investment capacity",
			MinAmount:        250000,
			MaxPerInvestment: 250000,
			Rates:            []PlanRate{{TermDays: 180, Rate: 16.0}, {TermDays: 365, Rate: 20.0}},
		},
	}
}

// DefaultCatalog returns the validated production catalog.
func DefaultCatalog() Catalog {
	return MustCatalog(DefaultTiers())
}
