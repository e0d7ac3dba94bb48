package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := NewCatalog(DefaultTiers())
	require.NoError(t, err)

	tiers := c.Tiers()
	require.Len(t, tiers, 4)
	assert.Equal(t, TierClub, c.Lowest().Key)
	assert.Equal(t, TierElite, c.Top().Key)
	assert.Nil(t, c.Top().MaxAmount)

	// contiguous, inclusive upper bounds
	for i := 0; i < len(tiers)-1; i++ {
		require.NotNil(t, tiers[i].MaxAmount)
		assert.Equal(t, tiers[i+1].MinAmount, *tiers[i].MaxAmount+1, tiers[i].Key)
		assert.Equal(t, i+1, tiers[i].Rank)
	}
}

func TestCatalogNext(t *testing.T) {
	c := DefaultCatalog()

	club, ok := c.Tier(TierClub)
	require.True(t, ok)
	next, ok := c.Next(club)
	require.True(t, ok)
	assert.Equal(t, TierPremium, next.Key)

	_, ok = c.Next(c.Top())
	assert.False(t, ok)

	_, ok = c.Tier(TierNone)
	assert.False(t, ok)
}

func TestCatalogIsImmutable(t *testing.T) {
	input := DefaultTiers()
	c := MustCatalog(input)

	input[0].MinAmount = 1
	input[1].Rates[0].Rate = 99

	got := c.Tiers()
	got[2].Rates[1].Rate = 0
	*got[0].MaxAmount = 5

	club, _ := c.Tier(TierClub)
	assert.Equal(t, 20000.0, club.MinAmount)
	assert.Equal(t, 49999.0, *club.MaxAmount)
	premium, _ := c.Tier(TierPremium)
	assert.Equal(t, 8.0, premium.Rates[0].Rate)
	vip, _ := c.Tier(TierVIP)
	assert.Equal(t, 14.0, vip.Rates[1].Rate)
}

func TestNewCatalogRejectsBrokenTables(t *testing.T) {
	cases := map[string]func(tiers []Tier) []Tier{
		"empty": func([]Tier) []Tier { return nil },
		"gap between tiers": func(tiers []Tier) []Tier {
			tiers[1].MinAmount = 60000
			return tiers
		},
		"overlapping tiers": func(tiers []Tier) []Tier {
			tiers[0].MaxAmount = amount(59999)
			return tiers
		},
		"bounded top tier": func(tiers []Tier) []Tier {
			tiers[3].MaxAmount = amount(1_000_000)
			return tiers
		},
		"unbounded middle tier": func(tiers []Tier) []Tier {
			tiers[2].MaxAmount = nil
			return tiers
		},
		"ranks out of order": func(tiers []Tier) []Tier {
			tiers[1].Rank, tiers[2].Rank = 3, 2
			return tiers
		},
		"duplicate key": func(tiers []Tier) []Tier {
			tiers[2].Key = TierPremium
			return tiers
		},
		"none as catalog row": func(tiers []Tier) []Tier {
			tiers[0].Key = TierNone
			return tiers
		},
		"lowest tier with two plans": func(tiers []Tier) []Tier {
			tiers[0].Rates = append(tiers[0].Rates, PlanRate{TermDays: 730, Rate: 7})
			return tiers
		},
		"upper tier with one plan": func(tiers []Tier) []Tier {
			tiers[2].Rates = tiers[2].Rates[:1]
			return tiers
		},
		"longer term not better paid": func(tiers []Tier) []Tier {
			tiers[1].Rates[1].Rate = 8.0
			return tiers
		},
		"rates not increasing across tiers": func(tiers []Tier) []Tier {
			tiers[2].Rates[0].Rate = 10.0
			return tiers
		},
		"negative rate": func(tiers []Tier) []Tier {
			tiers[0].Rates[0].Rate = -1
			return tiers
		},
		"zero lowest minimum": func(tiers []Tier) []Tier {
			tiers[0].MinAmount = 0
			return tiers
		},
		"cap below minimum": func(tiers []Tier) []Tier {
			tiers[1].MaxPerInvestment = 10000
			return tiers
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog(mutate(DefaultTiers()))
			assert.Error(t, err)
		})
	}
}

func TestMustCatalogPanics(t *testing.T) {
	assert.Panics(t, func() { MustCatalog(nil) })
}
