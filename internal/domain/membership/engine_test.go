package membership

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultCatalog())
}

func TestPlansForCounts(t *testing.T) {
	e := newTestEngine()

	assert.Empty(t, e.PlansFor(TierNone))
	assert.Len(t, e.PlansFor(TierClub), 1)
	for _, key := range []TierKey{TierPremium, TierVIP, TierElite} {
		assert.Len(t, e.PlansFor(key), 2, key)
	}
	assert.Len(t, e.AllPlans(), 7)
}

func TestPlansForPremium(t *testing.T) {
	plans := newTestEngine().PlansFor(TierPremium)
	require.Len(t, plans, 2)

	assert.Equal(t, Plan{
		ID:              "premium_180",
		Name:            "🥈 Premium Member - 6 Months",
		Description:     "8% APY locked for 6 months",
		MembershipLevel: TierPremium,
		Rate:            8.0,
		TermDays:        180,
		Term:            6,
		MinAmount:       50000,
		MaxAmount:       100000,
		IsActive:        true,
	}, plans[0])

	assert.Equal(t, "premium_365", plans[1].ID)
	assert.Equal(t, 10.0, plans[1].Rate)
	assert.Equal(t, 365, plans[1].TermDays)
	assert.Equal(t, 12, plans[1].Term)
	assert.Greater(t, plans[1].Rate, plans[0].Rate)
}

func TestPlansForIsIdempotent(t *testing.T) {
	e := newTestEngine()
	for _, tier := range e.Catalog().Tiers() {
		first, _ := json.Marshal(e.PlansFor(tier.Key))
		second, _ := json.Marshal(e.PlansFor(tier.Key))
		assert.Equal(t, string(first), string(second))
	}

	plans := e.PlansFor(TierVIP)
	plans[0].Rate = 0
	assert.Equal(t, 12.0, e.PlansFor(TierVIP)[0].Rate)
}

func TestPlansForUnknownTierPanics(t *testing.T) {
	assert.PanicsWithValue(t, `membership: unknown tier "gold"`, func() {
		newTestEngine().PlansFor("gold")
	})
}

func TestResolveNone(t *testing.T) {
	s := newTestEngine().Resolve(0)

	assert.Equal(t, TierNone, s.Level)
	assert.Equal(t, "Not a Member", s.LevelName)
	assert.False(t, s.IsMember())
	require.NotNil(t, s.NextLevel)
	assert.Equal(t, TierClub, *s.NextLevel)
	assert.Equal(t, "Club Member", *s.NextLevelName)
	require.NotNil(t, s.AmountToNext)
	assert.Equal(t, 20000.0, *s.AmountToNext)
	assert.Equal(t, 0.0, s.CurrentMin)
	assert.Equal(t, 19999.0, *s.CurrentMax)
	assert.NotNil(t, s.AvailablePlans)
	assert.Empty(t, s.AvailablePlans)
}

func TestResolveClubAtBoundary(t *testing.T) {
	s := newTestEngine().Resolve(20000)

	assert.Equal(t, TierClub, s.Level)
	require.Len(t, s.AvailablePlans, 1)
	assert.Equal(t, 6.0, s.AvailablePlans[0].Rate)
	assert.Equal(t, 365, s.AvailablePlans[0].TermDays)
	assert.Equal(t, 30000.0, *s.AmountToNext)
}

func TestResolvePremium(t *testing.T) {
	s := newTestEngine().Resolve(75000)

	assert.Equal(t, TierPremium, s.Level)
	require.Len(t, s.AvailablePlans, 2)
	assert.Equal(t, 8.0, s.AvailablePlans[0].Rate)
	assert.Equal(t, 180, s.AvailablePlans[0].TermDays)
	assert.Equal(t, 10.0, s.AvailablePlans[1].Rate)
	assert.Equal(t, 365, s.AvailablePlans[1].TermDays)
	assert.Equal(t, TierVIP, *s.NextLevel)
	assert.Equal(t, 25000.0, *s.AmountToNext)
	assert.Equal(t, 50000.0, s.CurrentMin)
	assert.Equal(t, 99999.0, *s.CurrentMax)
}

func TestResolveTopTier(t *testing.T) {
	s := newTestEngine().Resolve(1_000_000)

	assert.Equal(t, TierElite, s.Level)
	assert.Nil(t, s.NextLevel)
	assert.Nil(t, s.NextLevelName)
	assert.Nil(t, s.AmountToNext)
	assert.Nil(t, s.CurrentMax)
	assert.Len(t, s.AvailablePlans, 2)
}

func TestResolveBoundaries(t *testing.T) {
	e := newTestEngine()
	cases := []struct {
		total float64
		want  TierKey
	}{
		{19999.99, TierNone},
		{20000, TierClub},
		{49999.5, TierClub},
		{50000, TierPremium},
		{99999, TierPremium},
		{100000, TierVIP},
		{249999.99, TierVIP},
		{250000, TierElite},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, e.Resolve(tc.total).Level, "total %v", tc.total)
	}
}

func TestResolveProgressInvariant(t *testing.T) {
	e := newTestEngine()
	c := e.Catalog()

	for total := 0.0; total <= 400000; total += 1250 {
		s := e.Resolve(total)
		if s.IsMember() {
			tier, ok := c.Tier(s.Level)
			require.True(t, ok)
			assert.LessOrEqual(t, tier.MinAmount, total)
		}
		if s.NextLevel == nil {
			assert.Equal(t, c.Top().Key, s.Level)
			continue
		}
		next, ok := c.Tier(*s.NextLevel)
		require.True(t, ok)
		assert.Less(t, total, next.MinAmount)
		assert.Greater(t, *s.AmountToNext, 0.0)
	}
}

func TestResolveRejectsInvalidTotals(t *testing.T) {
	e := newTestEngine()
	assert.Panics(t, func() { e.Resolve(-1) })
}

func TestResolveConcurrentUse(t *testing.T) {
	e := newTestEngine()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := e.Resolve(float64(i) * 10000)
			_, _ = e.Validate(s, InvestmentRequest{Amount: 50000, Rate: 10, TermMonths: 12})
		}(i)
	}
	wg.Wait()
}

func TestStatusJSONKeepsAbsentFieldsNull(t *testing.T) {
	raw, err := json.Marshal(newTestEngine().Resolve(300000))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "elite", out["level"])
	assert.Contains(t, out, "next_level")
	assert.Nil(t, out["next_level"])
	assert.Nil(t, out["amount_to_next"])
}

func rejection(t *testing.T, err error) *RejectionError {
	t.Helper()
	var rej *RejectionError
	require.True(t, errors.As(err, &rej), "expected a rejection, got %v", err)
	return rej
}

func TestValidateBelowMinimumTier(t *testing.T) {
	e := newTestEngine()
	s := e.Resolve(5000)

	for _, amt := range []float64{1, 20000, 250000} {
		_, err := e.Validate(s, InvestmentRequest{Amount: amt, Rate: 6.0, TermMonths: 12})
		rej := rejection(t, err)
		assert.Equal(t, BelowMinimumTier, rej.Reason)
		assert.Equal(t, "Minimum investment required is $20,000 to become a Club Member", rej.Detail)
	}
}

func TestValidateNoMatchingPlan(t *testing.T) {
	e := newTestEngine()
	s := e.Resolve(75000)

	cases := []InvestmentRequest{
		{Amount: 60000, Rate: 8.0, TermMonths: 12},  // rate of the 6 month plan
		{Amount: 60000, Rate: 10.0, TermMonths: 6},  // rate of the 1 year plan
		{Amount: 60000, Rate: 6.0, TermMonths: 12},  // club plan
		{Amount: 60000, Rate: 14.0, TermMonths: 12}, // vip plan
		{Amount: 60000, Rate: 8.01, TermMonths: 6},
	}
	for _, req := range cases {
		_, err := e.Validate(s, req)
		rej := rejection(t, err)
		assert.Equal(t, NoMatchingPlan, rej.Reason, "%+v", req)
		assert.Equal(t, "Invalid investment plan for your membership level", rej.Detail)
	}
}

func TestValidateBelowPlanMinimum(t *testing.T) {
	e := newTestEngine()
	_, err := e.Validate(e.Resolve(25000), InvestmentRequest{Amount: 15000, Rate: 6.0, TermMonths: 12})

	rej := rejection(t, err)
	assert.Equal(t, BelowPlanMinimum, rej.Reason)
	assert.Equal(t, "Minimum investment for your membership level is $20,000", rej.Detail)
}

func TestValidateAbovePlanMaximum(t *testing.T) {
	e := newTestEngine()
	_, err := e.Validate(e.Resolve(25000), InvestmentRequest{Amount: 60000, Rate: 6.0, TermMonths: 12})

	rej := rejection(t, err)
	assert.Equal(t, AbovePlanMaximum, rej.Reason)
	assert.Equal(t, "Maximum investment per transaction is $50,000", rej.Detail)
	assert.Equal(t, "AbovePlanMaximum: Maximum investment per transaction is $50,000", err.Error())
}

func TestValidateAccepts(t *testing.T) {
	e := newTestEngine()

	plan, err := e.Validate(e.Resolve(300000), InvestmentRequest{Amount: 250000, Rate: 20.0, TermMonths: 12})
	require.NoError(t, err)
	assert.Equal(t, "elite_365", plan.ID)
	assert.Equal(t, TierElite, plan.MembershipLevel)

	plan, err = e.Validate(e.Resolve(75000), InvestmentRequest{Amount: 50000, Rate: 8.0, TermMonths: 6})
	require.NoError(t, err)
	assert.Equal(t, "premium_180", plan.ID)

	// bounds are inclusive
	_, err = e.Validate(e.Resolve(25000), InvestmentRequest{Amount: 50000, Rate: 6.0, TermMonths: 12})
	assert.NoError(t, err)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$250,000", FormatAmount(250000))
	assert.Equal(t, "$999", FormatAmount(999))
	assert.Equal(t, "$1,000,000", FormatAmount(999999.6))
}
