package testutil

import (
	"testing"

	"investment-app/internal/domain/investments"
	"investment-app/internal/domain/membership"

	"gorm.io/gorm"
)

// SeedInvestments records past investments for a user, bypassing validation.
func SeedInvestments(t testing.TB, db *gorm.DB, userID string, amounts ...float64) {
	t.Helper()
	for _, a := range amounts {
		err := db.Create(&investments.Investment{
			UserID:          userID,
			Name:            "seed",
			Amount:          a,
			Rate:            6,
			Term:            12,
			TermDays:        365,
			PlanID:          "club_365",
			MembershipLevel: string(membership.TierClub),
			Status:          investments.StatusActive,
		}).Error
		if err != nil {
			t.Fatalf("seed investment: %v", err)
		}
	}
}

func NewInvestmentService(t testing.TB, db *gorm.DB) *investments.Service {
	t.Helper()
	return investments.NewService(db, membership.NewEngine(membership.DefaultCatalog()), nil, nil)
}
