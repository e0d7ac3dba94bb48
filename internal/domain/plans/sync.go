package plans

import (
	"fmt"

	"investment-app/internal/domain/membership"

	"gorm.io/gorm"
)

// Sync replaces the stored plan snapshot with the catalog's current plans.
// Pass db in, do NOT import investment-app/database here (avoids import cycle).
func Sync(db *gorm.DB, engine *membership.Engine) (int, error) {
	generated := engine.AllPlans()

	rows := make([]Plan, 0, len(generated))
	for _, p := range generated {
		rows = append(rows, FromMembership(p))
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Plan{}).Error; err != nil {
			return fmt.Errorf("clear plans: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert plans: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func FromMembership(p membership.Plan) Plan {
	return Plan{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		MembershipLevel: string(p.MembershipLevel),
		Rate:            p.Rate,
		TermDays:        p.TermDays,
		MinAmount:       p.MinAmount,
		MaxAmount:       p.MaxAmount,
		IsActive:        p.IsActive,
	}
}

// List returns the stored snapshot ordered by tier minimum, then term.
func List(db *gorm.DB) ([]Plan, error) {
	list := []Plan{}
	if err := db.Order("min_amount ASC").Order("term_days ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
