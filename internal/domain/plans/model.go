package plans

import "time"

// Plan is the persisted snapshot of a generated membership plan.
type Plan struct {
	ID              string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	MembershipLevel string  `gorm:"column:membership_level;type:varchar(20);index" json:"membership_level"`
	Rate            float64 `json:"rate"`
	TermDays        int     `json:"term_days"`
	MinAmount       float64 `json:"min_amount"`
	MaxAmount       float64 `json:"max_amount"`
	IsActive        bool    `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Plan) TableName() string {
	return "investment_plans"
}
