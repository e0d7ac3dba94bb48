package investments

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const StatusActive = "active"

type Investment struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name            string    `json:"name"`
	Amount          float64   `gorm:"not null" json:"amount"`
	Rate            float64   `gorm:"not null" json:"rate"`
	Term            int       `gorm:"not null" json:"term"` // months, as submitted
	TermDays        int       `gorm:"not null" json:"term_days"`
	PlanID          string    `gorm:"type:varchar(64);not null" json:"plan_id"`
	MembershipLevel string    `gorm:"type:varchar(20);not null;index" json:"membership_level"`
	Status          string    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
