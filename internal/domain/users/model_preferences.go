package users

import "time"

type Preferences struct {
	UserID               string `gorm:"primaryKey;type:varchar(36)"`
	Theme                string `gorm:"type:varchar(20);not null;default:'dark'"`
	OnboardingComplete   bool   `gorm:"not null"`
	NotificationsEnabled bool   `gorm:"not null"`
	UpdatedAt            time.Time
}

func (Preferences) TableName() string {
	return "user_preferences"
}

// DefaultPreferences is what a user sees before saving anything.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:               userID,
		Theme:                "dark",
		NotificationsEnabled: true,
	}
}
