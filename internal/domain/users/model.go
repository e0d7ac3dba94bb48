package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AuthWallet   = "wallet"
	AuthTelegram = "telegram"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AuthType string `gorm:"type:varchar(20);not null;default:'wallet'" json:"auth_type"`

	WalletAddress *string `gorm:"column:wallet_address;uniqueIndex:idx_users_wallet_address" json:"wallet_address"` // lowercase 0x-hex

	TelegramID       *int64 `gorm:"column:telegram_id;uniqueIndex:idx_users_telegram_id" json:"telegram_id"`
	TelegramUsername string `gorm:"column:telegram_username" json:"telegram_username"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	LanguageCode     string `gorm:"type:varchar(10);default:'en'" json:"language_code"`
	PhotoURL         string `json:"photo_url"`

	Email string `json:"email"`
	Role  string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
