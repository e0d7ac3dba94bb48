package users

import "time"

type MeResponse struct {
	User       UserDTO       `json:"user"`
	Membership MembershipDTO `json:"membership"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID               string     `json:"id"`
	AuthType         string     `json:"auth_type"`
	WalletAddress    *string    `json:"wallet_address"`
	TelegramID       *int64     `json:"telegram_id"`
	TelegramUsername *string    `json:"telegram_username"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            *string    `json:"email"`
	Role             string     `json:"role"`
	LastLoginAt      *time.Time `json:"last_login_at"`
}

/* ---------- MEMBERSHIP ---------- */

type MembershipDTO struct {
	Level         string       `json:"level"`
	LevelName     string       `json:"level_name"`
	Emoji         string       `json:"emoji"`
	TotalInvested float64      `json:"total_invested"`
	PlanCount     int          `json:"plan_count"`
	Next          *NextTierDTO `json:"next"`
}

type NextTierDTO struct {
	Level        string  `json:"level"`
	Name         string  `json:"name"`
	AmountToNext float64 `json:"amount_to_next"`
}
