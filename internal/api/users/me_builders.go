package users

import (
	"investment-app/internal/domain/membership"
	"investment-app/internal/domain/users"
)

func BuildUserDTO(u users.User) UserDTO {
	return UserDTO{
		ID:               u.ID,
		AuthType:         u.AuthType,
		WalletAddress:    u.WalletAddress,
		TelegramID:       u.TelegramID,
		TelegramUsername: stringPtrIfNotEmpty(u.TelegramUsername),
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            stringPtrIfNotEmpty(u.Email),
		Role:             u.Role,
		LastLoginAt:      u.LastLoginAt,
	}
}

func BuildMembershipDTO(s membership.Status) MembershipDTO {
	dto := MembershipDTO{
		Level:         string(s.Level),
		LevelName:     s.LevelName,
		Emoji:         s.Emoji,
		TotalInvested: s.TotalInvested,
		PlanCount:     len(s.AvailablePlans),
	}
	if s.NextLevel != nil && s.NextLevelName != nil && s.AmountToNext != nil {
		dto.Next = &NextTierDTO{
			Level:        string(*s.NextLevel),
			Name:         *s.NextLevelName,
			AmountToNext: *s.AmountToNext,
		}
	}
	return dto
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
