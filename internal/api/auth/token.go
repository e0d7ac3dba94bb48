package auth

import (
	"errors"
	"time"

	"investment-app/config"
	"investment-app/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

func GenerateToken(u users.User) (string, error) {
	if config.JWT_SECRET == "" {
		return "", errors.New("jwt secret not configured")
	}
	ttl := config.JWT_TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"user_id":   u.ID,
		"role":      u.Role,
		"auth_type": u.AuthType,
		"exp":       time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWT_SECRET))
}
