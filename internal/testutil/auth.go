package testutil

import (
	"testing"
	"time"

	"investment-app/config"

	"github.com/golang-jwt/jwt/v5"
)

const JWTSecret = "test-secret"

// Token signs a session token the way the login handlers do.
func Token(t testing.TB, userID, role string) string {
	t.Helper()
	config.JWT_SECRET = JWTSecret

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}
