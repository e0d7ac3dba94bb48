package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

var ErrInvalidInitData = errors.New("invalid telegram data")

type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	PhotoURL     string `json:"photo_url"`
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// TelegramDataCheckString joins every field except hash as sorted key=value lines.
func TelegramDataCheckString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}
	return strings.Join(lines, "\n")
}

// SignTelegramData computes the hash Telegram attaches to WebApp init data.
func SignTelegramData(values url.Values, botToken string) string {
	secret := hmacSHA256([]byte("WebAppData"), []byte(botToken))
	return hex.EncodeToString(hmacSHA256(secret, []byte(TelegramDataCheckString(values))))
}

// ValidateInitData checks the WebApp init data signature and returns the user it carries.
func ValidateInitData(initData, botToken string) (TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return TelegramUser{}, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}

	received := values.Get("hash")
	if received == "" {
		return TelegramUser{}, fmt.Errorf("%w: missing hash", ErrInvalidInitData)
	}
	expected := SignTelegramData(values, botToken)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(received))) {
		return TelegramUser{}, fmt.Errorf("%w: invalid hash", ErrInvalidInitData)
	}

	var user TelegramUser
	raw := values.Get("user")
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return TelegramUser{}, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}
	if user.ID == 0 {
		return TelegramUser{}, fmt.Errorf("%w: no Telegram ID provided", ErrInvalidInitData)
	}
	return user, nil
}
