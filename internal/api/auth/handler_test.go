package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"investment-app/config"
	"investment-app/internal/domain/users"
	"investment-app/internal/testutil"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T, botToken string) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "test-secret"

	h := NewHandler(testutil.NewDB(t), botToken, nil)
	r := gin.New()
	r.POST("/api/auth/wallet", h.WalletLogin)
	r.POST("/api/auth/telegram/webapp", h.TelegramWebApp)
	return h, r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWalletLoginCreatesThenReusesUser(t *testing.T) {
	h, r := setupHandler(t, "")
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	address := PubkeyToAddress(key.PubKey())

	body := gin.H{"message": "login", "signature": personalSign(t, key, "login"), "address": address}

	var first map[string]any
	w := postJSON(r, "/api/auth/wallet", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, true, first["valid"])
	assert.Equal(t, address, first["address"])

	token, err := jwt.Parse(first["token"].(string), func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, first["user_id"], claims["user_id"])
	assert.Equal(t, users.RoleUser, claims["role"])

	var second map[string]any
	w = postJSON(r, "/api/auth/wallet", body)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first["user_id"], second["user_id"])

	var count int64
	h.DB.Model(&users.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestWalletLoginRejectsForeignSignature(t *testing.T) {
	h, r := setupHandler(t, "")
	key, _ := secp256k1.GeneratePrivateKey()
	other, _ := secp256k1.GeneratePrivateKey()

	w := postJSON(r, "/api/auth/wallet", gin.H{
		"message":   "login",
		"signature": personalSign(t, key, "login"),
		"address":   PubkeyToAddress(other.PubKey()),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":false,"error":"Invalid signature"}`, w.Body.String())

	var count int64
	h.DB.Model(&users.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestWalletLoginRequiresFields(t *testing.T) {
	_, r := setupHandler(t, "")
	w := postJSON(r, "/api/auth/wallet", gin.H{"message": "login"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTelegramWebApp(t *testing.T) {
	h, r := setupHandler(t, testBotToken)
	data := signedInitData(testBotToken, `{"id":555,"first_name":"Lin","last_name":"Ko","username":"linko"}`)

	w := postJSON(r, "/api/auth/telegram/webapp", gin.H{"initData": data})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token         string         `json:"token"`
		Authenticated bool           `json:"authenticated"`
		User          map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, float64(555), resp.User["telegram_id"])
	assert.Equal(t, "linko", resp.User["username"])
	assert.Equal(t, "telegram", resp.User["auth_type"])

	// a second login updates the profile in place
	data = signedInitData(testBotToken, `{"id":555,"first_name":"Lina","username":"linko"}`)
	w = postJSON(r, "/api/auth/telegram/webapp", gin.H{"initData": data})
	require.Equal(t, http.StatusOK, w.Code)

	var stored []users.User
	require.NoError(t, h.DB.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "Lina", stored[0].FirstName)
	assert.Equal(t, "telegram_555@vault.app", stored[0].Email)
	assert.Equal(t, resp.User["id"], stored[0].ID)
}

func TestTelegramWebAppErrors(t *testing.T) {
	_, r := setupHandler(t, testBotToken)
	w := postJSON(r, "/api/auth/telegram/webapp", gin.H{"initData": signedInitData("wrong:token", `{"id":1}`)})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, r = setupHandler(t, "")
	w = postJSON(r, "/api/auth/telegram/webapp", gin.H{"initData": signedInitData(testBotToken, `{"id":1}`)})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
