package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	routes "investment-app/internal/app/http"
	"investment-app/internal/domain/plans"
	"investment-app/internal/domain/users"
	"investment-app/internal/infra/cache"
	"investment-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type offline struct{}

func (offline) SimplePrice(context.Context) ([]byte, error) { return nil, errors.New("offline") }
func (offline) Accounts(context.Context) ([]byte, error)    { return nil, errors.New("offline") }

func newServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	svc := testutil.NewInvestmentService(t, db)
	_, err := plans.Sync(db, svc.Engine())
	require.NoError(t, err)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Investments: svc,
		Prices:      offline{},
		Accounts:    offline{},
		Cache:       cache.NewMemory(),
		PriceTTL:    time.Minute,
	})
	return r, db
}

func call(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestPublicRoutes(t *testing.T) {
	r, _ := newServer(t)

	w := call(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)

	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/", "", nil).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/metrics", "", nil).Code)

	var tiers struct {
		Tiers []struct {
			Key       string           `json:"key"`
			MaxAmount *float64         `json:"max_amount"`
			Plans     []map[string]any `json:"plans"`
		} `json:"tiers"`
	}
	decode(t, call(r, http.MethodGet, "/api/membership/tiers", "", nil), &tiers)
	require.Len(t, tiers.Tiers, 4)
	assert.Equal(t, "club", tiers.Tiers[0].Key)
	assert.Len(t, tiers.Tiers[0].Plans, 1)
	assert.Nil(t, tiers.Tiers[3].MaxAmount)

	var all struct {
		Plans []struct {
			ID       string `json:"id"`
			TermDays int    `json:"term_days"`
			Term     int    `json:"term"`
		} `json:"plans"`
	}
	decode(t, call(r, http.MethodGet, "/api/investment-plans/all", "", nil), &all)
	require.Len(t, all.Plans, 7)
	assert.Equal(t, "club_365", all.Plans[0].ID)
	assert.Equal(t, 12, all.Plans[0].Term)
}

func TestMembershipJourney(t *testing.T) {
	r, db := newServer(t)
	token := testutil.Token(t, "user-1", "user")

	var status map[string]any
	decode(t, call(r, http.MethodGet, "/api/membership/status", token, nil), &status)
	assert.Equal(t, "none", status["level"])
	assert.Equal(t, 20000.0, status["amount_to_next"])

	testutil.SeedInvestments(t, db, "user-1", 240000)

	var userPlans struct {
		Plans      []map[string]any `json:"plans"`
		Membership map[string]any   `json:"membership"`
	}
	decode(t, call(r, http.MethodGet, "/api/investment-plans", token, nil), &userPlans)
	assert.Equal(t, "vip", userPlans.Membership["level"])
	require.Len(t, userPlans.Plans, 2)
	assert.Equal(t, "vip_180", userPlans.Plans[0]["id"])

	w := call(r, http.MethodPost, "/api/investments", token, gin.H{"name": "Top up", "amount": 100000, "rate": 14, "term": 12})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	decode(t, call(r, http.MethodGet, "/api/membership/status", token, nil), &status)
	assert.Equal(t, "elite", status["level"])
	assert.Nil(t, status["next_level"])

	// the vip rate is gone once the user is elite
	w = call(r, http.MethodPost, "/api/investments", token, gin.H{"amount": 100000, "rate": 14, "term": 12})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NoMatchingPlan")

	var me struct {
		Membership struct {
			Level     string `json:"level"`
			PlanCount int    `json:"plan_count"`
		} `json:"membership"`
	}
	require.NoError(t, db.Create(&users.User{ID: "user-1", AuthType: users.AuthWallet}).Error)
	decode(t, call(r, http.MethodGet, "/api/me", token, nil), &me)
	assert.Equal(t, "elite", me.Membership.Level)
	assert.Equal(t, 2, me.Membership.PlanCount)

	var pf map[string]any
	decode(t, call(r, http.MethodGet, "/api/portfolio", token, nil), &pf)
	assert.Equal(t, 340000.0, pf["investments"].(map[string]any)["total"])
}

func TestProxiesFallBackWhenOffline(t *testing.T) {
	r, _ := newServer(t)

	w := call(r, http.MethodGet, "/api/prices", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bitcoin")

	req := httptest.NewRequest(http.MethodGet, "/api/bank/balance", nil)
	req.Header.Set("X-User-ID", "user-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"total_balance":17730,"accounts":2}`, w.Body.String())
}

func TestAdminRoutes(t *testing.T) {
	r, db := newServer(t)

	require.NoError(t, db.Create(&users.User{ID: "user-1", AuthType: users.AuthWallet}).Error)
	require.NoError(t, db.Create(&users.User{ID: "user-2", AuthType: users.AuthTelegram}).Error)
	require.NoError(t, db.Create(&users.User{ID: "root", AuthType: users.AuthWallet, Role: users.RoleAdmin}).Error)
	testutil.SeedInvestments(t, db, "user-1", 30000, 30000)
	testutil.SeedInvestments(t, db, "user-2", 20000)

	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/admin/users", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/admin/users", testutil.Token(t, "user-1", "user"), nil).Code)

	admin := testutil.Token(t, "root", "admin")

	var adminUsers []map[string]any
	decode(t, call(r, http.MethodGet, "/admin/users", admin, nil), &adminUsers)
	require.Len(t, adminUsers, 3)
	levels := map[string]any{}
	for _, u := range adminUsers {
		levels[u["id"].(string)] = u["membership_level"]
	}
	assert.Equal(t, "premium", levels["user-1"])
	assert.Equal(t, "club", levels["user-2"])
	assert.Equal(t, "none", levels["root"])

	var stats struct {
		TotalUsers       int            `json:"total_users"`
		TotalInvested    float64        `json:"total_invested"`
		TotalInvestments int            `json:"total_investments"`
		UsersPerTier     map[string]int `json:"users_per_tier"`
	}
	decode(t, call(r, http.MethodGet, "/admin/stats", admin, nil), &stats)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 80000.0, stats.TotalInvested)
	assert.Equal(t, 3, stats.TotalInvestments)
	assert.Equal(t, map[string]int{"none": 1, "club": 1, "premium": 1, "vip": 0, "elite": 0}, stats.UsersPerTier)

	var invs []map[string]any
	decode(t, call(r, http.MethodGet, "/admin/investments", admin, nil), &invs)
	assert.Len(t, invs, 3)

	var detail map[string]any
	decode(t, call(r, http.MethodGet, "/admin/user/user-1", admin, nil), &detail)
	assert.Equal(t, "premium", detail["membership"].(map[string]any)["level"])
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/admin/user/ghost", admin, nil).Code)

	w := call(r, http.MethodPost, "/admin/sync-plans", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"synced":7`)
}
