package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		assert.Contains(t, r.URL.Query().Get("ids"), "bitcoin")
		w.Write([]byte(`{"bitcoin":{"usd":1,"usd_24h_change":0.5}}`))
	}))
	defer srv.Close()

	body, err := New(srv.URL, srv.Client()).SimplePrice(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"bitcoin":{"usd":1,"usd_24h_change":0.5}}`, string(body))
}

func TestSimplePriceRejectsUnexpectedBodies(t *testing.T) {
	for _, body := range []string{`not json`, `{"status":{"error_code":429}}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		_, err := New(srv.URL, srv.Client()).SimplePrice(context.Background())
		assert.Error(t, err, body)
		srv.Close()
	}
}
