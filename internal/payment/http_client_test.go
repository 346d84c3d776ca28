package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPClientPay(t *testing.T) {
	var got payCartRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/pay", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "secret", time.Second, zap.NewNop())
	res, err := c.Pay(context.Background(), sandboxRequest("12.5"))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "ok", res.Message)
	assert.Equal(t, "42", got.WalletID)
	assert.Equal(t, "Анна", got.MentorName)
	assert.Equal(t, "2026-10-20", got.Date)
	assert.Equal(t, "10:00", got.Time)
	assert.Equal(t, "12.50", got.Amount)
}

func TestHTTPClientPayReportedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"success":false,"message":"Недостаточно средств"}`))
	}))
	defer srv.Close()

	res, err := NewHTTPClient(srv.URL, "", time.Second, zap.NewNop()).Pay(context.Background(), sandboxRequest("1"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Недостаточно средств", res.Message)
}

func TestHTTPClientPayServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "", time.Second, zap.NewNop()).Pay(context.Background(), sandboxRequest("1"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClientPayNonVerdictResponses(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"unauthorized":         {http.StatusUnauthorized, `{"error":"invalid api key"}`},
		"not found":            {http.StatusNotFound, `{"success":false,"message":"no route"}`},
		"bad request":          {http.StatusBadRequest, `{"success":false}`},
		"decline without flag": {http.StatusPaymentRequired, `{"error":"declined"}`},
		"ok without flag":      {http.StatusOK, `{"status":"queued"}`},
		"ok not json":          {http.StatusOK, `<html>proxy</html>`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			res, err := NewHTTPClient(srv.URL, "", time.Second, zap.NewNop()).Pay(context.Background(), sandboxRequest("1"))
			assert.ErrorIs(t, err, ErrUnavailable)
			assert.Equal(t, model.PaymentResult{}, res)
		})
	}
}

func TestHTTPClientPayConflictIsDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Кошелёк заблокирован"}`))
	}))
	defer srv.Close()

	res, err := NewHTTPClient(srv.URL, "", time.Second, zap.NewNop()).Pay(context.Background(), sandboxRequest("1"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Кошелёк заблокирован", res.Message)
}

func TestHTTPClientGetBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/balance", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("wallet_id"))
		_, _ = w.Write([]byte(`{"balance":"1 250,00 ₽"}`))
	}))
	defer srv.Close()

	raw, err := NewHTTPClient(srv.URL, "", time.Second, zap.NewNop()).GetBalance(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "1 250,00 ₽", raw)
}

func TestHTTPClientGetBalanceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "", time.Second, zap.NewNop()).GetBalance(context.Background(), "42")
	assert.ErrorIs(t, err, ErrUnavailable)
}
