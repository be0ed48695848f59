package metaclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*MetaClient, *config.Config) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Meta.BaseURL = srv.URL
	cfg.Meta.Version = "v22.0"
	cfg.Meta.URL = srv.URL + "/v22.0"
	cfg.Meta.AccessToken = "old-token"
	cfg.Meta.LongLivedToken = "old-token"
	cfg.Meta.TokenExpiresAt = time.Now().Add(30 * 24 * time.Hour)

	tm := NewTokenManager(cfg, nil)
	client := NewClient(cfg, tm).(*MetaClient)

	return client, cfg
}

func TestMetaClient_GetAdCampaignsByAccountID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/act_123/campaigns", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Equal(t, "cursor-1", r.URL.Query().Get("after"))
		assert.Equal(t, "old-token", r.URL.Query().Get("access_token"))

		_, _ = w.Write([]byte(`{
			"data": [{"id": "c1", "name": "Campanha 1", "status": "ACTIVE", "daily_budget": "5000"}],
			"paging": {"cursors": {"before": "b", "after": "cursor-2"}, "next": "https://graph.facebook.com/next"}
		}`))
	})

	client, _ := newTestClient(t, mux)

	resp, err := client.GetAdCampaignsByAccountID(context.Background(), "123", 100, "cursor-1")
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "c1", resp.Data[0].ID)
	assert.Equal(t, "5000", resp.Data[0].DailyBudget)
	assert.Equal(t, "cursor-2", resp.Paging.NextCursor())
}

func TestMetaClient_LastPageHasNoNextCursor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/c1/adsets", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"id": "as1"}], "paging": {"cursors": {"before": "b", "after": "a"}}}`))
	})

	client, _ := newTestClient(t, mux)

	resp, err := client.GetAdSetsByCampaignID(context.Background(), "c1", 100, "")
	require.NoError(t, err)
	assert.Empty(t, resp.Paging.NextCursor())
}

func TestMetaClient_RateLimitErrorIsTyped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/as1/ads", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "User request limit reached", "type": "OAuthException", "code": 17, "error_subcode": 2446079, "fbtrace_id": "trace"}}`))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.GetAdsByAdSetID(context.Background(), "as1", 100, "")
	require.Error(t, err)

	var apiErr *metadomain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 17, apiErr.Code)
	assert.Equal(t, 2446079, apiErr.Subcode)
	assert.True(t, apiErr.IsRateLimit())
	assert.True(t, apiErr.IsHardRateLimit())
	assert.Equal(t, "trace", apiErr.FBTraceID)
}

func TestMetaClient_RetriesOnceAfterTokenRefresh(t *testing.T) {
	var calls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token": "new-token", "token_type": "bearer", "expires_in": 5184000}`))
	})
	mux.HandleFunc("/v22.0/act_123", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Query().Get("access_token") == "old-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": {"message": "Error validating access token: Session has expired", "type": "OAuthException", "code": 190, "error_subcode": 463}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id": "act_123", "account_id": "123", "name": "Loja", "account_status": 1}`))
	})

	client, cfg := newTestClient(t, mux)

	account, err := client.GetAdAccountByID(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", account.AccountID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "new-token", client.TokenManager.AccessToken())
	assert.Equal(t, "new-token", cfg.Meta.LongLivedToken)
}

func TestMetaClient_GetInsightsByObjectID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v22.0/c1/insights", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "impressions,clicks,spend", r.URL.Query().Get("fields"))
		assert.Equal(t, `{"since":"2024-03-01","until":"2024-03-07"}`, r.URL.Query().Get("time_range"))
		_, _ = w.Write([]byte(`{"data": [{"impressions": "100", "clicks": "5", "spend": "12.5"}]}`))
	})

	client, _ := newTestClient(t, mux)

	insights, err := client.GetInsightsByObjectID(context.Background(), "c1", InsightFilters{
		Fields:    metadomain.InsightFieldsMinimal,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "100", insights[0].Impressions)
}

func TestCalculateTokenExpiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(59*24*time.Hour), CalculateTokenExpiration(now, 60*24*60*60))
	assert.Equal(t, now.Add(time.Hour), CalculateTokenExpiration(now, 2*60*60))
}
