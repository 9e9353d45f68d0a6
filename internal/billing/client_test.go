package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalyst-itsm/intake-service/internal/config"
)

func TestCreateSubscriptionReturnsProviderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/subscriptions", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "2023-12-13", r.Header.Get("Square-Version"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"subscription":{"id":"sub-42"}}`))
	}))
	defer server.Close()

	client := NewClient(config.BillingConfig{
		AccessToken: "tok-123",
		BaseURL:     server.URL,
		APIVersion:  "2023-12-13",
		LocationID:  "loc",
		PlanID:      "plan",
	})

	id, err := client.CreateSubscription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sub-42", id)
}

func TestCreateSubscriptionErrorStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(config.BillingConfig{AccessToken: "bad", BaseURL: server.URL})

	_, err := client.CreateSubscription(context.Background())
	assert.Error(t, err)
}

func TestCreateSubscriptionMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(config.BillingConfig{AccessToken: "tok", BaseURL: server.URL})

	_, err := client.CreateSubscription(context.Background())
	assert.Error(t, err)
}
