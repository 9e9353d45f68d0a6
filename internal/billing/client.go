package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/catalyst-itsm/intake-service/internal/config"
)

// SubscriptionClient creates billing subscriptions with the payment provider.
type SubscriptionClient interface {
	CreateSubscription(ctx context.Context) (string, error)
}

// Client talks to the provider's REST subscriptions API.
type Client struct {
	cfg        config.BillingConfig
	httpClient *http.Client
}

// NewClient builds a client with a bounded request timeout.
func NewClient(cfg config.BillingConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

type subscriptionRequest struct {
	LocationID string `json:"location_id"`
	PlanID     string `json:"plan_id"`
	CustomerID string `json:"customer_id"`
}

type subscriptionResponse struct {
	Subscription struct {
		ID string `json:"id"`
	} `json:"subscription"`
}

// CreateSubscription creates a subscription and returns its provider id.
func (c *Client) CreateSubscription(ctx context.Context) (string, error) {
	payload, err := json.Marshal(subscriptionRequest{
		LocationID: c.cfg.LocationID,
		PlanID:     c.cfg.PlanID,
		CustomerID: "CustomerId",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v2/subscriptions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", c.cfg.APIVersion)
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("subscription create returned status %d", resp.StatusCode)
	}

	var body subscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Subscription.ID == "" {
		return "", errors.New("subscription id missing from response")
	}
	return body.Subscription.ID, nil
}
