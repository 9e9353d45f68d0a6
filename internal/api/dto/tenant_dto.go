package dto

import "time"

// CreateTenantRequest payload.
type CreateTenantRequest struct {
	Name string `json:"name"`
	Plan string `json:"plan"`
}

// TenantResponse payload.
type TenantResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Plan           string    `json:"plan"`
	SubscriptionID string    `json:"subscription_id"`
	CreatedAt      time.Time `json:"created_at"`
}
