package domain

import "time"

// Tenant is a provisioned customer workspace with an attached billing
// subscription. The subscription id is either a provider-issued id or a
// "mock-" placeholder when the billing provider is unreachable or not
// configured.
type Tenant struct {
	ID             string
	Name           string
	Plan           string
	SubscriptionID string
	CreatedAt      time.Time
}
