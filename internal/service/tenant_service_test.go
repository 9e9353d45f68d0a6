package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/catalyst-itsm/intake-service/internal/repository"
)

type stubSubscriptionClient struct {
	id  string
	err error
}

func (s *stubSubscriptionClient) CreateSubscription(context.Context) (string, error) {
	return s.id, s.err
}

func TestProvisionUsesProviderSubscription(t *testing.T) {
	svc := NewTenantService(TenantDependencies{
		TenantRepo:         repository.NewMemoryTenantRepository(),
		SubscriptionClient: &stubSubscriptionClient{id: "sub-42"},
		Logger:             zap.NewNop(),
	})

	tenant, err := svc.Provision(context.Background(), "Acme", "pro")

	require.NoError(t, err)
	assert.Equal(t, "sub-42", tenant.SubscriptionID)
	assert.Equal(t, "Acme", tenant.Name)
	assert.NotEmpty(t, tenant.ID)
}

func TestProvisionFallsBackToMockOnProviderError(t *testing.T) {
	repo := repository.NewMemoryTenantRepository()
	svc := NewTenantService(TenantDependencies{
		TenantRepo:         repo,
		SubscriptionClient: &stubSubscriptionClient{err: errors.New("provider down")},
		Logger:             zap.NewNop(),
	})

	tenant, err := svc.Provision(context.Background(), "Acme", "pro")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tenant.SubscriptionID, "mock-"))

	stored, err := repo.GetByID(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.SubscriptionID, stored.SubscriptionID)
}

func TestProvisionWithoutClientUsesMock(t *testing.T) {
	svc := NewTenantService(TenantDependencies{
		TenantRepo: repository.NewMemoryTenantRepository(),
		Logger:     zap.NewNop(),
	})

	tenant, err := svc.Provision(context.Background(), "Acme", "basic")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tenant.SubscriptionID, "mock-"))
}

func TestProvisionValidatesInput(t *testing.T) {
	svc := NewTenantService(TenantDependencies{
		TenantRepo: repository.NewMemoryTenantRepository(),
		Logger:     zap.NewNop(),
	})

	_, err := svc.Provision(context.Background(), "", "pro")
	assert.Error(t, err)
	_, err = svc.Provision(context.Background(), "Acme", "  ")
	assert.Error(t, err)
}
