package repository

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

// TenantRepository encapsulates tenant persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
}

type tenantRepository struct {
	pool *pgxpool.Pool
}

// NewTenantRepository instantiates the postgres-backed repository.
func NewTenantRepository(pool *pgxpool.Pool) TenantRepository {
	return &tenantRepository{pool: pool}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	const query = `
        INSERT INTO tenants (id, name, plan, subscription_id, created_at)
        VALUES ($1,$2,$3,$4,$5)`
	_, err := r.pool.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Plan,
		tenant.SubscriptionID,
		tenant.CreatedAt,
	)
	return err
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	const query = `
        SELECT id, name, plan, subscription_id, created_at
        FROM tenants WHERE id=$1`
	var tenant domain.Tenant
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Plan,
		&tenant.SubscriptionID,
		&tenant.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// MemoryTenantRepository keeps tenants in a process-local map.
type MemoryTenantRepository struct {
	mu      sync.RWMutex
	tenants map[string]domain.Tenant
}

// NewMemoryTenantRepository builds an empty store.
func NewMemoryTenantRepository() *MemoryTenantRepository {
	return &MemoryTenantRepository{tenants: make(map[string]domain.Tenant)}
}

func (r *MemoryTenantRepository) Create(_ context.Context, tenant *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[tenant.ID] = *tenant
	return nil
}

func (r *MemoryTenantRepository) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tenant, ok := r.tenants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &tenant, nil
}
