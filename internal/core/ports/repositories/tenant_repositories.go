package repositories

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// TenantReader defines read operations for tenant data.
type TenantReader interface {
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
	ListTenantsByUserID(ctx context.Context, userID string) ([]domain.Tenant, error)

	// FindUserTenantRole retrieves the membership of a user in a tenant.
	// Returns apperrors.ErrNotFound when the user is not a member.
	FindUserTenantRole(ctx context.Context, userID, tenantID string) (*domain.UserTenant, error)
}

// TenantWriter defines write operations for tenant data.
type TenantWriter interface {
	SaveTenant(ctx context.Context, tenant domain.Tenant) error
	AddUserToTenant(ctx context.Context, membership domain.UserTenant) error
	UpdateUserTenantRole(ctx context.Context, userID, tenantID string, role domain.UserTenantRole) error
}

// TenantRepositoryFacade combines all tenant repository interfaces.
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}
