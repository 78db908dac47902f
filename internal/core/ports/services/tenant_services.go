package services

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/dto"
)

// TenantSvcFacade defines tenant management and the authorization gate used
// by every other service.
type TenantSvcFacade interface {
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)
	GetTenantByID(ctx context.Context, tenantID string, requestingUserID string) (*domain.Tenant, error)
	ListUserTenants(ctx context.Context, userID string) ([]domain.Tenant, error)
	AddUserToTenant(ctx context.Context, tenantID, targetUserID string, role domain.UserTenantRole, addingUserID string) error

	// AuthorizeUserAction checks if a user holds the required role (or higher)
	// within a tenant. Returns apperrors.ErrNotFound when the user is not a
	// member (membership existence is not revealed), apperrors.ErrForbidden
	// when the role is insufficient, nil when authorized.
	AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserTenantRole) error
}
