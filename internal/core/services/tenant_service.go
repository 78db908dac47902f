package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
)

// TenantService implements tenant management and the authorization gate.
type TenantService struct {
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

var _ portssvc.TenantSvcFacade = (*TenantService)(nil)

// CreateTenant creates a tenant and makes the creator its first admin.
func (s *TenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	tenant := domain.Tenant{
		TenantID:    uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		logger.Error("Failed to save tenant", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	membership := domain.UserTenant{
		UserID:   creatorUserID,
		TenantID: tenant.TenantID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}
	if err := s.tenantRepo.AddUserToTenant(ctx, membership); err != nil {
		logger.Error("Failed to add creator to tenant", slog.String("error", err.Error()), slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to add creator to tenant %s: %w", tenant.TenantID, err)
	}

	logger.Info("Tenant created", slog.String("tenant_id", tenant.TenantID), slog.String("creator_user_id", creatorUserID))
	return &tenant, nil
}

// GetTenantByID retrieves a tenant after verifying the requester is a member.
func (s *TenantService) GetTenantByID(ctx context.Context, tenantID string, requestingUserID string) (*domain.Tenant, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant %s: %w", tenantID, err)
	}
	return tenant, nil
}

// ListUserTenants retrieves the list of tenants a given user belongs to.
func (s *TenantService) ListUserTenants(ctx context.Context, userID string) ([]domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListTenantsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants for user %s: %w", userID, err)
	}
	return tenants, nil
}

// AddUserToTenant adds (or re-roles) a member. Only admins may do this.
func (s *TenantService) AddUserToTenant(ctx context.Context, tenantID, targetUserID string, role domain.UserTenantRole, addingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}

	membership := domain.UserTenant{
		UserID:   targetUserID,
		TenantID: tenantID,
		Role:     role,
		JoinedAt: time.Now(),
	}

	if err := s.tenantRepo.AddUserToTenant(ctx, membership); err != nil {
		logger.Error("Failed to add user to tenant", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("tenant_id", tenantID))
		return fmt.Errorf("failed to add user %s to tenant %s: %w", targetUserID, tenantID, err)
	}

	logger.Info("User added to tenant", slog.String("target_user_id", targetUserID), slog.String("tenant_id", tenantID), slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks if a user has the required role (or higher)
// within a tenant. Returns apperrors.ErrNotFound if the user is not a member
// (so tenant existence is not revealed), apperrors.ErrForbidden if the role is
// insufficient, nil if authorized.
func (s *TenantService) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserTenantRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.tenantRepo.FindUserTenantRole(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user not a member", slog.String("user_id", userID), slog.String("tenant_id", tenantID))
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user tenant role", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("tenant_id", tenantID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Role.Allows(requiredRole) {
		return nil
	}

	logger.Warn("Authorization failed: insufficient role", slog.String("user_id", userID), slog.String("tenant_id", tenantID), slog.String("role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}
