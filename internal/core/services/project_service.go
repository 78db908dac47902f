package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
)

// ProjectService implements project management.
type ProjectService struct {
	projectRepo portsrepo.ProjectRepositoryFacade
	tenantSvc   portssvc.TenantSvcFacade
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, tenantSvc portssvc.TenantSvcFacade) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, tenantSvc: tenantSvc}
}

var _ portssvc.ProjectSvcFacade = (*ProjectService)(nil)

// CreateProject creates a project in the tenant. Requires MEMBER role.
func (s *ProjectService) CreateProject(ctx context.Context, tenantID string, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		TenantID:    tenantID,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		logger.Error("Failed to save project", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logger.Info("Project created", slog.String("project_id", project.ProjectID), slog.String("tenant_id", tenantID))
	return &project, nil
}

// GetProjectByID retrieves a project. Requires READONLY role.
func (s *ProjectService) GetProjectByID(ctx context.Context, tenantID, projectID string, requestingUserID string) (*domain.Project, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.projectRepo.FindProjectByID(ctx, tenantID, projectID)
}

// ListProjects retrieves a page of the tenant's projects.
func (s *ProjectService) ListProjects(ctx context.Context, tenantID string, params dto.ListParams, requestingUserID string) ([]domain.Project, *string, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.projectRepo.ListProjectsByTenant(ctx, tenantID, params.Limit, params.NextToken)
}

// UpdateProject updates a project's descriptive fields. Requires MEMBER role.
func (s *ProjectService) UpdateProject(ctx context.Context, tenantID, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Address != nil {
		project.Address = *req.Address
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = requestingUserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		logger.Error("Failed to update project", slog.String("error", err.Error()), slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to update project %s: %w", projectID, err)
	}
	return project, nil
}
