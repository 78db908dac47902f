package services

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/dto"
)

// ProjectSvcFacade defines project management operations.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, tenantID string, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)
	GetProjectByID(ctx context.Context, tenantID, projectID string, requestingUserID string) (*domain.Project, error)
	ListProjects(ctx context.Context, tenantID string, params dto.ListParams, requestingUserID string) ([]domain.Project, *string, error)
	UpdateProject(ctx context.Context, tenantID, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)
}
