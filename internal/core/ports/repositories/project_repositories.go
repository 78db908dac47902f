package repositories

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// ProjectReader defines read operations for project data.
type ProjectReader interface {
	FindProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error)
	ListProjectsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Project, *string, error)
}

// ProjectWriter defines write operations for project data.
type ProjectWriter interface {
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectRepositoryFacade combines all project repository interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
