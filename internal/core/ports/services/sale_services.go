package services

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/dto"
)

// SaleSvcFacade defines flat sale management operations. Payment mutations on
// sales go through PaymentSvcFacade, not here.
type SaleSvcFacade interface {
	CreateSale(ctx context.Context, tenantID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.FlatSale, error)
	GetSaleByID(ctx context.Context, tenantID, saleID string, requestingUserID string) (*domain.FlatSale, error)
	ListSales(ctx context.Context, tenantID string, params dto.ListSalesParams, requestingUserID string) ([]domain.FlatSale, *string, error)
	UpdateSaleDetails(ctx context.Context, tenantID, saleID string, req dto.UpdateSaleRequest, requestingUserID string) (*domain.FlatSale, error)

	// DeleteSale removes a sale that has no payment entries; sales with
	// entries are refused with apperrors.ErrConflict.
	DeleteSale(ctx context.Context, tenantID, saleID string, requestingUserID string) error
}
