package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// CreateSaleRequest defines the payload for registering a flat sale.
type CreateSaleRequest struct {
	ProjectID   string          `json:"projectID" binding:"required"`
	CustomerID  string          `json:"customerID" binding:"required"`
	FlatNumber  string          `json:"flatNumber" binding:"required,max=50"`
	SaleDate    time.Time       `json:"saleDate" binding:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required,positivedecimal"`
	Note        string          `json:"note" binding:"max=500"`
}

// UpdateSaleRequest updates descriptive sale fields. The total amount is
// fixed at creation and cannot be changed here.
type UpdateSaleRequest struct {
	FlatNumber *string    `json:"flatNumber" binding:"omitempty,max=50"`
	SaleDate   *time.Time `json:"saleDate"`
	Note       *string    `json:"note" binding:"omitempty,max=500"`
}

// ListSalesParams holds parameters for listing sales.
type ListSalesParams struct {
	ListParams
	ProjectID *string `form:"projectID"`
}

// SaleResponse defines the data returned for a flat sale.
type SaleResponse struct {
	SaleID      string          `json:"saleID"`
	ProjectID   string          `json:"projectID"`
	CustomerID  string          `json:"customerID"`
	FlatNumber  string          `json:"flatNumber"`
	SaleDate    time.Time       `json:"saleDate"`
	Note        string          `json:"note"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	DueAmount   decimal.Decimal `json:"dueAmount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListSalesResponse is the paginated list payload.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToSaleResponse converts a domain.FlatSale to SaleResponse.
func ToSaleResponse(s *domain.FlatSale) SaleResponse {
	return SaleResponse{
		SaleID:      s.SaleID,
		ProjectID:   s.ProjectID,
		CustomerID:  s.CustomerID,
		FlatNumber:  s.FlatNumber,
		SaleDate:    s.SaleDate,
		Note:        s.Note,
		TotalAmount: s.TotalAmount,
		PaidAmount:  s.PaidAmount,
		DueAmount:   s.DueAmount(),
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
	}
}

// ToSaleResponses converts a slice of domain.FlatSale to []SaleResponse.
func ToSaleResponses(sales []domain.FlatSale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}
