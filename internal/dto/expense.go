package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// CreateBillRequest defines the payload for registering an expense bill.
type CreateBillRequest struct {
	ProjectID   string          `json:"projectID" binding:"required"`
	VendorName  string          `json:"vendorName" binding:"required,max=100"`
	BillNumber  string          `json:"billNumber" binding:"max=50"`
	BillDate    time.Time       `json:"billDate" binding:"required"`
	Category    string          `json:"category" binding:"max=50"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required,positivedecimal"`
	Note        string          `json:"note" binding:"max=500"`
}

// UpdateBillRequest updates descriptive bill fields.
type UpdateBillRequest struct {
	VendorName *string    `json:"vendorName" binding:"omitempty,max=100"`
	BillNumber *string    `json:"billNumber" binding:"omitempty,max=50"`
	BillDate   *time.Time `json:"billDate"`
	Category   *string    `json:"category" binding:"omitempty,max=50"`
	Note       *string    `json:"note" binding:"omitempty,max=500"`
}

// ListBillsParams holds parameters for listing expense bills.
type ListBillsParams struct {
	ListParams
	ProjectID *string `form:"projectID"`
}

// BillResponse defines the data returned for an expense bill.
type BillResponse struct {
	BillID      string          `json:"billID"`
	ProjectID   string          `json:"projectID"`
	VendorName  string          `json:"vendorName"`
	BillNumber  string          `json:"billNumber"`
	BillDate    time.Time       `json:"billDate"`
	Category    string          `json:"category"`
	Note        string          `json:"note"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	DueAmount   decimal.Decimal `json:"dueAmount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListBillsResponse is the paginated list payload.
type ListBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToBillResponse converts a domain.ExpenseBill to BillResponse.
func ToBillResponse(b *domain.ExpenseBill) BillResponse {
	return BillResponse{
		BillID:      b.BillID,
		ProjectID:   b.ProjectID,
		VendorName:  b.VendorName,
		BillNumber:  b.BillNumber,
		BillDate:    b.BillDate,
		Category:    b.Category,
		Note:        b.Note,
		TotalAmount: b.TotalAmount,
		PaidAmount:  b.PaidAmount,
		DueAmount:   b.DueAmount(),
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}

// ToBillResponses converts a slice of domain.ExpenseBill to []BillResponse.
func ToBillResponses(bills []domain.ExpenseBill) []BillResponse {
	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}
	return responses
}
