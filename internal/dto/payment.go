package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// ApplyPaymentRequest defines the payload for recording a payment.
type ApplyPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Reference   string          `json:"reference" binding:"max=100"`
	Note        string          `json:"note" binding:"max=500"`
}

// EditPaymentRequest defines the payload for editing a payment. Amount is the
// only field with financial meaning; the rest are descriptive.
type EditPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
	PaymentDate *time.Time      `json:"paymentDate"`
	Reference   *string         `json:"reference" binding:"omitempty,max=100"`
	Note        *string         `json:"note" binding:"omitempty,max=500"`
}

// BalanceResponse reports an aggregate's balance after a mutation.
type BalanceResponse struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	DueAmount   decimal.Decimal `json:"dueAmount"`
	Status      string          `json:"status"`
}

// PaymentResponse defines the data returned for a payment entry.
type PaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	ParentID    string          `json:"parentID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Reference   string          `json:"reference"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ApplyPaymentResponse is returned after a successful apply.
type ApplyPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Balance BalanceResponse `json:"balance"`
}

// ListPaymentsResponse is the paginated list payload.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		TotalAmount: b.TotalAmount,
		PaidAmount:  b.PaidAmount,
		DueAmount:   b.DueAmount(),
		Status:      string(b.Status),
	}
}

// ToPaymentResponse converts a domain.PaymentEntry to PaymentResponse.
func ToPaymentResponse(p *domain.PaymentEntry) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		ParentID:    p.ParentID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Reference:   p.Reference,
		Note:        p.Note,
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedBy,
	}
}

// ToPaymentResponses converts a slice of domain.PaymentEntry to []PaymentResponse.
func ToPaymentResponses(payments []domain.PaymentEntry) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
