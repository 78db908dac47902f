package services

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/dto"
)

// PaymentSvcFacade is the single caller-facing surface of the balance
// maintenance engine. The same three mutations serve every aggregate kind;
// callers pick the kind, the engine owns the protocol.
type PaymentSvcFacade interface {
	// ApplyPayment records a new payment against an aggregate. Returns the
	// created entry and the aggregate's balance after commit.
	ApplyPayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID string, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentEntry, *domain.Balance, error)

	// EditPayment changes the amount and descriptive fields of an entry.
	EditPayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, req dto.EditPaymentRequest, userID string) (*domain.Balance, error)

	// DeletePayment removes an entry.
	DeletePayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, userID string) (*domain.Balance, error)

	GetPayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, userID string) (*domain.PaymentEntry, error)
	ListPayments(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID string, params dto.ListParams, userID string) ([]domain.PaymentEntry, *string, error)
}
