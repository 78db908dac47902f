package services

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// ReportSvcFacade builds downloadable artifacts: payment receipts (PDF) and
// payment registers (XLSX).
type ReportSvcFacade interface {
	// BuildPaymentReceipt renders a PDF receipt for one payment entry.
	BuildPaymentReceipt(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, userID string) ([]byte, error)

	// BuildPaymentRegister renders an XLSX register of all payment entries of
	// an aggregate together with its balance summary.
	BuildPaymentRegister(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID string, userID string) ([]byte, error)
}
