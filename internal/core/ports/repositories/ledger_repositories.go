package repositories

import (
	"context"
	"time"

	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerWriter defines the three payment mutations of the balance maintenance
// protocol. Each call is one atomic unit of work: the implementation reads the
// owning aggregate under a lock inside a store transaction, recomputes the
// denormalized balance, and persists aggregate and entry together, or nothing.
// Transient store conflicts are retried internally; when retries are exhausted
// the call fails with apperrors.ErrConflict and may be re-submitted as a whole.
type LedgerWriter interface {
	// ApplyPayment creates the entry under its parent and adds entry.Amount to
	// the parent's paid amount. The entry's PaymentID is caller-generated and
	// known before commit. Fails with ErrNotFound if the parent does not exist
	// in the tenant, ErrOverpayment if the addition would exceed the total.
	ApplyPayment(ctx context.Context, kind domain.AggregateKind, tenantID string, entry domain.PaymentEntry) (*domain.Balance, error)

	// EditPayment replaces the amount (and descriptive fields) of an existing
	// entry. The authoritative "before" amount is read from the entry row
	// inside the same transaction, never taken from caller state.
	EditPayment(ctx context.Context, kind domain.AggregateKind, tenantID string, entry domain.PaymentEntry) (*domain.Balance, error)

	// DeletePayment removes the entry and subtracts its persisted amount from
	// the parent's paid amount. The result is not clamped at zero.
	DeletePayment(ctx context.Context, kind domain.AggregateKind, tenantID, parentID, paymentID, deletedBy string, now time.Time) (*domain.Balance, error)
}

// LedgerReader defines read operations over payment entries.
type LedgerReader interface {
	// FindPaymentByID retrieves one entry of the given parent.
	FindPaymentByID(ctx context.Context, kind domain.AggregateKind, tenantID, parentID, paymentID string) (*domain.PaymentEntry, error)

	// ListPaymentsByParent retrieves a paginated list of entries for an
	// aggregate using token-based pagination, newest first.
	ListPaymentsByParent(ctx context.Context, kind domain.AggregateKind, tenantID, parentID string, limit int, nextToken *string) ([]domain.PaymentEntry, *string, error)

	// SumPaymentsByParent returns the true sum of entry amounts for an
	// aggregate, for reconciliation against the denormalized paid amount.
	SumPaymentsByParent(ctx context.Context, kind domain.AggregateKind, tenantID, parentID string) (decimal.Decimal, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}
