package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
	"github.com/estatedesk/backoffice/internal/observability/metrics"
)

// PaymentService implements the balance maintenance protocol for both
// aggregate kinds. All three mutations delegate their atomicity to the ledger
// repository; this layer owns authorization, input validation, ID generation
// and observability.
type PaymentService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	tenantSvc  portssvc.TenantSvcFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(ledgerRepo portsrepo.LedgerRepositoryFacade, tenantSvc portssvc.TenantSvcFacade) *PaymentService {
	return &PaymentService{ledgerRepo: ledgerRepo, tenantSvc: tenantSvc}
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

func mutationResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, apperrors.ErrOverpayment):
		return metrics.ResultOverpayment
	case errors.Is(err, apperrors.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return metrics.ResultConflict
	default:
		return metrics.ResultError
	}
}

// ApplyPayment records a new payment against an aggregate. The entry ID is
// generated here, before the transaction, so it is known to the caller even
// when the commit is retried.
func (s *PaymentService) ApplyPayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID string, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentEntry, *domain.Balance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !kind.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown aggregate kind %q", apperrors.ErrValidation, kind)
	}
	if err := s.tenantSvc.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	entry := domain.PaymentEntry{
		PaymentID:   uuid.NewString(),
		ParentID:    parentID,
		Kind:        kind,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Reference:   req.Reference,
		Note:        req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	start := time.Now()
	balance, err := s.ledgerRepo.ApplyPayment(ctx, kind, tenantID, entry)
	metrics.ObserveLedgerMutation(string(kind), "apply", mutationResult(err), time.Since(start))
	if err != nil {
		logger.Warn("Apply payment failed", slog.String("error", err.Error()), slog.String("parent_id", parentID), slog.String("kind", string(kind)))
		return nil, nil, err
	}

	logger.Info("Payment applied",
		slog.String("payment_id", entry.PaymentID),
		slog.String("parent_id", parentID),
		slog.String("kind", string(kind)),
		slog.String("amount", entry.Amount.String()),
		slog.String("status", string(balance.Status)),
	)
	return &entry, balance, nil
}

// EditPayment changes the amount and descriptive fields of an entry. The
// balance adjustment uses the amount persisted on the entry row, not whatever
// the caller last saw.
func (s *PaymentService) EditPayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, req dto.EditPaymentRequest, userID string) (*domain.Balance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown aggregate kind %q", apperrors.ErrValidation, kind)
	}
	if err := s.tenantSvc.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	existing, err := s.ledgerRepo.FindPaymentByID(ctx, kind, tenantID, parentID, paymentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := *existing
	entry.Amount = req.Amount
	if req.PaymentDate != nil {
		entry.PaymentDate = *req.PaymentDate
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	start := time.Now()
	balance, err := s.ledgerRepo.EditPayment(ctx, kind, tenantID, entry)
	metrics.ObserveLedgerMutation(string(kind), "edit", mutationResult(err), time.Since(start))
	if err != nil {
		logger.Warn("Edit payment failed", slog.String("error", err.Error()), slog.String("payment_id", paymentID), slog.String("kind", string(kind)))
		return nil, err
	}

	logger.Info("Payment edited",
		slog.String("payment_id", paymentID),
		slog.String("parent_id", parentID),
		slog.String("kind", string(kind)),
		slog.String("amount", entry.Amount.String()),
		slog.String("status", string(balance.Status)),
	)
	return balance, nil
}

// DeletePayment removes an entry and rolls its amount out of the parent's
// paid amount.
func (s *PaymentService) DeletePayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, userID string) (*domain.Balance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown aggregate kind %q", apperrors.ErrValidation, kind)
	}
	if err := s.tenantSvc.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	start := time.Now()
	balance, err := s.ledgerRepo.DeletePayment(ctx, kind, tenantID, parentID, paymentID, userID, time.Now())
	metrics.ObserveLedgerMutation(string(kind), "delete", mutationResult(err), time.Since(start))
	if err != nil {
		logger.Warn("Delete payment failed", slog.String("error", err.Error()), slog.String("payment_id", paymentID), slog.String("kind", string(kind)))
		return nil, err
	}

	logger.Info("Payment deleted",
		slog.String("payment_id", paymentID),
		slog.String("parent_id", parentID),
		slog.String("kind", string(kind)),
		slog.String("status", string(balance.Status)),
	)
	return balance, nil
}

// GetPayment retrieves one payment entry. Requires READONLY role.
func (s *PaymentService) GetPayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, userID string) (*domain.PaymentEntry, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown aggregate kind %q", apperrors.ErrValidation, kind)
	}
	if err := s.tenantSvc.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindPaymentByID(ctx, kind, tenantID, parentID, paymentID)
}

// ListPayments retrieves a page of an aggregate's payment entries.
func (s *PaymentService) ListPayments(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID string, params dto.ListParams, userID string) ([]domain.PaymentEntry, *string, error) {
	if !kind.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown aggregate kind %q", apperrors.ErrValidation, kind)
	}
	if err := s.tenantSvc.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.ledgerRepo.ListPaymentsByParent(ctx, kind, tenantID, parentID, params.Limit, params.NextToken)
}
