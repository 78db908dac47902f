package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/middleware"
	"github.com/estatedesk/backoffice/internal/observability/metrics"
	"github.com/estatedesk/backoffice/internal/reports"
)

// registerPageSize is how many entries are pulled per page when assembling a
// full payment register.
const registerPageSize = 200

// ReportService builds PDF receipts and XLSX registers from ledger data.
type ReportService struct {
	repos     portsrepo.RepositoryProvider
	tenantSvc portssvc.TenantSvcFacade
}

// NewReportService creates a new ReportService.
func NewReportService(repos portsrepo.RepositoryProvider, tenantSvc portssvc.TenantSvcFacade) *ReportService {
	return &ReportService{repos: repos, tenantSvc: tenantSvc}
}

var _ portssvc.ReportSvcFacade = (*ReportService)(nil)

// aggregateHeader resolves the display fields of the aggregate a report is
// being built for.
func (s *ReportService) aggregateHeader(ctx context.Context, kind domain.AggregateKind, tenantID, parentID string) (title, partyLabel, partyName, reference string, balance domain.Balance, err error) {
	switch kind {
	case domain.KindFlatSale:
		sale, ferr := s.repos.SaleRepo.FindSaleByID(ctx, tenantID, parentID)
		if ferr != nil {
			err = ferr
			return
		}
		customerName := sale.CustomerID
		if customer, cerr := s.repos.CustomerRepo.FindCustomerByID(ctx, tenantID, sale.CustomerID); cerr == nil {
			customerName = customer.Name
		}
		return "Payment Receipt - Flat Sale", "Customer", customerName, "Flat " + sale.FlatNumber, sale.Balance, nil
	case domain.KindExpenseBill:
		bill, ferr := s.repos.ExpenseRepo.FindBillByID(ctx, tenantID, parentID)
		if ferr != nil {
			err = ferr
			return
		}
		return "Payment Voucher - Expense Bill", "Vendor", bill.VendorName, "Bill " + bill.BillNumber, bill.Balance, nil
	default:
		err = fmt.Errorf("%w: unknown aggregate kind %q", apperrors.ErrValidation, kind)
		return
	}
}

// BuildPaymentReceipt renders a PDF receipt for one payment entry.
func (s *ReportService) BuildPaymentReceipt(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, userID string) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	title, partyLabel, partyName, reference, balance, err := s.aggregateHeader(ctx, kind, tenantID, parentID)
	if err != nil {
		metrics.IncReportExport("pdf", metrics.ResultError)
		return nil, err
	}

	entry, err := s.repos.LedgerRepo.FindPaymentByID(ctx, kind, tenantID, parentID, paymentID)
	if err != nil {
		metrics.IncReportExport("pdf", mutationResult(err))
		return nil, err
	}

	tenantName := tenantID
	if tenant, terr := s.repos.TenantRepo.FindTenantByID(ctx, tenantID); terr == nil {
		tenantName = tenant.Name
	}

	pdfBytes, err := reports.BuildReceiptPDF(reports.ReceiptData{
		Title:      title,
		TenantName: tenantName,
		PartyLabel: partyLabel,
		PartyName:  partyName,
		Reference:  reference,
		Entry:      *entry,
		Balance:    balance,
	})
	if err != nil {
		logger.Error("Failed to render receipt PDF", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		metrics.IncReportExport("pdf", metrics.ResultError)
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	metrics.IncReportExport("pdf", metrics.ResultSuccess)
	return pdfBytes, nil
}

// BuildPaymentRegister renders an XLSX register of all payment entries of an
// aggregate together with its balance summary.
func (s *ReportService) BuildPaymentRegister(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID string, userID string) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	title, partyLabel, partyName, reference, balance, err := s.aggregateHeader(ctx, kind, tenantID, parentID)
	if err != nil {
		metrics.IncReportExport("xlsx", metrics.ResultError)
		return nil, err
	}

	var entries []domain.PaymentEntry
	var nextToken *string
	for {
		page, token, err := s.repos.LedgerRepo.ListPaymentsByParent(ctx, kind, tenantID, parentID, registerPageSize, nextToken)
		if err != nil {
			metrics.IncReportExport("xlsx", metrics.ResultError)
			return nil, err
		}
		entries = append(entries, page...)
		if token == nil {
			break
		}
		nextToken = token
	}

	tenantName := tenantID
	if tenant, terr := s.repos.TenantRepo.FindTenantByID(ctx, tenantID); terr == nil {
		tenantName = tenant.Name
	}

	xlsxBytes, err := reports.BuildRegisterXLSX(reports.RegisterData{
		Title:      title,
		TenantName: tenantName,
		PartyLabel: partyLabel,
		PartyName:  partyName,
		Reference:  reference,
		Balance:    balance,
		Entries:    entries,
	})
	if err != nil {
		logger.Error("Failed to render register XLSX", slog.String("error", err.Error()), slog.String("parent_id", parentID))
		metrics.IncReportExport("xlsx", metrics.ResultError)
		return nil, fmt.Errorf("failed to render register: %w", err)
	}

	metrics.IncReportExport("xlsx", metrics.ResultSuccess)
	return xlsxBytes, nil
}
