package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	"github.com/estatedesk/backoffice/internal/core/services"
	"github.com/estatedesk/backoffice/internal/dto"
)

// fakeLedgerStore is an in-memory LedgerRepositoryFacade that serializes
// mutations the way the Postgres implementation does with its row lock. It
// exists to exercise the balance protocol under real goroutine concurrency.
type fakeLedgerStore struct {
	mu      sync.Mutex
	balance domain.Balance
	entries map[string]domain.PaymentEntry
}

var _ portsrepo.LedgerRepositoryFacade = (*fakeLedgerStore)(nil)

func newFakeLedgerStore(total decimal.Decimal) *fakeLedgerStore {
	return &fakeLedgerStore{
		balance: domain.NewBalance(total),
		entries: make(map[string]domain.PaymentEntry),
	}
}

func (f *fakeLedgerStore) ApplyPayment(ctx context.Context, kind domain.AggregateKind, tenantID string, entry domain.PaymentEntry) (*domain.Balance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	newBal, err := f.balance.Apply(entry.Amount)
	if err != nil {
		return nil, err
	}
	if _, exists := f.entries[entry.PaymentID]; exists {
		return nil, apperrors.ErrDuplicate
	}
	f.entries[entry.PaymentID] = entry
	f.balance = newBal
	result := newBal
	return &result, nil
}

func (f *fakeLedgerStore) EditPayment(ctx context.Context, kind domain.AggregateKind, tenantID string, entry domain.PaymentEntry) (*domain.Balance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.entries[entry.PaymentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	newBal, err := f.balance.AdjustEntry(existing.Amount, entry.Amount)
	if err != nil {
		return nil, err
	}
	f.entries[entry.PaymentID] = entry
	f.balance = newBal
	result := newBal
	return &result, nil
}

func (f *fakeLedgerStore) DeletePayment(ctx context.Context, kind domain.AggregateKind, tenantID, parentID, paymentID, deletedBy string, now time.Time) (*domain.Balance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.entries[paymentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	delete(f.entries, paymentID)
	f.balance = f.balance.RemoveEntry(existing.Amount)
	result := f.balance
	return &result, nil
}

func (f *fakeLedgerStore) FindPaymentByID(ctx context.Context, kind domain.AggregateKind, tenantID, parentID, paymentID string) (*domain.PaymentEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[paymentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &entry, nil
}

func (f *fakeLedgerStore) ListPaymentsByParent(ctx context.Context, kind domain.AggregateKind, tenantID, parentID string, limit int, nextToken *string) ([]domain.PaymentEntry, *string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := make([]domain.PaymentEntry, 0, len(f.entries))
	for _, e := range f.entries {
		entries = append(entries, e)
	}
	return entries, nil, nil
}

func (f *fakeLedgerStore) SumPaymentsByParent(ctx context.Context, kind domain.AggregateKind, tenantID, parentID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sum := decimal.Zero
	for _, e := range f.entries {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}

func (f *fakeLedgerStore) snapshot() (domain.Balance, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance, len(f.entries)
}

// --- Test Suite ---
type LedgerConsistencyTestSuite struct {
	suite.Suite
	store         *fakeLedgerStore
	mockTenantSvc *MockTenantService
	tenantID      string
	userID        string
	saleID        string
}

func (suite *LedgerConsistencyTestSuite) SetupTest() {
	suite.mockTenantSvc = new(MockTenantService)
	suite.mockTenantSvc.On("AuthorizeUserAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.saleID = uuid.NewString()
}

func (suite *LedgerConsistencyTestSuite) newService(total int64) *fakeLedgerStore {
	suite.store = newFakeLedgerStore(decimal.NewFromInt(total))
	return suite.store
}

func (suite *LedgerConsistencyTestSuite) TestConcurrentApplies_NoLostUpdates() {
	store := suite.newService(1000)
	service := services.NewPaymentService(store, suite.mockTenantSvc)

	const workers = 100
	amount := decimal.NewFromInt(5)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := dto.ApplyPaymentRequest{Amount: amount, PaymentDate: time.Now()}
			_, _, err := service.ApplyPayment(context.Background(), suite.tenantID, domain.KindFlatSale, suite.saleID, req, suite.userID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		suite.Require().NoError(err)
	}

	balance, entryCount := store.snapshot()
	suite.Equal(workers, entryCount)
	suite.True(balance.PaidAmount.Equal(decimal.NewFromInt(500)), "paid amount is %s", balance.PaidAmount)
	suite.Equal(domain.PartiallyPaid, balance.Status)

	sum, err := store.SumPaymentsByParent(context.Background(), domain.KindFlatSale, suite.tenantID, suite.saleID)
	suite.Require().NoError(err)
	suite.True(sum.Equal(balance.PaidAmount), "entry sum %s diverged from paid amount %s", sum, balance.PaidAmount)
}

func (suite *LedgerConsistencyTestSuite) TestConcurrentApplies_OverpaymentNeverExceedsTotal() {
	store := suite.newService(100)
	service := services.NewPaymentService(store, suite.mockTenantSvc)

	const workers = 50
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := dto.ApplyPaymentRequest{Amount: amount, PaymentDate: time.Now()}
			_, _, err := service.ApplyPayment(context.Background(), suite.tenantID, domain.KindFlatSale, suite.saleID, req, suite.userID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	accepted, rejected := 0, 0
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		suite.True(errors.Is(err, apperrors.ErrOverpayment), "unexpected error: %v", err)
		rejected++
	}

	suite.Equal(10, accepted)
	suite.Equal(workers-10, rejected)

	balance, entryCount := store.snapshot()
	suite.Equal(10, entryCount)
	suite.True(balance.PaidAmount.Equal(decimal.NewFromInt(100)))
	suite.Equal(domain.Paid, balance.Status)
}

func (suite *LedgerConsistencyTestSuite) TestInterleavedEditsAndDeletes_SumStaysConsistent() {
	store := suite.newService(10000)
	service := services.NewPaymentService(store, suite.mockTenantSvc)
	ctx := context.Background()

	paymentIDs := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		req := dto.ApplyPaymentRequest{Amount: decimal.NewFromInt(50), PaymentDate: time.Now()}
		entry, _, err := service.ApplyPayment(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, req, suite.userID)
		suite.Require().NoError(err)
		paymentIDs = append(paymentIDs, entry.PaymentID)
	}

	var wg sync.WaitGroup
	for i, id := range paymentIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			if i%2 == 0 {
				req := dto.EditPaymentRequest{Amount: decimal.NewFromInt(75)}
				_, err := service.EditPayment(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, id, req, suite.userID)
				suite.NoError(err)
				return
			}
			_, err := service.DeletePayment(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, id, suite.userID)
			suite.NoError(err)
		}(i, id)
	}
	wg.Wait()

	// 10 edited to 75, 10 deleted.
	balance, entryCount := store.snapshot()
	suite.Equal(10, entryCount)
	suite.True(balance.PaidAmount.Equal(decimal.NewFromInt(750)), "paid amount is %s", balance.PaidAmount)

	sum, err := store.SumPaymentsByParent(ctx, domain.KindFlatSale, suite.tenantID, suite.saleID)
	suite.Require().NoError(err)
	suite.True(sum.Equal(balance.PaidAmount))
}

func TestLedgerConsistencyTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerConsistencyTestSuite))
}
