package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/core/services"
	"github.com/estatedesk/backoffice/internal/dto"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) ApplyPayment(ctx context.Context, kind domain.AggregateKind, tenantID string, entry domain.PaymentEntry) (*domain.Balance, error) {
	args := m.Called(ctx, kind, tenantID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockLedgerRepository) EditPayment(ctx context.Context, kind domain.AggregateKind, tenantID string, entry domain.PaymentEntry) (*domain.Balance, error) {
	args := m.Called(ctx, kind, tenantID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockLedgerRepository) DeletePayment(ctx context.Context, kind domain.AggregateKind, tenantID, parentID, paymentID, deletedBy string, now time.Time) (*domain.Balance, error) {
	args := m.Called(ctx, kind, tenantID, parentID, paymentID, deletedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockLedgerRepository) FindPaymentByID(ctx context.Context, kind domain.AggregateKind, tenantID, parentID, paymentID string) (*domain.PaymentEntry, error) {
	args := m.Called(ctx, kind, tenantID, parentID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListPaymentsByParent(ctx context.Context, kind domain.AggregateKind, tenantID, parentID string, limit int, nextToken *string) ([]domain.PaymentEntry, *string, error) {
	args := m.Called(ctx, kind, tenantID, parentID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.PaymentEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SumPaymentsByParent(ctx context.Context, kind domain.AggregateKind, tenantID, parentID string) (decimal.Decimal, error) {
	args := m.Called(ctx, kind, tenantID, parentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock TenantService ---
type MockTenantService struct {
	mock.Mock
}

var _ portssvc.TenantSvcFacade = (*MockTenantService)(nil)

func (m *MockTenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) GetTenantByID(ctx context.Context, tenantID string, requestingUserID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) ListUserTenants(ctx context.Context, userID string) ([]domain.Tenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantService) AddUserToTenant(ctx context.Context, tenantID, targetUserID string, role domain.UserTenantRole, addingUserID string) error {
	args := m.Called(ctx, tenantID, targetUserID, role, addingUserID)
	return args.Error(0)
}

func (m *MockTenantService) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserTenantRole) error {
	args := m.Called(ctx, userID, tenantID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockTenantSvc  *MockTenantService
	service        portssvc.PaymentSvcFacade
	tenantID       string
	userID         string
	saleID         string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockTenantSvc = new(MockTenantService)
	suite.service = services.NewPaymentService(suite.mockLedgerRepo, suite.mockTenantSvc)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.saleID = uuid.NewString()
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestApplyPayment_Success() {
	ctx := context.Background()
	req := dto.ApplyPaymentRequest{
		Amount:      decimal.NewFromInt(400),
		PaymentDate: time.Now(),
		Reference:   "UTR-1234",
	}
	expectedBalance := domain.Balance{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.NewFromInt(400),
		Status:      domain.PartiallyPaid,
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerRepo.On("ApplyPayment", ctx, domain.KindFlatSale, suite.tenantID, mock.AnythingOfType("domain.PaymentEntry")).Return(&expectedBalance, nil).Once()

	entry, balance, err := suite.service.ApplyPayment(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Require().NotNil(balance)
	suite.NotEmpty(entry.PaymentID)
	suite.Equal(suite.saleID, entry.ParentID)
	suite.Equal(domain.KindFlatSale, entry.Kind)
	suite.True(entry.Amount.Equal(req.Amount))
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Equal(domain.PartiallyPaid, balance.Status)

	// The entry handed to the repo carries the same ID returned to the caller.
	repoEntry := suite.mockLedgerRepo.Calls[0].Arguments.Get(3).(domain.PaymentEntry)
	suite.Equal(entry.PaymentID, repoEntry.PaymentID)

	suite.mockTenantSvc.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_Overpayment() {
	ctx := context.Background()
	req := dto.ApplyPaymentRequest{
		Amount:      decimal.NewFromInt(2000),
		PaymentDate: time.Now(),
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerRepo.On("ApplyPayment", ctx, domain.KindFlatSale, suite.tenantID, mock.AnythingOfType("domain.PaymentEntry")).Return(nil, apperrors.ErrOverpayment).Once()

	entry, balance, err := suite.service.ApplyPayment(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverpayment)
	suite.Nil(entry)
	suite.Nil(balance)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_AuthorizationFail() {
	ctx := context.Background()
	req := dto.ApplyPaymentRequest{Amount: decimal.NewFromInt(100), PaymentDate: time.Now()}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, _, err := suite.service.ApplyPayment(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ApplyPayment")
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_UnknownKind() {
	ctx := context.Background()
	req := dto.ApplyPaymentRequest{Amount: decimal.NewFromInt(100), PaymentDate: time.Now()}

	_, _, err := suite.service.ApplyPayment(ctx, suite.tenantID, domain.AggregateKind("NOT_A_KIND"), suite.saleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTenantSvc.AssertNotCalled(suite.T(), "AuthorizeUserAction")
}

func (suite *PaymentServiceTestSuite) TestEditPayment_Success() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	existing := domain.PaymentEntry{
		PaymentID:   paymentID,
		ParentID:    suite.saleID,
		Kind:        domain.KindFlatSale,
		Amount:      decimal.NewFromInt(400),
		PaymentDate: time.Now().Add(-24 * time.Hour),
		Reference:   "UTR-1234",
	}
	req := dto.EditPaymentRequest{Amount: decimal.NewFromInt(300)}
	expectedBalance := domain.Balance{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.NewFromInt(900),
		Status:      domain.PartiallyPaid,
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerRepo.On("FindPaymentByID", ctx, domain.KindFlatSale, suite.tenantID, suite.saleID, paymentID).Return(&existing, nil).Once()
	suite.mockLedgerRepo.On("EditPayment", ctx, domain.KindFlatSale, suite.tenantID, mock.MatchedBy(func(e domain.PaymentEntry) bool {
		return e.PaymentID == paymentID && e.Amount.Equal(decimal.NewFromInt(300)) && e.Reference == "UTR-1234"
	})).Return(&expectedBalance, nil).Once()

	balance, err := suite.service.EditPayment(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, paymentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.True(balance.PaidAmount.Equal(decimal.NewFromInt(900)))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestEditPayment_NotFound() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	req := dto.EditPaymentRequest{Amount: decimal.NewFromInt(300)}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerRepo.On("FindPaymentByID", ctx, domain.KindFlatSale, suite.tenantID, suite.saleID, paymentID).Return(nil, apperrors.ErrNotFound).Once()

	balance, err := suite.service.EditPayment(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, paymentID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(balance)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "EditPayment")
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_Success() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	expectedBalance := domain.Balance{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.NewFromInt(0),
		Status:      domain.Unpaid,
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerRepo.On("DeletePayment", ctx, domain.KindExpenseBill, suite.tenantID, suite.saleID, paymentID, suite.userID, mock.AnythingOfType("time.Time")).Return(&expectedBalance, nil).Once()

	balance, err := suite.service.DeletePayment(ctx, suite.tenantID, domain.KindExpenseBill, suite.saleID, paymentID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.Equal(domain.Unpaid, balance.Status)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_ConflictExhausted() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockLedgerRepo.On("DeletePayment", ctx, domain.KindFlatSale, suite.tenantID, suite.saleID, paymentID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrConflict).Once()

	balance, err := suite.service.DeletePayment(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, paymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(balance)
}

func (suite *PaymentServiceTestSuite) TestListPayments_PassesPagination() {
	ctx := context.Background()
	token := "next-token"
	entries := []domain.PaymentEntry{
		{PaymentID: uuid.NewString(), ParentID: suite.saleID, Kind: domain.KindFlatSale, Amount: decimal.NewFromInt(100)},
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockLedgerRepo.On("ListPaymentsByParent", ctx, domain.KindFlatSale, suite.tenantID, suite.saleID, 10, (*string)(nil)).Return(entries, token, nil).Once()

	result, nextToken, err := suite.service.ListPayments(ctx, suite.tenantID, domain.KindFlatSale, suite.saleID, dto.ListParams{Limit: 10}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.Require().NotNil(nextToken)
	suite.Equal(token, *nextToken)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
