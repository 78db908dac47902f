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

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

var _ portsrepo.SaleRepositoryFacade = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.FlatSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, tenantID, saleID string) (*domain.FlatSale, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlatSale), args.Error(1)
}

func (m *MockSaleRepository) ListSalesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.FlatSale, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.FlatSale), returnedNextToken, args.Error(2)
}

func (m *MockSaleRepository) ListSalesByProject(ctx context.Context, tenantID, projectID string, limit int, nextToken *string) ([]domain.FlatSale, *string, error) {
	args := m.Called(ctx, tenantID, projectID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.FlatSale), returnedNextToken, args.Error(2)
}

func (m *MockSaleRepository) UpdateSaleDetails(ctx context.Context, sale domain.FlatSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSale(ctx context.Context, tenantID, saleID string) error {
	args := m.Called(ctx, tenantID, saleID)
	return args.Error(0)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectRepositoryFacade = (*MockProjectRepository)(nil)

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, tenantID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjectsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Project, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Project), returnedNextToken, args.Error(2)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, tenantID, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomersByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Customer), returnedNextToken, args.Error(2)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// --- Test Suite Setup ---
type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo     *MockSaleRepository
	mockProjectRepo  *MockProjectRepository
	mockCustomerRepo *MockCustomerRepository
	mockTenantSvc    *MockTenantService
	service          portssvc.SaleSvcFacade
	tenantID         string
	userID           string
	projectID        string
	customerID       string
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockTenantSvc = new(MockTenantService)
	suite.service = services.NewSaleService(suite.mockSaleRepo, suite.mockProjectRepo, suite.mockCustomerRepo, suite.mockTenantSvc)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.projectID = uuid.NewString()
	suite.customerID = uuid.NewString()
}

func (suite *SaleServiceTestSuite) createRequest(total int64) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		ProjectID:   suite.projectID,
		CustomerID:  suite.customerID,
		FlatNumber:  "A-101",
		SaleDate:    time.Now(),
		TotalAmount: decimal.NewFromInt(total),
	}
}

// --- Test Cases ---

func (suite *SaleServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	req := suite.createRequest(1500000)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.tenantID, suite.projectID).Return(&domain.Project{ProjectID: suite.projectID, TenantID: suite.tenantID}, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.tenantID, suite.customerID).Return(&domain.Customer{CustomerID: suite.customerID, TenantID: suite.tenantID}, nil).Once()
	suite.mockSaleRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.FlatSale")).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.NotEmpty(sale.SaleID)
	suite.Equal(suite.tenantID, sale.TenantID)
	suite.True(sale.TotalAmount.Equal(req.TotalAmount))
	suite.True(sale.PaidAmount.IsZero())
	suite.Equal(domain.Unpaid, sale.Status)
	suite.Equal(suite.userID, sale.CreatedBy)

	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockProjectRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_NonPositiveTotal() {
	ctx := context.Background()
	req := suite.createRequest(0)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(sale)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "SaveSale")
}

func (suite *SaleServiceTestSuite) TestCreateSale_UnknownProject() {
	ctx := context.Background()
	req := suite.createRequest(1000)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.tenantID, suite.projectID).Return(nil, apperrors.ErrNotFound).Once()

	sale, err := suite.service.CreateSale(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(sale)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "FindCustomerByID")
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "SaveSale")
}

func (suite *SaleServiceTestSuite) TestListSales_ProjectFilter() {
	ctx := context.Background()
	sales := []domain.FlatSale{{SaleID: uuid.NewString(), TenantID: suite.tenantID, ProjectID: suite.projectID}}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockSaleRepo.On("ListSalesByProject", ctx, suite.tenantID, suite.projectID, 20, (*string)(nil)).Return(sales, nil, nil).Once()

	params := dto.ListSalesParams{ListParams: dto.ListParams{Limit: 20}, ProjectID: &suite.projectID}
	result, nextToken, err := suite.service.ListSales(ctx, suite.tenantID, params, suite.userID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.Nil(nextToken)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "ListSalesByTenant")
}

func (suite *SaleServiceTestSuite) TestUpdateSaleDetails_MergesFields() {
	ctx := context.Background()
	saleID := uuid.NewString()
	existing := domain.FlatSale{
		SaleID:     saleID,
		TenantID:   suite.tenantID,
		ProjectID:  suite.projectID,
		CustomerID: suite.customerID,
		FlatNumber: "A-101",
		Note:       "original",
		Balance:    domain.NewBalance(decimal.NewFromInt(1000)),
	}
	newFlat := "B-204"

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockSaleRepo.On("FindSaleByID", ctx, suite.tenantID, saleID).Return(&existing, nil).Once()
	suite.mockSaleRepo.On("UpdateSaleDetails", ctx, mock.MatchedBy(func(s domain.FlatSale) bool {
		return s.FlatNumber == newFlat && s.Note == "original" && s.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	sale, err := suite.service.UpdateSaleDetails(ctx, suite.tenantID, saleID, dto.UpdateSaleRequest{FlatNumber: &newFlat}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newFlat, sale.FlatNumber)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeleteSale_RequiresAdmin() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	err := suite.service.DeleteSale(ctx, suite.tenantID, saleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "DeleteSale")
}

func (suite *SaleServiceTestSuite) TestDeleteSale_ConflictWithEntries() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleAdmin).Return(nil).Once()
	suite.mockSaleRepo.On("DeleteSale", ctx, suite.tenantID, saleID).Return(apperrors.ErrConflict).Once()

	err := suite.service.DeleteSale(ctx, suite.tenantID, saleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
