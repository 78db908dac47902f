package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/handlers"
	"github.com/estatedesk/backoffice/internal/platform/config"
)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ApplyPayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID string, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentEntry, *domain.Balance, error) {
	args := m.Called(ctx, tenantID, kind, parentID, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.PaymentEntry), args.Get(1).(*domain.Balance), args.Error(2)
}

func (m *MockPaymentService) EditPayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, req dto.EditPaymentRequest, userID string) (*domain.Balance, error) {
	args := m.Called(ctx, tenantID, kind, parentID, paymentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockPaymentService) DeletePayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, userID string) (*domain.Balance, error) {
	args := m.Called(ctx, tenantID, kind, parentID, paymentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID, paymentID string, userID string) (*domain.PaymentEntry, error) {
	args := m.Called(ctx, tenantID, kind, parentID, paymentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentEntry), args.Error(1)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, tenantID string, kind domain.AggregateKind, parentID string, params dto.ListParams, userID string) ([]domain.PaymentEntry, *string, error) {
	args := m.Called(ctx, tenantID, kind, parentID, params, userID)
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

// Ensure mock implements the interface
var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Test Suite ---
type PaymentHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *MockPaymentService
	jwtSecret          string
	tenantID           string
	userID             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *PaymentHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockPaymentService = new(MockPaymentService)

	suite.Require().NoError(dto.RegisterCustomValidations())

	cfg := &config.Config{
		JWTSecret:      suite.jwtSecret,
		LoginRateLimit: "5-M",
	}
	services := &portssvc.ServiceContainer{
		Payment: suite.mockPaymentService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *PaymentHandlerTestSuite) authorizedRequest(method, url string, body []byte) *http.Request {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *PaymentHandlerTestSuite) TestApplyPayment_Success() {
	saleID := uuid.NewString()
	paymentID := uuid.NewString()
	amount := decimal.NewFromInt(400)

	entry := &domain.PaymentEntry{
		PaymentID:   paymentID,
		ParentID:    saleID,
		Kind:        domain.KindFlatSale,
		Amount:      amount,
		PaymentDate: time.Now(),
	}
	balance := &domain.Balance{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  amount,
		Status:      domain.PartiallyPaid,
	}

	suite.mockPaymentService.On("ApplyPayment",
		mock.Anything,
		suite.tenantID,
		domain.KindFlatSale,
		saleID,
		mock.MatchedBy(func(r dto.ApplyPaymentRequest) bool {
			return r.Amount.Equal(amount)
		}),
		suite.userID,
	).Return(entry, balance, nil).Once()

	body, _ := json.Marshal(gin.H{
		"amount":      "400",
		"paymentDate": time.Now().Format(time.RFC3339),
		"reference":   "UTR-1234",
	})
	url := fmt.Sprintf("/api/v1/tenants/%s/sales/%s/payments", suite.tenantID, saleID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, url, body))

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.ApplyPaymentResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.Require().NoError(err)
	suite.Equal(paymentID, responseBody.Payment.PaymentID)
	suite.True(responseBody.Balance.PaidAmount.Equal(amount))
	suite.Equal(string(domain.PartiallyPaid), responseBody.Balance.Status)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestApplyPayment_Overpayment() {
	saleID := uuid.NewString()

	suite.mockPaymentService.On("ApplyPayment",
		mock.Anything, suite.tenantID, domain.KindFlatSale, saleID, mock.Anything, suite.userID,
	).Return(nil, nil, apperrors.ErrOverpayment).Once()

	body, _ := json.Marshal(gin.H{
		"amount":      "99999",
		"paymentDate": time.Now().Format(time.RFC3339),
	})
	url := fmt.Sprintf("/api/v1/tenants/%s/sales/%s/payments", suite.tenantID, saleID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, url, body))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestDeletePayment_BillRouteUsesExpenseKind() {
	billID := uuid.NewString()
	paymentID := uuid.NewString()
	balance := &domain.Balance{
		TotalAmount: decimal.NewFromInt(500),
		PaidAmount:  decimal.Zero,
		Status:      domain.Unpaid,
	}

	suite.mockPaymentService.On("DeletePayment",
		mock.Anything, suite.tenantID, domain.KindExpenseBill, billID, paymentID, suite.userID,
	).Return(balance, nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/bills/%s/payments/%s", suite.tenantID, billID, paymentID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodDelete, url, nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestApplyPayment_MissingToken() {
	saleID := uuid.NewString()
	body, _ := json.Marshal(gin.H{
		"amount":      "100",
		"paymentDate": time.Now().Format(time.RFC3339),
	})
	url := fmt.Sprintf("/api/v1/tenants/%s/sales/%s/payments", suite.tenantID, saleID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "ApplyPayment")
}

func (suite *PaymentHandlerTestSuite) TestGetPayment_NotFound() {
	saleID := uuid.NewString()
	paymentID := uuid.NewString()

	suite.mockPaymentService.On("GetPayment",
		mock.Anything, suite.tenantID, domain.KindFlatSale, saleID, paymentID, suite.userID,
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/sales/%s/payments/%s", suite.tenantID, saleID, paymentID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, url, nil))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
