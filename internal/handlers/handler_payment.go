package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatedesk/backoffice/internal/core/domain"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
)

// paymentHandler serves the payment routes of one aggregate kind. The same
// handler code runs for sales and bills; only the kind and the route param
// naming the parent differ.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	kind           domain.AggregateKind
	parentParam    string
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, kind domain.AggregateKind, parentParam string) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
		kind:           kind,
		parentParam:    parentParam,
	}
}

// registerPaymentRoutes registers payment and report routes under a specific
// aggregate group (a sale or a bill).
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, reportService portssvc.ReportSvcFacade, kind domain.AggregateKind, parentParam string) {
	h := newPaymentHandler(paymentService, kind, parentParam)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.applyPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:payment_id", h.getPayment)
		payments.PUT("/:payment_id", h.editPayment)
		payments.DELETE("/:payment_id", h.deletePayment)
	}

	registerReportRoutes(rg, reportService, kind, parentParam)
}

func (h *paymentHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	parentID := c.Param(h.parentParam)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, balance, err := h.paymentService.ApplyPayment(c.Request.Context(), tenantID, h.kind, parentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Payment applied",
		slog.String("payment_id", entry.PaymentID),
		slog.String("parent_id", parentID),
		slog.String("kind", string(h.kind)),
		slog.String("amount", entry.Amount.String()))
	c.JSON(http.StatusCreated, dto.ApplyPaymentResponse{
		Payment: dto.ToPaymentResponse(entry),
		Balance: dto.ToBalanceResponse(balance),
	})
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	parentID := c.Param(h.parentParam)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	payments, nextToken, err := h.paymentService.ListPayments(c.Request.Context(), tenantID, h.kind, parentID, params, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: dto.ToPaymentResponses(payments), NextToken: nextToken})
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	parentID := c.Param(h.parentParam)
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), tenantID, h.kind, parentID, paymentID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) editPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	parentID := c.Param(h.parentParam)
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.EditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	balance, err := h.paymentService.EditPayment(c.Request.Context(), tenantID, h.kind, parentID, paymentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Payment edited",
		slog.String("payment_id", paymentID),
		slog.String("parent_id", parentID),
		slog.String("kind", string(h.kind)))
	c.JSON(http.StatusOK, gin.H{"balance": dto.ToBalanceResponse(balance)})
}

func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	parentID := c.Param(h.parentParam)
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.paymentService.DeletePayment(c.Request.Context(), tenantID, h.kind, parentID, paymentID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Payment deleted",
		slog.String("payment_id", paymentID),
		slog.String("parent_id", parentID),
		slog.String("kind", string(h.kind)))
	c.JSON(http.StatusOK, gin.H{"balance": dto.ToBalanceResponse(balance)})
}
