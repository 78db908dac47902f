package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatedesk/backoffice/internal/core/domain"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportHandler serves downloadable artifacts for one aggregate kind.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
	kind          domain.AggregateKind
	parentParam   string
}

func newReportHandler(rs portssvc.ReportSvcFacade, kind domain.AggregateKind, parentParam string) *reportHandler {
	return &reportHandler{
		reportService: rs,
		kind:          kind,
		parentParam:   parentParam,
	}
}

// registerReportRoutes registers the receipt and register download routes
// under a specific aggregate group.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade, kind domain.AggregateKind, parentParam string) {
	h := newReportHandler(reportService, kind, parentParam)

	rg.GET("/payments/:payment_id/receipt", h.downloadReceipt)
	rg.GET("/payments-register", h.downloadRegister)
}

func (h *reportHandler) downloadReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	parentID := c.Param(h.parentParam)
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pdfBytes, err := h.reportService.BuildPaymentReceipt(c.Request.Context(), tenantID, h.kind, parentID, paymentID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", paymentID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *reportHandler) downloadRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	parentID := c.Param(h.parentParam)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	xlsxBytes, err := h.reportService.BuildPaymentRegister(c.Request.Context(), tenantID, h.kind, parentID, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payments-%s.xlsx", parentID))
	c.Data(http.StatusOK, xlsxContentType, xlsxBytes)
}
