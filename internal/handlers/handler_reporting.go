package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// noSalesMessage is returned as plain text when an export window holds no sales.
const noSalesMessage = "No sales data found for the specified date range"

type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

// RegisterReportingRoutes registers the analytics and report routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService, now: time.Now}

	rg.GET("/analytics/summary", h.getSummary)
	rg.GET("/reports/sales/export", h.exportSales)
}

// getSummary godoc
// @Summary Dashboard summary
// @Description Totals, time-bucketed sales and the daily sales chart
// @Tags analytics
// @Produce  json
// @Param   range query string false "Chart range" Enums(7days, 30days, 90days, 6months, 12months, all) default(30days)
// @Success 200 {object} dto.AnalyticsSummaryResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build summary"
// @Security BearerAuth
// @Router /analytics/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chartRange := domain.ChartRange(c.Query("range"))

	summary, err := h.reportingService.Summary(c.Request.Context(), chartRange)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to build summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalyticsSummaryResponse(summary))
}

// exportSales godoc
// @Summary Export sales as CSV
// @Description Downloads the sales report for an optional inclusive date window
// @Tags reports
// @Produce  text/csv
// @Param   startDate query string false "Start date (YYYY-MM-DD)"
// @Param   endDate query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {file} file "sales-report-YYYY-MM-DD.csv"
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to export sales"
// @Security BearerAuth
// @Router /reports/sales/export [get]
func (h *reportingHandler) exportSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, err := queryDate(c, "startDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected YYYY-MM-DD"})
		return
	}
	end, err := queryDate(c, "endDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected YYYY-MM-DD"})
		return
	}

	var buf bytes.Buffer
	n, err := h.reportingService.ExportSalesCSV(c.Request.Context(), dto.SalesExportParams{StartDate: start, EndDate: end}, &buf)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to export sales")
		return
	}

	filename := fmt.Sprintf("sales-report-%s.csv", h.now().UTC().Format(queryDateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if n == 0 {
		c.String(http.StatusOK, noSalesMessage)
		return
	}

	logger.Info("Sales exported", slog.Int("sales", n))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
