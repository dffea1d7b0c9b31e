package handlers

import (
	"net/http"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService) {
	h := newReportingHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/cost-center-profit-and-loss", h.costCenterProfitAndLoss)
	}
}

// trialBalance godoc
// @Summary Trial balance
// @Description Generates the trial balance as of a date. Total debits always equal total credits.
// @Tags reports
// @Produce json
// @Param business_id path string true "Business ID"
// @Param asOf query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), businessID, params.AsOf, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(params.AsOf, rows))
}

// profitAndLoss godoc
// @Summary Profit and loss
// @Description Generates the profit and loss statement for a period, with gross and net profit.
// @Tags reports
// @Produce json
// @Param business_id path string true "Business ID"
// @Param fromDate query string true "Period start (YYYY-MM-DD)"
// @Param toDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.PAndLResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reports/profit-and-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), businessID, params.FromDate, params.ToDate, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate profit and loss")
		return
	}
	c.JSON(http.StatusOK, dto.PAndLResponse{
		FromDate:    params.FromDate,
		ToDate:      params.ToDate,
		PAndLReport: *report,
	})
}

// balanceSheet godoc
// @Summary Balance sheet
// @Description Generates the balance sheet as of a date, including retained earnings to date.
// @Tags reports
// @Produce json
// @Param business_id path string true "Business ID"
// @Param asOf query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), businessID, params.AsOf, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceSheetResponse{
		AsOf:               params.AsOf,
		BalanceSheetReport: *report,
	})
}

// costCenterProfitAndLoss godoc
// @Summary Cost center profit and loss
// @Description Generates per-cost-center income and expense totals for a period.
// @Tags reports
// @Produce json
// @Param business_id path string true "Business ID"
// @Param fromDate query string true "Period start (YYYY-MM-DD)"
// @Param toDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.CostCenterPAndLResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reports/cost-center-profit-and-loss [get]
func (h *reportingHandler) costCenterProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.CostCenterProfitAndLoss(c.Request.Context(), businessID, params.FromDate, params.ToDate, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate cost center report")
		return
	}
	if rows == nil {
		rows = []domain.CostCenterPAndLRow{}
	}
	c.JSON(http.StatusOK, dto.CostCenterPAndLResponse{
		FromDate: params.FromDate,
		ToDate:   params.ToDate,
		Rows:     rows,
	})
}
