package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type financialYearHandler struct {
	financialYearService portssvc.FinancialYearSvcFacade
}

func newFinancialYearHandler(fs portssvc.FinancialYearSvcFacade) *financialYearHandler {
	return &financialYearHandler{financialYearService: fs}
}

func registerFinancialYearRoutes(rg *gin.RouterGroup, fs portssvc.FinancialYearSvcFacade) {
	h := newFinancialYearHandler(fs)

	years := rg.Group("/financial-years")
	{
		years.POST("", h.createFinancialYear)
		years.GET("", h.listFinancialYears)
		years.GET("/:financial_year_id", h.getFinancialYear)
		years.POST("/:financial_year_id/set-current", h.setCurrentFinancialYear)
		years.POST("/:financial_year_id/lock", h.lockFinancialYear)
		years.POST("/:financial_year_id/unlock", h.unlockFinancialYear)
	}
}

// createFinancialYear godoc
// @Summary Create a financial year
// @Description Creates a financial year. Years that overlap an existing year are rejected.
// @Tags financial-years
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param year body dto.CreateFinancialYearRequest true "Financial year details"
// @Success 201 {object} dto.FinancialYearResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/financial-years [post]
func (h *financialYearHandler) createFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	year, err := h.financialYearService.CreateFinancialYear(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create financial year")
		return
	}

	logger.Info("Financial year created", slog.String("financial_year_id", year.FinancialYearID))
	c.JSON(http.StatusCreated, dto.ToFinancialYearResponse(year))
}

// listFinancialYears godoc
// @Summary List financial years
// @Description Retrieves all financial years in the business, oldest first.
// @Tags financial-years
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {array} dto.FinancialYearResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/financial-years [get]
func (h *financialYearHandler) listFinancialYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	years, err := h.financialYearService.ListFinancialYears(c.Request.Context(), businessID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list financial years")
		return
	}

	resp := make([]dto.FinancialYearResponse, len(years))
	for i := range years {
		resp[i] = dto.ToFinancialYearResponse(&years[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getFinancialYear godoc
// @Summary Get a financial year
// @Description Retrieves a financial year by ID.
// @Tags financial-years
// @Produce json
// @Param business_id path string true "Business ID"
// @Param financial_year_id path string true "Financial year ID"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/financial-years/{financial_year_id} [get]
func (h *financialYearHandler) getFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	financialYearID := c.Param("financial_year_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	year, err := h.financialYearService.GetFinancialYearByID(c.Request.Context(), businessID, financialYearID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve financial year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(year))
}

// setCurrentFinancialYear godoc
// @Summary Set the current financial year
// @Description Marks the year as the business's current year for default voucher dating.
// @Tags financial-years
// @Produce json
// @Param business_id path string true "Business ID"
// @Param financial_year_id path string true "Financial year ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/financial-years/{financial_year_id}/set-current [post]
func (h *financialYearHandler) setCurrentFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	financialYearID := c.Param("financial_year_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.financialYearService.SetCurrentFinancialYear(c.Request.Context(), businessID, financialYearID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to set current financial year")
		return
	}

	logger.Info("Current financial year set", slog.String("financial_year_id", financialYearID))
	c.Status(http.StatusNoContent)
}

// lockFinancialYear godoc
// @Summary Lock a financial year
// @Description Locks a year against any further posting, editing or deletion of vouchers.
// @Tags financial-years
// @Produce json
// @Param business_id path string true "Business ID"
// @Param financial_year_id path string true "Financial year ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/financial-years/{financial_year_id}/lock [post]
func (h *financialYearHandler) lockFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	financialYearID := c.Param("financial_year_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.financialYearService.LockFinancialYear(c.Request.Context(), businessID, financialYearID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to lock financial year")
		return
	}

	logger.Info("Financial year locked", slog.String("financial_year_id", financialYearID))
	c.Status(http.StatusNoContent)
}

// unlockFinancialYear godoc
// @Summary Unlock a financial year
// @Description Reopens a locked year for posting.
// @Tags financial-years
// @Produce json
// @Param business_id path string true "Business ID"
// @Param financial_year_id path string true "Financial year ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/financial-years/{financial_year_id}/unlock [post]
func (h *financialYearHandler) unlockFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	financialYearID := c.Param("financial_year_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.financialYearService.UnlockFinancialYear(c.Request.Context(), businessID, financialYearID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to unlock financial year")
		return
	}

	logger.Info("Financial year unlocked", slog.String("financial_year_id", financialYearID))
	c.Status(http.StatusNoContent)
}
