package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles HTTP requests for vouchers and the posted ledger.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: vs}
}

// RegisterVoucherRoutes registers voucher CRUD and the per-account ledger feed.
func RegisterVoucherRoutes(rg *gin.RouterGroup, vs portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(vs)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucher_id", h.getVoucher)
		vouchers.PUT("/:voucher_id", h.updateVoucher)
		vouchers.DELETE("/:voucher_id", h.deleteVoucher)
	}

	// Ledger view of an account: its posted journal entries, newest first.
	rg.GET("/accounts/:account_id/entries", h.listJournalEntriesByAccount)
}

// createVoucher godoc
// @Summary Create a voucher
// @Description Creates a voucher with its line items and posts the mirrored journal entries atomically. Debits and credits must balance.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create voucher")
		return
	}

	logger.Info("Voucher created",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("voucher_number", voucher.VoucherNumber))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Description Retrieves a paginated list of vouchers, newest first. Supports filtering by type, financial year, party and date range.
// @Tags vouchers
// @Produce json
// @Param business_id path string true "Business ID"
// @Param voucherTypeID query string false "Filter by voucher type"
// @Param financialYearID query string false "Filter by financial year"
// @Param partyID query string false "Filter by party"
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.voucherService.ListVouchers(c.Request.Context(), businessID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list vouchers")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getVoucher godoc
// @Summary Get a voucher
// @Description Retrieves a voucher with its line items.
// @Tags vouchers
// @Produce json
// @Param business_id path string true "Business ID"
// @Param voucher_id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/vouchers/{voucher_id} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	voucherID := c.Param("voucher_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), businessID, voucherID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// updateVoucher godoc
// @Summary Update a voucher
// @Description Updates voucher details. When items are supplied they replace the existing lines and the journal entries are reposted. The voucher number never changes.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param voucher_id path string true "Voucher ID"
// @Param voucher body dto.UpdateVoucherRequest true "Fields to update"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/vouchers/{voucher_id} [put]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	voucherID := c.Param("voucher_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), businessID, voucherID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update voucher")
		return
	}

	logger.Info("Voucher updated", slog.String("voucher_id", voucherID))
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// deleteVoucher godoc
// @Summary Delete a voucher
// @Description Soft-deletes a voucher so it no longer affects any balance or report. Its number is not reused.
// @Tags vouchers
// @Produce json
// @Param business_id path string true "Business ID"
// @Param voucher_id path string true "Voucher ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/vouchers/{voucher_id} [delete]
func (h *voucherHandler) deleteVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	voucherID := c.Param("voucher_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), businessID, voucherID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete voucher")
		return
	}

	logger.Info("Voucher deleted", slog.String("voucher_id", voucherID))
	c.Status(http.StatusNoContent)
}

// listJournalEntriesByAccount godoc
// @Summary List an account's journal entries
// @Description Retrieves the posted journal entries of an account, newest first, with token pagination.
// @Tags vouchers
// @Produce json
// @Param business_id path string true "Business ID"
// @Param account_id path string true "Ledger account ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/accounts/{account_id}/entries [get]
func (h *voucherHandler) listJournalEntriesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.voucherService.ListJournalEntriesByAccount(c.Request.Context(), businessID, accountID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}
