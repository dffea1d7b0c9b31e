package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type voucherTypeHandler struct {
	voucherTypeService portssvc.VoucherTypeSvcFacade
}

func newVoucherTypeHandler(vs portssvc.VoucherTypeSvcFacade) *voucherTypeHandler {
	return &voucherTypeHandler{voucherTypeService: vs}
}

func registerVoucherTypeRoutes(rg *gin.RouterGroup, vs portssvc.VoucherTypeSvcFacade) {
	h := newVoucherTypeHandler(vs)

	voucherTypes := rg.Group("/voucher-types")
	{
		voucherTypes.POST("", h.createVoucherType)
		voucherTypes.GET("", h.listVoucherTypes)
		voucherTypes.GET("/:voucher_type_id", h.getVoucherType)
		voucherTypes.PUT("/:voucher_type_id", h.updateVoucherType)
	}
}

// createVoucherType godoc
// @Summary Create a voucher type
// @Description Creates a custom voucher type with its own numbering series.
// @Tags voucher-types
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param voucherType body dto.CreateVoucherTypeRequest true "Voucher type details"
// @Success 201 {object} dto.VoucherTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/voucher-types [post]
func (h *voucherTypeHandler) createVoucherType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateVoucherTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	voucherType, err := h.voucherTypeService.CreateVoucherType(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create voucher type")
		return
	}

	logger.Info("Voucher type created", slog.String("voucher_type_id", voucherType.VoucherTypeID))
	c.JSON(http.StatusCreated, dto.ToVoucherTypeResponse(voucherType))
}

// listVoucherTypes godoc
// @Summary List voucher types
// @Description Retrieves all voucher types in the business.
// @Tags voucher-types
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {array} dto.VoucherTypeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/voucher-types [get]
func (h *voucherTypeHandler) listVoucherTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	voucherTypes, err := h.voucherTypeService.ListVoucherTypes(c.Request.Context(), businessID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list voucher types")
		return
	}

	resp := make([]dto.VoucherTypeResponse, len(voucherTypes))
	for i := range voucherTypes {
		resp[i] = dto.ToVoucherTypeResponse(&voucherTypes[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getVoucherType godoc
// @Summary Get a voucher type
// @Description Retrieves a voucher type by ID.
// @Tags voucher-types
// @Produce json
// @Param business_id path string true "Business ID"
// @Param voucher_type_id path string true "Voucher type ID"
// @Success 200 {object} dto.VoucherTypeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/voucher-types/{voucher_type_id} [get]
func (h *voucherTypeHandler) getVoucherType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	voucherTypeID := c.Param("voucher_type_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	voucherType, err := h.voucherTypeService.GetVoucherTypeByID(c.Request.Context(), businessID, voucherTypeID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve voucher type")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherTypeResponse(voucherType))
}

// updateVoucherType godoc
// @Summary Update a voucher type
// @Description Updates a voucher type. Nature and starting number are immutable once vouchers exist under it.
// @Tags voucher-types
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param voucher_type_id path string true "Voucher type ID"
// @Param voucherType body dto.UpdateVoucherTypeRequest true "Fields to update"
// @Success 200 {object} dto.VoucherTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/voucher-types/{voucher_type_id} [put]
func (h *voucherTypeHandler) updateVoucherType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	voucherTypeID := c.Param("voucher_type_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateVoucherTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	voucherType, err := h.voucherTypeService.UpdateVoucherType(c.Request.Context(), businessID, voucherTypeID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update voucher type")
		return
	}

	logger.Info("Voucher type updated", slog.String("voucher_type_id", voucherTypeID))
	c.JSON(http.StatusOK, dto.ToVoucherTypeResponse(voucherType))
}
