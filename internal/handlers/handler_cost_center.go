package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type costCenterHandler struct {
	costCenterService portssvc.CostCenterSvcFacade
}

func newCostCenterHandler(cs portssvc.CostCenterSvcFacade) *costCenterHandler {
	return &costCenterHandler{costCenterService: cs}
}

func registerCostCenterRoutes(rg *gin.RouterGroup, cs portssvc.CostCenterSvcFacade) {
	h := newCostCenterHandler(cs)

	costCenters := rg.Group("/cost-centers")
	{
		costCenters.POST("", h.createCostCenter)
		costCenters.GET("", h.listCostCenters)
		costCenters.GET("/:cost_center_id", h.getCostCenter)
		costCenters.PUT("/:cost_center_id", h.updateCostCenter)
		costCenters.POST("/:cost_center_id/deactivate", h.deactivateCostCenter)
	}
}

// createCostCenter godoc
// @Summary Create a cost center
// @Description Creates a cost center for tagging voucher lines.
// @Tags cost-centers
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param costCenter body dto.CreateCostCenterRequest true "Cost center details"
// @Success 201 {object} dto.CostCenterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/cost-centers [post]
func (h *costCenterHandler) createCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	costCenter, err := h.costCenterService.CreateCostCenter(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create cost center")
		return
	}

	logger.Info("Cost center created", slog.String("cost_center_id", costCenter.CostCenterID))
	c.JSON(http.StatusCreated, dto.ToCostCenterResponse(costCenter))
}

// listCostCenters godoc
// @Summary List cost centers
// @Description Retrieves all cost centers in the business.
// @Tags cost-centers
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {array} dto.CostCenterResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/cost-centers [get]
func (h *costCenterHandler) listCostCenters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	costCenters, err := h.costCenterService.ListCostCenters(c.Request.Context(), businessID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list cost centers")
		return
	}

	resp := make([]dto.CostCenterResponse, len(costCenters))
	for i := range costCenters {
		resp[i] = dto.ToCostCenterResponse(&costCenters[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getCostCenter godoc
// @Summary Get a cost center
// @Description Retrieves a cost center by ID.
// @Tags cost-centers
// @Produce json
// @Param business_id path string true "Business ID"
// @Param cost_center_id path string true "Cost center ID"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/cost-centers/{cost_center_id} [get]
func (h *costCenterHandler) getCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	costCenterID := c.Param("cost_center_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	costCenter, err := h.costCenterService.GetCostCenterByID(c.Request.Context(), businessID, costCenterID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve cost center")
		return
	}
	c.JSON(http.StatusOK, dto.ToCostCenterResponse(costCenter))
}

// updateCostCenter godoc
// @Summary Update a cost center
// @Description Updates an existing cost center.
// @Tags cost-centers
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param cost_center_id path string true "Cost center ID"
// @Param costCenter body dto.UpdateCostCenterRequest true "Fields to update"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/cost-centers/{cost_center_id} [put]
func (h *costCenterHandler) updateCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	costCenterID := c.Param("cost_center_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	costCenter, err := h.costCenterService.UpdateCostCenter(c.Request.Context(), businessID, costCenterID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update cost center")
		return
	}

	logger.Info("Cost center updated", slog.String("cost_center_id", costCenterID))
	c.JSON(http.StatusOK, dto.ToCostCenterResponse(costCenter))
}

// deactivateCostCenter godoc
// @Summary Deactivate a cost center
// @Description Marks a cost center inactive.
// @Tags cost-centers
// @Produce json
// @Param business_id path string true "Business ID"
// @Param cost_center_id path string true "Cost center ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/cost-centers/{cost_center_id}/deactivate [post]
func (h *costCenterHandler) deactivateCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	costCenterID := c.Param("cost_center_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.costCenterService.DeactivateCostCenter(c.Request.Context(), businessID, costCenterID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate cost center")
		return
	}

	logger.Info("Cost center deactivated", slog.String("cost_center_id", costCenterID))
	c.Status(http.StatusNoContent)
}
