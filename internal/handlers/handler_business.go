package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// businessHandler handles HTTP requests related to businesses and membership.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

func newBusinessHandler(bs portssvc.BusinessSvcFacade) *businessHandler {
	return &businessHandler{businessService: bs}
}

// registerBusinessRoutes registers business management routes and nests every
// business-scoped entity under /businesses/:business_id.
func registerBusinessRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBusinessHandler(services.Business)

	businesses := rg.Group("/businesses")
	{
		businesses.POST("", h.createBusiness)
		businesses.GET("", h.listUserBusinesses)
	}

	business := rg.Group("/businesses/:business_id")
	{
		business.GET("", h.getBusiness)
		business.PUT("", h.updateBusiness)
		business.POST("/deactivate", h.deactivateBusiness)
		business.POST("/activate", h.activateBusiness)

		members := business.Group("/users")
		{
			members.GET("", h.listBusinessUsers)
			members.POST("", h.addUserToBusiness)
			members.PUT("/:user_id/role", h.updateUserRole)
			members.DELETE("/:user_id", h.removeUserFromBusiness)
		}

		registerAccountGroupRoutes(business, services.AccountGroup)
		registerLedgerAccountRoutes(business, services.LedgerAccount)
		registerCostCenterRoutes(business, services.CostCenter)
		registerPartyRoutes(business, services.Party)
		registerVoucherTypeRoutes(business, services.VoucherType)
		registerFinancialYearRoutes(business, services.FinancialYear)
		RegisterVoucherRoutes(business, services.Voucher)
		registerReconciliationRoutes(business, services.Reconciliation)
		registerReportingRoutes(business, services.Reporting)
	}
}

// createBusiness godoc
// @Summary Create a new business
// @Description Creates a business, makes the creator its owner and seeds the default chart of accounts and voucher types.
// @Tags businesses
// @Accept json
// @Produce json
// @Param business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} dto.BusinessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), req.Name, req.Description, req.CurrencyCode, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create business")
		return
	}

	logger.Info("Business created", slog.String("business_id", business.BusinessID))
	c.JSON(http.StatusCreated, dto.ToBusinessResponse(business))
}

// listUserBusinesses godoc
// @Summary List my businesses
// @Description Retrieves the businesses the calling user belongs to.
// @Tags businesses
// @Produce json
// @Param includeDisabled query bool false "Include inactive businesses"
// @Success 200 {array} dto.BusinessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses [get]
func (h *businessHandler) listUserBusinesses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	includeDisabled := c.Query("includeDisabled") == "true"
	businesses, err := h.businessService.ListUserBusinesses(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list businesses")
		return
	}

	resp := make([]dto.BusinessResponse, len(businesses))
	for i := range businesses {
		resp[i] = dto.ToBusinessResponse(&businesses[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getBusiness godoc
// @Summary Get a business
// @Description Retrieves a business by ID.
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id} [get]
func (h *businessHandler) getBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	business, err := h.businessService.FindBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve business")
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// updateBusiness godoc
// @Summary Update a business
// @Description Updates business name or description. Admin only.
// @Tags businesses
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param business body dto.UpdateBusinessRequest true "Fields to update"
// @Success 200 {object} dto.BusinessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id} [put]
func (h *businessHandler) updateBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), businessID, req.Name, req.Description, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update business")
		return
	}

	logger.Info("Business updated", slog.String("business_id", businessID))
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// deactivateBusiness godoc
// @Summary Deactivate a business
// @Description Marks a business inactive. Owner only.
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/deactivate [post]
func (h *businessHandler) deactivateBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.businessService.DeactivateBusiness(c.Request.Context(), businessID, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate business")
		return
	}

	logger.Info("Business deactivated", slog.String("business_id", businessID))
	c.Status(http.StatusNoContent)
}

// activateBusiness godoc
// @Summary Activate a business
// @Description Marks a business active again. Owner only.
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/activate [post]
func (h *businessHandler) activateBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.businessService.ActivateBusiness(c.Request.Context(), businessID, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to activate business")
		return
	}

	logger.Info("Business activated", slog.String("business_id", businessID))
	c.Status(http.StatusNoContent)
}

// listBusinessUsers godoc
// @Summary List business members
// @Description Retrieves every member of the business with their role.
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {array} dto.BusinessUserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/users [get]
func (h *businessHandler) listBusinessUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.businessService.ListBusinessUsers(c.Request.Context(), businessID, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list business members")
		return
	}

	resp := make([]dto.BusinessUserResponse, len(members))
	for i := range members {
		resp[i] = dto.ToBusinessUserResponse(&members[i])
	}
	c.JSON(http.StatusOK, resp)
}

// addUserToBusiness godoc
// @Summary Add a member
// @Description Adds a user to the business with the given role. Admin only.
// @Tags businesses
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param member body dto.AddUserToBusinessRequest true "User and role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/users [post]
func (h *businessHandler) addUserToBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AddUserToBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.businessService.AddUserToBusiness(c.Request.Context(), addingUserID, req.UserID, businessID, req.Role); err != nil {
		respondServiceError(c, logger, err, "Failed to add user to business")
		return
	}

	logger.Info("User added to business",
		slog.String("business_id", businessID),
		slog.String("target_user_id", req.UserID),
		slog.String("role", string(req.Role)))
	c.Status(http.StatusNoContent)
}

// updateUserRole godoc
// @Summary Change a member's role
// @Description Updates a member's role in the business. Admin only.
// @Tags businesses
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param user_id path string true "User ID"
// @Param role body dto.UpdateBusinessUserRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/users/{user_id}/role [put]
func (h *businessHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateBusinessUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.businessService.UpdateUserBusinessRole(c.Request.Context(), requestingUserID, targetUserID, businessID, req.Role); err != nil {
		respondServiceError(c, logger, err, "Failed to update member role")
		return
	}

	logger.Info("Member role updated",
		slog.String("business_id", businessID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(req.Role)))
	c.Status(http.StatusNoContent)
}

// removeUserFromBusiness godoc
// @Summary Remove a member
// @Description Removes a user from the business. Admin only.
// @Tags businesses
// @Produce json
// @Param business_id path string true "Business ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/users/{user_id} [delete]
func (h *businessHandler) removeUserFromBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.businessService.RemoveUserFromBusiness(c.Request.Context(), requestingUserID, targetUserID, businessID); err != nil {
		respondServiceError(c, logger, err, "Failed to remove user from business")
		return
	}

	logger.Info("User removed from business",
		slog.String("business_id", businessID),
		slog.String("target_user_id", targetUserID))
	c.Status(http.StatusNoContent)
}
