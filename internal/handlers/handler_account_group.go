package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountGroupHandler handles HTTP requests for the account group hierarchy.
type accountGroupHandler struct {
	groupService portssvc.AccountGroupSvcFacade
}

func newAccountGroupHandler(gs portssvc.AccountGroupSvcFacade) *accountGroupHandler {
	return &accountGroupHandler{groupService: gs}
}

func registerAccountGroupRoutes(rg *gin.RouterGroup, gs portssvc.AccountGroupSvcFacade) {
	h := newAccountGroupHandler(gs)

	groups := rg.Group("/account-groups")
	{
		groups.POST("", h.createAccountGroup)
		groups.GET("", h.listAccountGroups)
		groups.GET("/:group_id", h.getAccountGroup)
		groups.PUT("/:group_id", h.updateAccountGroup)
		groups.DELETE("/:group_id", h.deleteAccountGroup)
	}
}

// createAccountGroup godoc
// @Summary Create an account group
// @Description Creates an account group. Child groups inherit their parent's nature.
// @Tags chart-of-accounts
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param group body dto.CreateAccountGroupRequest true "Account group details"
// @Success 201 {object} dto.AccountGroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/account-groups [post]
func (h *accountGroupHandler) createAccountGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateAccountGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.CreateAccountGroup(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create account group")
		return
	}

	logger.Info("Account group created", slog.String("account_group_id", group.AccountGroupID))
	c.JSON(http.StatusCreated, dto.ToAccountGroupResponse(group))
}

// listAccountGroups godoc
// @Summary List account groups
// @Description Retrieves all account groups in the business, ordered for tree display.
// @Tags chart-of-accounts
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {array} dto.AccountGroupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/account-groups [get]
func (h *accountGroupHandler) listAccountGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	groups, err := h.groupService.ListAccountGroups(c.Request.Context(), businessID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list account groups")
		return
	}

	resp := make([]dto.AccountGroupResponse, len(groups))
	for i := range groups {
		resp[i] = dto.ToAccountGroupResponse(&groups[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getAccountGroup godoc
// @Summary Get an account group
// @Description Retrieves an account group by ID.
// @Tags chart-of-accounts
// @Produce json
// @Param business_id path string true "Business ID"
// @Param group_id path string true "Account group ID"
// @Success 200 {object} dto.AccountGroupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/account-groups/{group_id} [get]
func (h *accountGroupHandler) getAccountGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	groupID := c.Param("group_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	group, err := h.groupService.GetAccountGroupByID(c.Request.Context(), businessID, groupID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve account group")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountGroupResponse(group))
}

// updateAccountGroup godoc
// @Summary Update an account group
// @Description Updates an account group. Re-parenting that would change the nature or create a cycle is rejected.
// @Tags chart-of-accounts
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param group_id path string true "Account group ID"
// @Param group body dto.UpdateAccountGroupRequest true "Fields to update"
// @Success 200 {object} dto.AccountGroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/account-groups/{group_id} [put]
func (h *accountGroupHandler) updateAccountGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	groupID := c.Param("group_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateAccountGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.UpdateAccountGroup(c.Request.Context(), businessID, groupID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update account group")
		return
	}

	logger.Info("Account group updated", slog.String("account_group_id", groupID))
	c.JSON(http.StatusOK, dto.ToAccountGroupResponse(group))
}

// deleteAccountGroup godoc
// @Summary Delete an account group
// @Description Removes an empty, non-system account group.
// @Tags chart-of-accounts
// @Produce json
// @Param business_id path string true "Business ID"
// @Param group_id path string true "Account group ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/account-groups/{group_id} [delete]
func (h *accountGroupHandler) deleteAccountGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	groupID := c.Param("group_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.groupService.DeleteAccountGroup(c.Request.Context(), businessID, groupID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete account group")
		return
	}

	logger.Info("Account group deleted", slog.String("account_group_id", groupID))
	c.Status(http.StatusNoContent)
}
