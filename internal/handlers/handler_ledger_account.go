package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerAccountHandler handles HTTP requests for ledger accounts.
type ledgerAccountHandler struct {
	accountService portssvc.LedgerAccountSvcFacade
}

func newLedgerAccountHandler(as portssvc.LedgerAccountSvcFacade) *ledgerAccountHandler {
	return &ledgerAccountHandler{accountService: as}
}

func registerLedgerAccountRoutes(rg *gin.RouterGroup, as portssvc.LedgerAccountSvcFacade) {
	h := newLedgerAccountHandler(as)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createLedgerAccount)
		accounts.GET("", h.listLedgerAccounts)
		accounts.GET("/:account_id", h.getLedgerAccount)
		accounts.GET("/:account_id/balance", h.getAccountBalance)
		accounts.PUT("/:account_id", h.updateLedgerAccount)
		accounts.POST("/:account_id/deactivate", h.deactivateLedgerAccount)
	}
}

// createLedgerAccount godoc
// @Summary Create a ledger account
// @Description Creates a ledger account under an account group.
// @Tags chart-of-accounts
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param account body dto.CreateLedgerAccountRequest true "Account details"
// @Success 201 {object} dto.LedgerAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/accounts [post]
func (h *ledgerAccountHandler) createLedgerAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateLedgerAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateLedgerAccount(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create ledger account")
		return
	}

	logger.Info("Ledger account created", slog.String("ledger_account_id", account.LedgerAccountID))
	c.JSON(http.StatusCreated, dto.ToLedgerAccountResponse(account))
}

// listLedgerAccounts godoc
// @Summary List ledger accounts
// @Description Retrieves ledger accounts in the business, optionally filtered to one group.
// @Tags chart-of-accounts
// @Produce json
// @Param business_id path string true "Business ID"
// @Param groupID query string false "Filter by account group ID"
// @Success 200 {array} dto.LedgerAccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/accounts [get]
func (h *ledgerAccountHandler) listLedgerAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var groupID *string
	if v := c.Query("groupID"); v != "" {
		groupID = &v
	}

	accounts, err := h.accountService.ListLedgerAccounts(c.Request.Context(), businessID, groupID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list ledger accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerAccountResponses(accounts))
}

// getLedgerAccount godoc
// @Summary Get a ledger account
// @Description Retrieves a ledger account by ID.
// @Tags chart-of-accounts
// @Produce json
// @Param business_id path string true "Business ID"
// @Param account_id path string true "Ledger account ID"
// @Success 200 {object} dto.LedgerAccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/accounts/{account_id} [get]
func (h *ledgerAccountHandler) getLedgerAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.GetLedgerAccountByID(c.Request.Context(), businessID, accountID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve ledger account")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerAccountResponse(account))
}

// getAccountBalance godoc
// @Summary Get an account's balance
// @Description Computes the account's current balance including its opening balance.
// @Tags chart-of-accounts
// @Produce json
// @Param business_id path string true "Business ID"
// @Param account_id path string true "Ledger account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/accounts/{account_id}/balance [get]
func (h *ledgerAccountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.accountService.GetAccountBalance(c.Request.Context(), businessID, accountID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute account balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// updateLedgerAccount godoc
// @Summary Update a ledger account
// @Description Updates a ledger account. Opening balances are locked once entries are posted.
// @Tags chart-of-accounts
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param account_id path string true "Ledger account ID"
// @Param account body dto.UpdateLedgerAccountRequest true "Fields to update"
// @Success 200 {object} dto.LedgerAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/accounts/{account_id} [put]
func (h *ledgerAccountHandler) updateLedgerAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateLedgerAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateLedgerAccount(c.Request.Context(), businessID, accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update ledger account")
		return
	}

	logger.Info("Ledger account updated", slog.String("ledger_account_id", accountID))
	c.JSON(http.StatusOK, dto.ToLedgerAccountResponse(account))
}

// deactivateLedgerAccount godoc
// @Summary Deactivate a ledger account
// @Description Marks an account inactive. Accounts with posted entries cannot be removed, only deactivated.
// @Tags chart-of-accounts
// @Produce json
// @Param business_id path string true "Business ID"
// @Param account_id path string true "Ledger account ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/accounts/{account_id}/deactivate [post]
func (h *ledgerAccountHandler) deactivateLedgerAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateLedgerAccount(c.Request.Context(), businessID, accountID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate ledger account")
		return
	}

	logger.Info("Ledger account deactivated", slog.String("ledger_account_id", accountID))
	c.Status(http.StatusNoContent)
}
