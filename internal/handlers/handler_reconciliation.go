package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for bank reconciliation sessions.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

func registerReconciliationRoutes(rg *gin.RouterGroup, rs portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(rs)

	reconciliations := rg.Group("/reconciliations")
	{
		reconciliations.POST("", h.createReconciliation)
		reconciliations.GET("/:reconciliation_id", h.getReconciliation)
		reconciliations.GET("/:reconciliation_id/entries", h.listLinkedEntries)
		reconciliations.POST("/:reconciliation_id/entries", h.linkEntries)
		reconciliations.DELETE("/:reconciliation_id/entries/:journal_entry_id", h.unlinkEntry)
		reconciliations.POST("/:reconciliation_id/complete", h.completeReconciliation)
		reconciliations.POST("/:reconciliation_id/reopen", h.reopenReconciliation)
	}

	rg.GET("/accounts/:account_id/reconciliations", h.listReconciliations)
	rg.GET("/accounts/:account_id/unreconciled-entries", h.listUnreconciledEntries)
}

// createReconciliation godoc
// @Summary Start a reconciliation
// @Description Starts a reconciliation session for a bank or cash account, snapshotting the book balance as of the statement date.
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param reconciliation body dto.CreateReconciliationRequest true "Reconciliation details"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reconciliations [post]
func (h *reconciliationHandler) createReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	reconciliation, err := h.reconciliationService.CreateReconciliation(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create reconciliation")
		return
	}

	logger.Info("Reconciliation started",
		slog.String("reconciliation_id", reconciliation.ReconciliationID),
		slog.String("ledger_account_id", reconciliation.LedgerAccountID))
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(reconciliation))
}

// getReconciliation godoc
// @Summary Get a reconciliation
// @Description Retrieves a reconciliation with its derived reconciled balance.
// @Tags reconciliations
// @Produce json
// @Param business_id path string true "Business ID"
// @Param reconciliation_id path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reconciliations/{reconciliation_id} [get]
func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	reconciliationID := c.Param("reconciliation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reconciliation, err := h.reconciliationService.GetReconciliationByID(c.Request.Context(), businessID, reconciliationID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(reconciliation))
}

// listReconciliations godoc
// @Summary List an account's reconciliations
// @Description Retrieves reconciliation sessions for an account, newest statement first.
// @Tags reconciliations
// @Produce json
// @Param business_id path string true "Business ID"
// @Param account_id path string true "Ledger account ID"
// @Success 200 {object} dto.ListReconciliationsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/accounts/{account_id}/reconciliations [get]
func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reconciliations, err := h.reconciliationService.ListReconciliations(c.Request.Context(), businessID, accountID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list reconciliations")
		return
	}

	resp := dto.ListReconciliationsResponse{Reconciliations: make([]dto.ReconciliationResponse, len(reconciliations))}
	for i := range reconciliations {
		resp.Reconciliations[i] = dto.ToReconciliationResponse(&reconciliations[i])
	}
	c.JSON(http.StatusOK, resp)
}

// listLinkedEntries godoc
// @Summary List a reconciliation's linked entries
// @Description Retrieves the journal entries linked to a reconciliation.
// @Tags reconciliations
// @Produce json
// @Param business_id path string true "Business ID"
// @Param reconciliation_id path string true "Reconciliation ID"
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reconciliations/{reconciliation_id}/entries [get]
func (h *reconciliationHandler) listLinkedEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	reconciliationID := c.Param("reconciliation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entries, err := h.reconciliationService.ListLinkedEntries(c.Request.Context(), businessID, reconciliationID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list linked entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// listUnreconciledEntries godoc
// @Summary List an account's unreconciled entries
// @Description Retrieves the account's journal entries not yet linked to any reconciliation.
// @Tags reconciliations
// @Produce json
// @Param business_id path string true "Business ID"
// @Param account_id path string true "Ledger account ID"
// @Success 200 {object} dto.UnreconciledEntriesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/accounts/{account_id}/unreconciled-entries [get]
func (h *reconciliationHandler) listUnreconciledEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entries, err := h.reconciliationService.ListUnreconciledEntries(c.Request.Context(), businessID, accountID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list unreconciled entries")
		return
	}
	c.JSON(http.StatusOK, dto.UnreconciledEntriesResponse{Entries: dto.ToJournalEntryResponses(entries)})
}

// linkEntries godoc
// @Summary Link journal entries
// @Description Links journal entries to an open reconciliation and returns the updated session.
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param reconciliation_id path string true "Reconciliation ID"
// @Param entries body dto.LinkReconciliationEntriesRequest true "Journal entry IDs"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reconciliations/{reconciliation_id}/entries [post]
func (h *reconciliationHandler) linkEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	reconciliationID := c.Param("reconciliation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.LinkReconciliationEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	reconciliation, err := h.reconciliationService.LinkEntries(c.Request.Context(), businessID, reconciliationID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to link journal entries")
		return
	}

	logger.Info("Journal entries linked",
		slog.String("reconciliation_id", reconciliationID),
		slog.Int("count", len(req.JournalEntryIDs)))
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(reconciliation))
}

// unlinkEntry godoc
// @Summary Unlink a journal entry
// @Description Removes a journal entry from an open reconciliation and returns the updated session.
// @Tags reconciliations
// @Produce json
// @Param business_id path string true "Business ID"
// @Param reconciliation_id path string true "Reconciliation ID"
// @Param journal_entry_id path string true "Journal entry ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reconciliations/{reconciliation_id}/entries/{journal_entry_id} [delete]
func (h *reconciliationHandler) unlinkEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	reconciliationID := c.Param("reconciliation_id")
	journalEntryID := c.Param("journal_entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reconciliation, err := h.reconciliationService.UnlinkEntry(c.Request.Context(), businessID, reconciliationID, journalEntryID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to unlink journal entry")
		return
	}

	logger.Info("Journal entry unlinked",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("journal_entry_id", journalEntryID))
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(reconciliation))
}

// completeReconciliation godoc
// @Summary Complete a reconciliation
// @Description Closes an open session. Unless allowDifference is set, the reconciled balance must match the statement balance.
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param reconciliation_id path string true "Reconciliation ID"
// @Param completion body dto.CompleteReconciliationRequest false "Completion options"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reconciliations/{reconciliation_id}/complete [post]
func (h *reconciliationHandler) completeReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	reconciliationID := c.Param("reconciliation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CompleteReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	reconciliation, err := h.reconciliationService.CompleteReconciliation(c.Request.Context(), businessID, reconciliationID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to complete reconciliation")
		return
	}

	logger.Info("Reconciliation completed", slog.String("reconciliation_id", reconciliationID))
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(reconciliation))
}

// reopenReconciliation godoc
// @Summary Reopen a reconciliation
// @Description Returns a completed session to the open state so its links can be adjusted.
// @Tags reconciliations
// @Produce json
// @Param business_id path string true "Business ID"
// @Param reconciliation_id path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/reconciliations/{reconciliation_id}/reopen [post]
func (h *reconciliationHandler) reopenReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	reconciliationID := c.Param("reconciliation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reconciliation, err := h.reconciliationService.ReopenReconciliation(c.Request.Context(), businessID, reconciliationID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reopen reconciliation")
		return
	}

	logger.Info("Reconciliation reopened", slog.String("reconciliation_id", reconciliationID))
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(reconciliation))
}
