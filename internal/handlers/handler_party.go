package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partyHandler handles HTTP requests for customers and suppliers.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{partyService: ps}
}

func registerPartyRoutes(rg *gin.RouterGroup, ps portssvc.PartySvcFacade) {
	h := newPartyHandler(ps)

	parties := rg.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:party_id", h.getParty)
		parties.GET("/:party_id/balance", h.getPartyBalance)
		parties.PUT("/:party_id", h.updateParty)
		parties.POST("/:party_id/deactivate", h.deactivateParty)
	}
}

// createParty godoc
// @Summary Create a party
// @Description Creates a customer or supplier together with its control account in the chart of accounts.
// @Tags parties
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create party")
		return
	}

	logger.Info("Party created",
		slog.String("party_id", party.PartyID),
		slog.String("party_type", string(party.Type)))
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List parties
// @Description Retrieves parties in the business, optionally filtered by type.
// @Tags parties
// @Produce json
// @Param business_id path string true "Business ID"
// @Param type query string false "Party type filter" Enums(CUSTOMER, SUPPLIER)
// @Success 200 {array} dto.PartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var partyType *domain.PartyType
	if v := c.Query("type"); v != "" {
		pt := domain.PartyType(v)
		switch pt {
		case domain.PartyCustomer, domain.PartySupplier, domain.PartyBoth:
			partyType = &pt
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid party type"})
			return
		}
	}

	parties, err := h.partyService.ListParties(c.Request.Context(), businessID, partyType, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list parties")
		return
	}

	resp := make([]dto.PartyResponse, len(parties))
	for i := range parties {
		resp[i] = dto.ToPartyResponse(&parties[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getParty godoc
// @Summary Get a party
// @Description Retrieves a party by ID.
// @Tags parties
// @Produce json
// @Param business_id path string true "Business ID"
// @Param party_id path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/parties/{party_id} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	partyID := c.Param("party_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	party, err := h.partyService.GetPartyByID(c.Request.Context(), businessID, partyID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve party")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// getPartyBalance godoc
// @Summary Get a party's outstanding balance
// @Description Computes the party's outstanding balance from its control account, positive when the party owes the business.
// @Tags parties
// @Produce json
// @Param business_id path string true "Business ID"
// @Param party_id path string true "Party ID"
// @Success 200 {object} dto.PartyBalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/parties/{party_id}/balance [get]
func (h *partyHandler) getPartyBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	partyID := c.Param("party_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.partyService.GetPartyBalance(c.Request.Context(), businessID, partyID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute party balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// updateParty godoc
// @Summary Update a party
// @Description Updates a party. Name changes propagate to the linked control account.
// @Tags parties
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param party_id path string true "Party ID"
// @Param party body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/parties/{party_id} [put]
func (h *partyHandler) updateParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	partyID := c.Param("party_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), businessID, partyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update party")
		return
	}

	logger.Info("Party updated", slog.String("party_id", partyID))
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// deactivateParty godoc
// @Summary Deactivate a party
// @Description Marks a party and its control account inactive.
// @Tags parties
// @Produce json
// @Param business_id path string true "Business ID"
// @Param party_id path string true "Party ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{business_id}/parties/{party_id}/deactivate [post]
func (h *partyHandler) deactivateParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("business_id")
	partyID := c.Param("party_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.partyService.DeactivateParty(c.Request.Context(), businessID, partyID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate party")
		return
	}

	logger.Info("Party deactivated", slog.String("party_id", partyID))
	c.Status(http.StatusNoContent)
}
