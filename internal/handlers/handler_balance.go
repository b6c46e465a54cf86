package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler handles HTTP requests for balance and ledger projections.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(balanceService portssvc.BalanceSvcFacade, ledgerService portssvc.LedgerSvcFacade) *balanceHandler {
	return &balanceHandler{
		balanceService: balanceService,
		ledgerService:  ledgerService,
	}
}

func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newBalanceHandler(balanceService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID/balances", h.getBalances)
		accounts.GET("/:accountID/entries", h.listEntries)
	}
}

// getBalances godoc
// @Summary Get the balances of an account
// @Description Returns the withdrawable and holding balances with their available/locked split
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/balances [get]
func (h *balanceHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountID := c.Param("accountID")

	balances, err := h.balanceService.GetBalances(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get balances", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponses(balances))
}

// listEntries godoc
// @Summary List the ledger entries of an account
// @Description Returns a page of immutable ledger entries, newest first
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/entries [get]
func (h *balanceHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountID := c.Param("accountID")

	params := dto.ListEntriesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	page, err := h.ledgerService.ListEntriesByAccount(c.Request.Context(), accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger entries"})
		return
	}

	c.JSON(http.StatusOK, page)
}
