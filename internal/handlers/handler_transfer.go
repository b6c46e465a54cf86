package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/core/services"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests related to transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: transferService,
	}
}

func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
	}
}

// createTransfer godoc
// @Summary Transfer BSK between two accounts
// @Description Atomically moves withdrawable BSK from the authenticated sender to a recipient. Safe to retry with the same idempotency key.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse "Replayed result for an already-processed key"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 402 {object} map[string]string "Insufficient funds"
// @Failure 403 {object} map[string]string "Sender mismatch or transfers disabled"
// @Failure 409 {object} map[string]string "Duplicate request in flight"
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.TransferRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Caller ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, _ := middleware.GetUserRoleFromContext(c)
	if callerID != req.SenderID && role != middleware.RoleAdmin {
		logger.Warn("Transfer sender mismatch", slog.String("sender_id", req.SenderID))
		c.JSON(http.StatusForbidden, gin.H{"error": "Transfers can only be sent from your own account"})
		return
	}

	result, replayed, err := h.transferService.Transfer(c.Request.Context(), req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrSelfTransfer),
			errors.Is(err, services.ErrAmountNotPositive),
			errors.Is(err, services.ErrAccountInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrTransferDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrDailyCapExceeded):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrDuplicateInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to execute transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute transfer"})
		}
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	c.JSON(status, dto.TransferResponse{
		Success:               true,
		Reference:             result.Reference,
		SenderBalanceAfter:    result.SenderBalanceAfter,
		RecipientBalanceAfter: result.RecipientBalanceAfter,
	})
}
