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

// commissionHandler handles the internal commission event endpoint, posted by
// the staking, purchase and subscription flows after their primary operation
// commits.
type commissionHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

// newCommissionHandler creates a new commissionHandler.
func newCommissionHandler(commissionService portssvc.CommissionSvcFacade) *commissionHandler {
	return &commissionHandler{
		commissionService: commissionService,
	}
}

func registerCommissionRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvcFacade) {
	h := newCommissionHandler(commissionService)

	internal := rg.Group("/internal", middleware.RequireAdmin())
	{
		internal.POST("/commission-events", h.distributeCommission)
	}
}

// distributeCommission godoc
// @Summary Distribute referral commission for a commercial event
// @Description Walks the referral chain upward from the payer and credits every ancestor whose badge tier unlocks its depth. Retries with the same idempotency key are no-ops.
// @Tags commissions
// @Accept  json
// @Produce  json
// @Param   event body dto.CommissionEventRequest true "Triggering event"
// @Success 200 {object} dto.CommissionResultResponse "Replayed result for an already-settled event"
// @Success 201 {object} dto.CommissionResultResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Duplicate event in flight"
// @Router /internal/commission-events [post]
func (h *commissionHandler) distributeCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.CommissionEventRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for distributeCommission", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, replayed, err := h.commissionService.Distribute(c.Request.Context(), req.ToDomainCommissionEvent())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAmountNotPositive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrDuplicateInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrReferralCycle):
			logger.Error("Referral data corruption detected", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Referral chain is invalid"})
		default:
			logger.Error("Failed to distribute commission", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to distribute commission"})
		}
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToCommissionResultResponse(*result))
}
