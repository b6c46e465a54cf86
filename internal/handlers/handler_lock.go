package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/core/services"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// lockHandler handles HTTP requests related to balance locks.
type lockHandler struct {
	lockService portssvc.LockSvcFacade
}

// newLockHandler creates a new lockHandler.
func newLockHandler(lockService portssvc.LockSvcFacade) *lockHandler {
	return &lockHandler{
		lockService: lockService,
	}
}

func registerLockRoutes(rg *gin.RouterGroup, lockService portssvc.LockSvcFacade) {
	h := newLockHandler(lockService)

	locks := rg.Group("/locks")
	{
		locks.POST("", h.reserveLock)
		locks.POST("/:lockID/release", h.releaseLock)
	}
}

// reserveLock godoc
// @Summary Reserve part of a balance
// @Description Moves the amount from available to locked for an in-flight order or withdrawal
// @Tags locks
// @Accept  json
// @Produce  json
// @Param   lock body dto.ReserveLockRequest true "Lock details"
// @Success 201 {object} dto.LockResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 402 {object} map[string]string "Insufficient available balance"
// @Router /locks [post]
func (h *lockHandler) reserveLock(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.ReserveLockRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reserveLock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	lock, err := h.lockService.Reserve(c.Request.Context(), req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAmountNotPositive), errors.Is(err, services.ErrAccountInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reserve lock", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve lock"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLockResponse(*lock))
}

// releaseLock godoc
// @Summary Release a balance lock
// @Description Moves the locked amount back to available. Releasing an already-released lock is a no-op.
// @Tags locks
// @Produce  json
// @Param   lockID path string true "Lock ID"
// @Success 200 {object} map[string]bool "released reports whether this call performed the release"
// @Failure 404 {object} map[string]string "Lock not found"
// @Router /locks/{lockID}/release [post]
func (h *lockHandler) releaseLock(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	lockID := c.Param("lockID")

	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	released, err := h.lockService.Release(c.Request.Context(), lockID, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lock not found"})
			return
		}
		logger.Error("Failed to release lock", slog.String("error", err.Error()), slog.String("lock_id", lockID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release lock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"released": released})
}
