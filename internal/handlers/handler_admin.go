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

// adminHandler handles the admin-only ledger operations.
type adminHandler struct {
	adminService      portssvc.AdminSvcFacade
	reconcilerService portssvc.ReconcilerSvcFacade
	referralService   portssvc.ReferralSvcFacade
}

// newAdminHandler creates a new adminHandler.
func newAdminHandler(
	adminService portssvc.AdminSvcFacade,
	reconcilerService portssvc.ReconcilerSvcFacade,
	referralService portssvc.ReferralSvcFacade,
) *adminHandler {
	return &adminHandler{
		adminService:      adminService,
		reconcilerService: reconcilerService,
		referralService:   referralService,
	}
}

func registerAdminRoutes(
	rg *gin.RouterGroup,
	adminService portssvc.AdminSvcFacade,
	reconcilerService portssvc.ReconcilerSvcFacade,
	referralService portssvc.ReferralSvcFacade,
) {
	h := newAdminHandler(adminService, reconcilerService, referralService)

	admin := rg.Group("/admin", middleware.RequireAdmin())
	{
		admin.POST("/accounts", h.createAccount)
		admin.PUT("/accounts/:accountID/badge-tier", h.setBadgeTier)
		admin.POST("/adjustments", h.createAdjustment)
		admin.POST("/ghost-locks/fix", h.fixGhostLocks)
		admin.POST("/idempotency-keys/purge", h.purgeIdempotencyKeys)
		admin.PUT("/rules", h.upsertRule)
		admin.PUT("/settings/transfer-enabled", h.setTransferEnabled)
	}
}

// createAccount godoc
// @Summary Register a new ledger account
// @Description Creates an active account at tier NONE. Balance rows appear on first credit.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Account already exists"
// @Router /admin/accounts [post]
func (h *adminHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.CreateAccountRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.adminService.CreateAccount(c.Request.Context(), req, adminID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, dto.AccountResponse{
		AccountID:   account.AccountID,
		DisplayName: account.DisplayName,
		BadgeTier:   string(account.BadgeTier),
		IsActive:    account.IsActive,
	})
}

// setBadgeTier godoc
// @Summary Change an account's badge tier
// @Description Moves the account to the given tier. Future commission fan-outs gate on the new tier.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   tier body dto.BadgeTierRequest true "Target tier"
// @Success 204 "Tier updated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /admin/accounts/{accountID}/badge-tier [put]
func (h *adminHandler) setBadgeTier(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.BadgeTierRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for setBadgeTier", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accountID := c.Param("accountID")
	err := h.adminService.SetBadgeTier(c.Request.Context(), accountID, domain.BadgeTier(req.BadgeTier), adminID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update badge tier", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update badge tier"})
		return
	}

	c.Status(http.StatusNoContent)
}

// createAdjustment godoc
// @Summary Mint or burn BSK on one balance
// @Description Writes a one-sided ADMIN_CREDIT or ADMIN_DEBIT ledger entry. Safe to retry with the same idempotency key.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.AdminAdjustRequest true "Adjustment details"
// @Success 201 {object} dto.AdminAdjustResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 402 {object} map[string]string "Debit would take the balance below zero"
// @Router /admin/adjustments [post]
func (h *adminHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.AdminAdjustRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.adminService.Adjust(c.Request.Context(), req, adminID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrDuplicateInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAmountNotPositive), errors.Is(err, services.ErrAccountInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to apply adjustment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply adjustment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AdminAdjustResponse{
		EntryID:     entry.EntryID,
		AccountID:   entry.AccountID,
		BalanceType: string(entry.BalanceType),
		Delta:       entry.Delta,
		ReasonCode:  string(entry.ReasonCode),
		Note:        entry.Note,
	})
}

// fixGhostLocks godoc
// @Summary Run the ghost lock reconciliation
// @Description Releases unreleased locks whose order or withdrawal already reached a terminal state. Safe to run concurrently with live completion.
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.GhostLockFixResponse
// @Router /admin/ghost-locks/fix [post]
func (h *adminHandler) fixGhostLocks(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reports, err := h.reconcilerService.FixGhostLocks(c.Request.Context(), adminID)
	if err != nil {
		logger.Error("Ghost lock reconciliation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed"})
		return
	}

	fixed := 0
	for _, report := range reports {
		if report.Released {
			fixed++
		}
	}
	c.JSON(http.StatusOK, dto.GhostLockFixResponse{FixedCount: fixed, Details: reports})
}

// purgeIdempotencyKeys godoc
// @Summary Purge expired idempotency keys
// @Description Deletes records older than the retention window, including keys stranded in flight by a crash. Their operations become retryable again.
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.IdempotencyPurgeResponse
// @Router /admin/idempotency-keys/purge [post]
func (h *adminHandler) purgeIdempotencyKeys(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	purged, err := h.adminService.PurgeIdempotencyKeys(c.Request.Context())
	if err != nil {
		logger.Error("Failed to purge idempotency keys", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Purge failed"})
		return
	}

	c.JSON(http.StatusOK, dto.IdempotencyPurgeResponse{Purged: purged})
}

// upsertRule godoc
// @Summary Create or update a commission rule
// @Description Sets the percent paid at one (badge tier, depth) cell of the gating table
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   rule body dto.CommissionRuleRequest true "Rule details"
// @Success 204 "Rule stored"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /admin/rules [put]
func (h *adminHandler) upsertRule(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.CommissionRuleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for upsertRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.referralService.UpsertRule(c.Request.Context(), req, adminID); err != nil {
		if errors.Is(err, services.ErrRuleLevelInvalid) || errors.Is(err, services.ErrAmountNotPositive) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to upsert commission rule", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store rule"})
		return
	}

	c.Status(http.StatusNoContent)
}

// setTransferEnabled godoc
// @Summary Toggle the platform-wide transfer gate
// @Description Enables or disables user-to-user transfers without touching individual accounts
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   policy body dto.TransferPolicyRequest true "Policy flag"
// @Success 204 "Policy stored"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /admin/settings/transfer-enabled [put]
func (h *adminHandler) setTransferEnabled(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.TransferPolicyRequest{}
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.adminService.SetTransferEnabled(c.Request.Context(), *req.Enabled, adminID); err != nil {
		logger.Error("Failed to update transfer policy", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transfer policy"})
		return
	}

	c.Status(http.StatusNoContent)
}
