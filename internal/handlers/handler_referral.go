package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/core/services"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// referralHandler handles HTTP requests related to the referral tree.
type referralHandler struct {
	referralService portssvc.ReferralSvcFacade
}

// newReferralHandler creates a new referralHandler.
func newReferralHandler(referralService portssvc.ReferralSvcFacade) *referralHandler {
	return &referralHandler{
		referralService: referralService,
	}
}

func registerReferralRoutes(rg *gin.RouterGroup, referralService portssvc.ReferralSvcFacade) {
	h := newReferralHandler(referralService)

	referrals := rg.Group("/referrals")
	{
		referrals.POST("", h.bindSponsor)
		referrals.GET("/rules", h.listRules)
	}
}

// bindSponsor godoc
// @Summary Bind a sponsor to an account
// @Description Fixes the sponsor of a child account. The binding is write-once and never reassigned.
// @Tags referrals
// @Accept  json
// @Produce  json
// @Param   edge body dto.BindSponsorRequest true "Sponsor binding"
// @Success 201 {object} dto.ReferralEdgeResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Account already has a sponsor"
// @Router /referrals [post]
func (h *referralHandler) bindSponsor(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.BindSponsorRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for bindSponsor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	edge, err := h.referralService.BindSponsor(c.Request.Context(), req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfReferral):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to bind sponsor", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bind sponsor"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToReferralEdgeResponse(*edge))
}

// listRules godoc
// @Summary List commission rules
// @Description Returns the full badge-tier gating table
// @Tags referrals
// @Produce  json
// @Success 200 {array} dto.CommissionRuleResponse
// @Router /referrals/rules [get]
func (h *referralHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	rules, err := h.referralService.ListRules(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list commission rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve commission rules"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionRuleResponses(rules))
}
