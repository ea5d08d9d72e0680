package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ytboost/internal/middleware"
	"ytboost/internal/repository"
)

type ReferralHandler struct {
	referralRepo *repository.ReferralRepository
}

func NewReferralHandler(referralRepo *repository.ReferralRepository) *ReferralHandler {
	return &ReferralHandler{referralRepo: referralRepo}
}

// GetMyCode returns the caller's invite code, creating one on first use.
// GET /me/referral-code
func (h *ReferralHandler) GetMyCode(c *gin.Context) {
	userID := middleware.GetUserID(c)
	rc, err := h.referralRepo.GetOrCreateCode(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get referral code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": rc.Code, "created_at": rc.CreatedAt})
}

// ListMine returns the users the caller has referred. GET /me/referrals
func (h *ReferralHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	referrals, err := h.referralRepo.ListByReferrerID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list referrals"})
		return
	}
	out := make([]gin.H, 0, len(referrals))
	for _, ref := range referrals {
		out = append(out, gin.H{
			"referred_email": ref.ReferredUser.Email,
			"created_at":     ref.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"referrals": out, "total": len(out)})
}
