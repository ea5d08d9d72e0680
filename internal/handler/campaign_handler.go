package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ytboost/internal/middleware"
	"ytboost/internal/models"
	"ytboost/internal/pricing"
	"ytboost/internal/repository"
	"ytboost/internal/service"
	"ytboost/internal/youtube"
)

type CampaignHandler struct {
	campaignSvc *service.CampaignService
	walletRepo  *repository.WalletRepository
}

func NewCampaignHandler(campaignSvc *service.CampaignService, walletRepo *repository.WalletRepository) *CampaignHandler {
	return &CampaignHandler{campaignSvc: campaignSvc, walletRepo: walletRepo}
}

// Create launches a campaign: validates, prices and performs the atomic
// debit. POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		VideoURL      string `json:"video_url" binding:"required"`
		RequiredViews int    `json:"required_views" binding:"required"`
		WatchSeconds  int    `json:"watch_seconds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign, err := h.campaignSvc.Create(userID, req.VideoURL, req.RequiredViews, req.WatchSeconds)
	if err != nil {
		switch {
		case errors.Is(err, youtube.ErrInvalidVideoRef),
			errors.Is(err, service.ErrInvalidViews),
			errors.Is(err, service.ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrInsufficientBalance):
			balance := int64(0)
			if w, werr := h.walletRepo.GetByUserID(userID); werr == nil {
				balance = w.Balance
			}
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient balance", "balance": balance})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create campaign"})
		}
		return
	}
	c.JSON(http.StatusCreated, campaignJSON(campaign))
}

// ListMine returns the owner's campaigns with progress. GET /me/campaigns
func (h *CampaignHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.campaignSvc.ListMine(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list campaigns"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, campaignJSON(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": out})
}

// Feed returns the campaigns this viewer can watch, with the reward each
// would pay. GET /campaigns/available
func (h *CampaignHandler) Feed(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.campaignSvc.ListAvailable(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load feed"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for i := range list {
		cp := &list[i]
		out = append(out, gin.H{
			"id":            cp.ID,
			"video_id":      cp.VideoID,
			"thumbnail_url": youtube.ThumbnailURL(cp.VideoID),
			"watch_seconds": cp.WatchSeconds,
			"minutes":       cp.Minutes(),
			"base_reward":   pricing.BaseReward(cp.Minutes()),
			"created_at":    cp.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": out})
}

// Delete removes one of the caller's campaigns. No refund: coins already
// spent stay spent. DELETE /campaigns/:id
func (h *CampaignHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}
	if err := h.campaignSvc.Delete(userID, uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete campaign"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "campaign deleted"})
}

func campaignJSON(cp *models.Campaign) gin.H {
	return gin.H{
		"id":             cp.ID,
		"video_id":       cp.VideoID,
		"thumbnail_url":  youtube.ThumbnailURL(cp.VideoID),
		"required_views": cp.RequiredViews,
		"used_views":     cp.UsedViews,
		"watch_seconds":  cp.WatchSeconds,
		"cost":           cp.Cost,
		"status":         cp.Status,
		"progress":       cp.ProgressPercent(),
		"created_at":     cp.CreatedAt,
	}
}
