package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ytboost/internal/middleware"
	"ytboost/internal/repository"
	"ytboost/internal/service"
	"ytboost/internal/session"
)

type SessionHandler struct {
	sessions    *session.Manager
	campaignSvc *service.CampaignService
}

func NewSessionHandler(sessions *session.Manager, campaignSvc *service.CampaignService) *SessionHandler {
	return &SessionHandler{sessions: sessions, campaignSvc: campaignSvc}
}

// Start opens a viewing session for a campaign and starts the countdown.
// POST /sessions
func (h *SessionHandler) Start(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		CampaignID uint `json:"campaign_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign, err := h.campaignSvc.Get(req.CampaignID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load campaign"})
		return
	}
	if campaign.OwnerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot watch your own campaign"})
		return
	}
	if campaign.IsCompleted() || campaign.UsedViews >= campaign.RequiredViews {
		c.JSON(http.StatusConflict, gin.H{"error": "campaign has no remaining views"})
		return
	}
	s := h.sessions.Open(campaign.ID, userID, campaign.WatchSeconds)
	c.JSON(http.StatusCreated, sessionJSON(s))
}

// Get returns the session's current state, including the reward a claim at
// this instant would pay. GET /sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"), middleware.GetUserID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sessionJSON(s))
}

// MarkOpened records that the user opened the external video. One-way.
// POST /sessions/:id/opened
func (h *SessionHandler) MarkOpened(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"), middleware.GetUserID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	s.MarkOpened()
	c.JSON(http.StatusOK, sessionJSON(s))
}

// SetFlags toggles the like/subscribe acknowledgements.
// PATCH /sessions/:id/flags
func (h *SessionHandler) SetFlags(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"), middleware.GetUserID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	var req struct {
		Liked      bool `json:"liked"`
		Subscribed bool `json:"subscribed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.SetFlags(req.Liked, req.Subscribed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessionJSON(s))
}

// Claim submits the completed view and pays the reward.
// POST /sessions/:id/claim
func (h *SessionHandler) Claim(c *gin.Context) {
	userID := middleware.GetUserID(c)
	s, ok := h.sessions.Get(c.Param("id"), userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	reward, err := s.Claim()
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateClaim):
			// terminal: remove the session, no retry
			h.sessions.Close(s.ID, userID)
			c.JSON(http.StatusConflict, gin.H{"error": "already claimed coins for this video"})
		case errors.Is(err, session.ErrCountdownRunning),
			errors.Is(err, session.ErrOpenRequired),
			errors.Is(err, session.ErrAlreadyClaimed),
			errors.Is(err, session.ErrNotClaimable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrCampaignFull):
			h.sessions.Close(s.ID, userID)
			c.JSON(http.StatusConflict, gin.H{"error": "campaign has no remaining views"})
		default:
			// transient: the session went back to ready, user may retry
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claim failed, please try again"})
		}
		return
	}
	h.sessions.Close(s.ID, userID)
	c.JSON(http.StatusOK, gin.H{"reward": reward, "state": string(session.StateClaimed)})
}

// Abandon cancels a session before completion. Forfeits the whole reward.
// DELETE /sessions/:id
func (h *SessionHandler) Abandon(c *gin.Context) {
	if !h.sessions.Close(c.Param("id"), middleware.GetUserID(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session abandoned"})
}

func sessionJSON(s *session.Session) gin.H {
	liked, subscribed, opened := s.Flags()
	return gin.H{
		"id":                s.ID,
		"campaign_id":       s.CampaignID,
		"state":             string(s.State()),
		"remaining_seconds": s.Remaining(),
		"watch_seconds":     s.WatchSeconds,
		"liked":             liked,
		"subscribed":        subscribed,
		"opened":            opened,
		"pending_reward":    s.PendingReward(),
	}
}
