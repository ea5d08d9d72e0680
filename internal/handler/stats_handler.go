package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ytboost/internal/middleware"
	"ytboost/internal/service"
)

type StatsHandler struct {
	viewSvc *service.ViewService
}

func NewStatsHandler(viewSvc *service.ViewService) *StatsHandler {
	return &StatsHandler{viewSvc: viewSvc}
}

// Get returns the viewer's watch totals. Level is one star per 10 videos.
// GET /me/stats
func (h *StatsHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	watched, err := h.viewSvc.CountWatched(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"videos_watched": watched,
		"level":          watched / 10,
	})
}
