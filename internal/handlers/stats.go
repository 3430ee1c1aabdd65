package handlers

import (
	"net/http"
	"strconv"

	"guess-song-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	leaderboard *services.LeaderboardService
}

func NewStatsHandler(leaderboard *services.LeaderboardService) *StatsHandler {
	return &StatsHandler{leaderboard: leaderboard}
}

func limitParam(c *gin.Context, fallback int) int {
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n <= 100 {
		return n
	}
	return fallback
}

// Leaderboard godoc
// @Summary      Group leaderboard
// @Description  Cumulative scores and wins for a group, highest first
// @Tags         stats
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        limit query int false "Max entries (default 10)"
// @Success      200 {array} GroupStat
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/groups/{groupID}/leaderboard [get]
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	stats, err := h.leaderboard.Top(c.Param("groupID"), limitParam(c, 10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// History godoc
// @Summary      Group game history
// @Description  Recently finished games for a group, newest first
// @Tags         stats
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        limit query int false "Max entries (default 20)"
// @Success      200 {array} GameRecord
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/groups/{groupID}/history [get]
func (h *StatsHandler) History(c *gin.Context) {
	records, err := h.leaderboard.History(c.Param("groupID"), limitParam(c, 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, records)
}
