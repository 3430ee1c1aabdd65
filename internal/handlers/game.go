package handlers

import (
	"net/http"

	"guess-song-backend/internal/game"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	engine *game.Engine
}

func NewGameHandler(engine *game.Engine) *GameHandler {
	return &GameHandler{engine: engine}
}

// ListGames godoc
// @Summary      List active games
// @Description  Snapshot of every group with a live session
// @Tags         games
// @Produce      json
// @Success      200 {array} game.View
// @Security     BearerAuth
// @Router       /api/v1/games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Games())
}

// GetGame godoc
// @Summary      Get a group's game
// @Description  Snapshot of the session running in the given group
// @Tags         games
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} game.View
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/games/{groupID} [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	view, ok := h.engine.Game(c.Param("groupID"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active game in this group"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// EndGame godoc
// @Summary      Force-end a group's game
// @Description  Terminate the session and settle scores immediately
// @Tags         games
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/games/{groupID}/end [post]
func (h *GameHandler) EndGame(c *gin.Context) {
	if err := h.engine.Terminate(c.Param("groupID")); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active game in this group"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "game ended"})
}
