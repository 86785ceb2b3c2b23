// internal/handlers/game.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/games-api/internal/services"
	"github.com/javajoker/games-api/internal/utils"
)

// Client-facing messages for missing required parameters. Existing clients
// match on these strings, so they are not translated.
var missingParameterMessages = map[string]string{
	"name": "The 'name' parameter is required",
	"tag":  "The 'tag' parameter is required.",
}

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// GET /api/games
func (h *GameHandler) GetGames(c *gin.Context) {
	filter, err := services.ParseGameFilter(c.Request.URL.Query())
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.gameService.SearchGames(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /api/games/by-tag
func (h *GameHandler) GetGamesByTag(c *gin.Context) {
	filter, err := services.ParseTagFilter(c.Request.URL.Query())
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.gameService.SearchGamesByTag(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /api/tags
func (h *GameHandler) GetTags(c *gin.Context) {
	result, err := h.gameService.ListTags(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

func (h *GameHandler) handleError(c *gin.Context, err error) {
	var missing *services.MissingParameterError
	if errors.As(err, &missing) {
		message, ok := missingParameterMessages[missing.Param]
		if !ok {
			message = missing.Error()
		}
		utils.BadRequestResponse(c, message)
		return
	}

	c.Error(err)
	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Game query failed")
	utils.InternalErrorResponse(c, "")
}
