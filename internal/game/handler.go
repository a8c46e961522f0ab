package game

import (
	"net/http"

	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
	"github.com/gin-gonic/gin"
)

// ListGames 返回所有游戏记录
func ListGames(c *gin.Context) {
	games, err := List(c.Request.Context())
	if err != nil {
		serializer.RespondError(c, err)
		return
	}

	responses := make([]Response, 0, len(games))
	for _, g := range games {
		responses = append(responses, ToResponse(g))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateGame 创建一条游戏记录
func CreateGame(c *gin.Context) {
	data, err := serializer.ParseRequest(c)
	if err != nil {
		serializer.RespondError(c, err)
		return
	}

	newGame, errs, err := Create(c.Request.Context(), data)
	if err != nil {
		serializer.RespondError(c, err)
		return
	}
	if !errs.Empty() {
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	c.JSON(http.StatusCreated, ToResponse(*newGame))
}
