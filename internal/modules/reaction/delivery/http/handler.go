package handler

import (
	"net/http"

	reactionDto "anoa.com/videohub/internal/modules/reaction/dto"
	reaction "anoa.com/videohub/internal/modules/reaction/service"
	"anoa.com/videohub/pkg/response"
	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	service reaction.ReactionService
}

func NewReactionHandler(service reaction.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

func (h *ReactionHandler) React(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	videoID, ok := response.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req reactionDto.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.React(c.Request.Context(), userID, videoID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
