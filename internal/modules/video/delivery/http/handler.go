package handler

import (
	"net/http"

	videoDto "anoa.com/videohub/internal/modules/video/dto"
	video "anoa.com/videohub/internal/modules/video/service"
	"anoa.com/videohub/pkg/response"
	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	service video.VideoService
}

func NewVideoHandler(service video.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

func (h *VideoHandler) Upload(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req videoDto.UploadVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Upload(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := response.ParseUintParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VideoHandler) Popular(c *gin.Context) {
	videos, err := h.service.Popular(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}
