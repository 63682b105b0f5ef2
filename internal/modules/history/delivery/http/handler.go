package handler

import (
	"net/http"

	historyDto "anoa.com/videohub/internal/modules/history/dto"
	history "anoa.com/videohub/internal/modules/history/service"
	"anoa.com/videohub/pkg/dto"
	"anoa.com/videohub/pkg/response"
	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	service history.HistoryService
}

func NewHistoryHandler(service history.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

func (h *HistoryHandler) Register(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req historyDto.RegisterViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *HistoryHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	page, ok := dto.ParsePage(query.Page)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid page"})
		return
	}

	resp, err := h.service.List(c.Request.Context(), userID, page, response.RequestURL(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
