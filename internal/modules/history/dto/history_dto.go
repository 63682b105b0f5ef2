package dto

import (
	"time"

	videoDto "anoa.com/videohub/internal/modules/video/dto"
)

type RegisterViewRequest struct {
	VideoID uint `json:"video_id" binding:"required"`
}

type HistoryResponse struct {
	ID       uint                   `json:"id"`
	Video    videoDto.VideoResponse `json:"video"`
	ViewedAt time.Time              `json:"viewed_at"`
}
