package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	User      uuid.UUID `json:"user"`
	Username  string    `json:"username"`
	Video     uint      `json:"video"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
