package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadVideoRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=255"`
	YoutubeLink string `json:"youtube_link" binding:"required,max=255,url"`
}

// VideoResponse is the public projection of a video with its engagement counts.
// Bonus and Popularity are computed for the day of the request.
type VideoResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	YoutubeLink  string    `json:"youtube_link"`
	User         uuid.UUID `json:"user"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
	LikeCount    int64     `json:"like_count"`
	DislikeCount int64     `json:"dislike_count"`
	CommentCount int64     `json:"comment_count"`
	Bonus        int64     `json:"bonus"`
	Popularity   int64     `json:"popularity"`
}
