package entity

import (
	"time"

	"github.com/google/uuid"
)

// History records the first time a user viewed a video.
type History struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_history_user_video,priority:1" json:"user_id"`
	User     User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	VideoID  uint      `gorm:"not null;uniqueIndex:idx_history_user_video,priority:2" json:"video_id"`
	Video    Video     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ViewedAt time.Time `gorm:"autoCreateTime;index" json:"viewed_at"`
}

func (h *History) TableName() string {
	return "histories"
}
