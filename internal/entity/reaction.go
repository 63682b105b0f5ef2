package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction is unique per (user, video); reacting again overwrites the type.
type Reaction struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_user_video,priority:1" json:"user_id"`
	User         User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	VideoID      uint         `gorm:"not null;uniqueIndex:idx_reactions_user_video,priority:2;index" json:"video_id"`
	Video        Video        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ReactionType ReactionType `gorm:"size:10;not null" json:"reaction_type"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Reaction) TableName() string {
	return "reactions"
}
