package repository

import (
	"context"

	"anoa.com/videohub/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionRepository interface {
	// Upsert inserts the reaction or overwrites the type of the existing (user, video) row.
	Upsert(ctx context.Context, reaction *entity.Reaction) error
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Upsert(ctx context.Context, reaction *entity.Reaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"reaction_type", "updated_at"}),
		}).
		Create(reaction).Error
}
