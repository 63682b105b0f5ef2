package repository

import (
	"context"

	"anoa.com/videohub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository interface {
	// GetOrCreate records the first view of a video. Later views return the
	// existing row unchanged.
	GetOrCreate(ctx context.Context, userID uuid.UUID, videoID uint) (*entity.History, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]entity.History, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, videoID uint) (*entity.History, error) {
	history := entity.History{UserID: userID, VideoID: videoID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).
		Create(&history).Error
	if err != nil {
		return nil, err
	}

	var existing entity.History
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *historyRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.History{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *historyRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]entity.History, error) {
	var rows []entity.History
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
