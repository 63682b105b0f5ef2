package repository

import (
	"context"
	"strings"
	"time"

	"anoa.com/videohub/internal/entity"
	"anoa.com/videohub/internal/modules/popularity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoStats is a video joined with its owner name and engagement counts.
type VideoStats struct {
	ID           uint
	Title        string
	YoutubeLink  string
	UserID       uuid.UUID
	Username     string
	CreatedAt    time.Time
	LikeCount    int64
	DislikeCount int64
	CommentCount int64
}

func (v VideoStats) Stats() popularity.Stats {
	return popularity.Stats{Likes: v.LikeCount, Dislikes: v.DislikeCount, Comments: v.CommentCount}
}

type Repository interface {
	Create(ctx context.Context, video *entity.Video) error
	Exists(ctx context.Context, id uint) (bool, error)
	FindWithStats(ctx context.Context, id uint) (*VideoStats, error)
	FindWithStatsByIDs(ctx context.Context, ids []uint) ([]VideoStats, error)
	ListWithStats(ctx context.Context) ([]VideoStats, error)
	SearchByTitle(ctx context.Context, query string, limit int) ([]VideoStats, error)
	Candidates(ctx context.Context, window *popularity.Window) ([]popularity.Candidate, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const statsColumns = `
	(SELECT COUNT(*) FROM reactions WHERE reactions.video_id = videos.id AND reactions.reaction_type = ?) AS like_count,
	(SELECT COUNT(*) FROM reactions WHERE reactions.video_id = videos.id AND reactions.reaction_type = ?) AS dislike_count,
	(SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id) AS comment_count`

func (r *repository) withStats(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("videos").
		Select(`videos.id, videos.title, videos.youtube_link, videos.user_id, users.username, videos.created_at,`+statsColumns,
			entity.ReactionLike, entity.ReactionDislike).
		Joins("JOIN users ON users.id = videos.user_id")
}

func (r *repository) Create(ctx context.Context, video *entity.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Video{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) FindWithStats(ctx context.Context, id uint) (*VideoStats, error) {
	var rows []VideoStats
	if err := r.withStats(ctx).Where("videos.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// FindWithStatsByIDs returns the videos in the order of ids, skipping missing ones.
func (r *repository) FindWithStatsByIDs(ctx context.Context, ids []uint) ([]VideoStats, error) {
	if len(ids) == 0 {
		return []VideoStats{}, nil
	}

	var rows []VideoStats
	if err := r.withStats(ctx).Where("videos.id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]VideoStats, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	ordered := make([]VideoStats, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

func (r *repository) ListWithStats(ctx context.Context) ([]VideoStats, error) {
	var rows []VideoStats
	err := r.withStats(ctx).Order("videos.created_at DESC, videos.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *repository) SearchByTitle(ctx context.Context, query string, limit int) ([]VideoStats, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var rows []VideoStats
	err := r.withStats(ctx).
		Where(`LOWER(videos.title) LIKE ? ESCAPE '\'`, pattern).
		Order("videos.created_at DESC, videos.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Candidates(ctx context.Context, window *popularity.Window) ([]popularity.Candidate, error) {
	type row struct {
		ID           uint
		CreatedAt    time.Time
		LikeCount    int64
		DislikeCount int64
		CommentCount int64
	}

	query := r.db.WithContext(ctx).
		Table("videos").
		Select("videos.id, videos.created_at,"+statsColumns, entity.ReactionLike, entity.ReactionDislike)
	if window != nil {
		query = query.Where("videos.created_at >= ? AND videos.created_at < ?", window.Start.UTC(), window.End.UTC())
	}

	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	candidates := make([]popularity.Candidate, len(rows))
	for i, r := range rows {
		candidates[i] = popularity.Candidate{
			VideoID:   r.ID,
			CreatedAt: r.CreatedAt,
			Stats:     popularity.Stats{Likes: r.LikeCount, Dislikes: r.DislikeCount, Comments: r.CommentCount},
		}
	}
	return candidates, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
