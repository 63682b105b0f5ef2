package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/videohub/internal/entity"
	"anoa.com/videohub/internal/modules/popularity"
	videoDto "anoa.com/videohub/internal/modules/video/dto"
	videoRepo "anoa.com/videohub/internal/modules/video/repository"
	"anoa.com/videohub/pkg/apperror"
	"anoa.com/videohub/pkg/logger"
	"anoa.com/videohub/pkg/ratelimiter"
	"anoa.com/videohub/pkg/sanitize"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Clock returns the current time in the location used for calendar days.
type Clock func() time.Time

// Indexer receives newly uploaded videos for full text search.
type Indexer interface {
	IndexVideo(ctx context.Context, id uint, title string) error
}

type VideoService interface {
	Upload(ctx context.Context, userID uuid.UUID, req videoDto.UploadVideoRequest) (*videoDto.VideoResponse, error)
	List(ctx context.Context) ([]videoDto.VideoResponse, error)
	Get(ctx context.Context, id uint) (*videoDto.VideoResponse, error)
	Popular(ctx context.Context) ([]videoDto.VideoResponse, error)
	// EnsureExists returns an ErrNotFound wrapped error for unknown ids.
	EnsureExists(ctx context.Context, id uint) error
	// Project returns projections for the given ids in the same order, skipping unknown ids.
	Project(ctx context.Context, ids []uint) ([]videoDto.VideoResponse, error)
	SearchByTitle(ctx context.Context, query string, limit int) ([]videoDto.VideoResponse, error)
}

type Options struct {
	Clock       Clock
	RedisClient *redis.Client
	UploadLimit time.Duration
	Indexer     Indexer
	Engine      []popularity.Option
}

type videoService struct {
	repo        videoRepo.Repository
	engine      *popularity.Engine
	clock       Clock
	redisClient *redis.Client
	uploadLimit time.Duration
	indexer     Indexer
}

func NewVideoService(repo videoRepo.Repository, opts Options) VideoService {
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &videoService{
		repo:        repo,
		engine:      popularity.NewEngine(repo, opts.Engine...),
		clock:       clock,
		redisClient: opts.RedisClient,
		uploadLimit: opts.UploadLimit,
		indexer:     opts.Indexer,
	}
}

// ToResponse projects a stats row as seen on today.
func ToResponse(v videoRepo.VideoStats, today time.Time) videoDto.VideoResponse {
	days := popularity.DaysOld(today, v.CreatedAt)
	return videoDto.VideoResponse{
		ID:           v.ID,
		Title:        v.Title,
		YoutubeLink:  v.YoutubeLink,
		User:         v.UserID,
		Username:     v.Username,
		CreatedAt:    v.CreatedAt,
		LikeCount:    v.LikeCount,
		DislikeCount: v.DislikeCount,
		CommentCount: v.CommentCount,
		Bonus:        popularity.Bonus(days),
		Popularity:   popularity.Score(v.Stats(), days),
	}
}

func (s *videoService) project(rows []videoRepo.VideoStats) []videoDto.VideoResponse {
	today := s.clock()
	out := make([]videoDto.VideoResponse, len(rows))
	for i, row := range rows {
		out[i] = ToResponse(row, today)
	}
	return out
}

func (s *videoService) Upload(ctx context.Context, userID uuid.UUID, req videoDto.UploadVideoRequest) (*videoDto.VideoResponse, error) {
	title := strings.TrimSpace(req.Title)
	if sanitize.Text(title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperror.ErrBadRequest)
	}

	if err := ratelimiter.Enforce(ctx, s.redisClient, userID, ratelimiter.ScopeUpload, s.uploadLimit); err != nil {
		return nil, err
	}

	video := &entity.Video{
		Title:       title,
		YoutubeLink: req.YoutubeLink,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, video); err != nil {
		if clearErr := ratelimiter.ClearRateLimit(ctx, s.redisClient, userID, ratelimiter.ScopeUpload); clearErr != nil {
			logger.Log.Warn("failed to clear upload cooldown", zap.Error(clearErr))
		}
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	if s.indexer != nil {
		if err := s.indexer.IndexVideo(ctx, video.ID, video.Title); err != nil {
			logger.Log.Warn("failed to index video", zap.Uint("video_id", video.ID), zap.Error(err))
		}
	}

	return s.Get(ctx, video.ID)
}

func (s *videoService) List(ctx context.Context) ([]videoDto.VideoResponse, error) {
	rows, err := s.repo.ListWithStats(ctx)
	if err != nil {
		return nil, err
	}
	return s.project(rows), nil
}

func (s *videoService) Get(ctx context.Context, id uint) (*videoDto.VideoResponse, error) {
	row, err := s.repo.FindWithStats(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("video not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	resp := ToResponse(*row, s.clock())
	return &resp, nil
}

func (s *videoService) Popular(ctx context.Context) ([]videoDto.VideoResponse, error) {
	today := s.clock()
	ranked, err := s.engine.Popular(ctx, today)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return []videoDto.VideoResponse{}, nil
	}

	ids := make([]uint, len(ranked))
	for i, r := range ranked {
		ids[i] = r.VideoID
	}
	rows, err := s.repo.FindWithStatsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]videoRepo.VideoStats, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	// Counts come from the ranking pass so the displayed popularity matches the order.
	out := make([]videoDto.VideoResponse, 0, len(ranked))
	for _, r := range ranked {
		row, ok := byID[r.VideoID]
		if !ok {
			continue
		}
		row.LikeCount, row.DislikeCount, row.CommentCount = r.Likes, r.Dislikes, r.Comments
		out = append(out, ToResponse(row, today))
	}
	return out, nil
}

func (s *videoService) EnsureExists(ctx context.Context, id uint) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("video not found: %w", apperror.ErrNotFound)
	}
	return nil
}

func (s *videoService) Project(ctx context.Context, ids []uint) ([]videoDto.VideoResponse, error) {
	rows, err := s.repo.FindWithStatsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.project(rows), nil
}

func (s *videoService) SearchByTitle(ctx context.Context, query string, limit int) ([]videoDto.VideoResponse, error) {
	rows, err := s.repo.SearchByTitle(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return s.project(rows), nil
}
