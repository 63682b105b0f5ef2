package reaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anoa.com/videohub/internal/entity"
	reactionDto "anoa.com/videohub/internal/modules/reaction/dto"
	reactionRepo "anoa.com/videohub/internal/modules/reaction/repository"
	videoDto "anoa.com/videohub/internal/modules/video/dto"
	video "anoa.com/videohub/internal/modules/video/service"
	"anoa.com/videohub/pkg/apperror"
	"anoa.com/videohub/pkg/ratelimiter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ReactionService interface {
	React(ctx context.Context, userID uuid.UUID, videoID uint, req reactionDto.ReactRequest) (*videoDto.VideoResponse, error)
}

type reactionService struct {
	repo         reactionRepo.ReactionRepository
	videoService video.VideoService
	redisClient  *redis.Client
	limit        time.Duration
}

func NewReactionService(repo reactionRepo.ReactionRepository, videoService video.VideoService, redisClient *redis.Client, limit time.Duration) ReactionService {
	return &reactionService{
		repo:         repo,
		videoService: videoService,
		redisClient:  redisClient,
		limit:        limit,
	}
}

func (s *reactionService) React(ctx context.Context, userID uuid.UUID, videoID uint, req reactionDto.ReactRequest) (*videoDto.VideoResponse, error) {
	if err := s.videoService.EnsureExists(ctx, videoID); err != nil {
		return nil, err
	}

	kind := entity.ReactionType(strings.ToLower(strings.TrimSpace(req.ReactionType)))
	if !kind.Valid() {
		return nil, fmt.Errorf("reaction_type must be one of: like, dislike: %w", apperror.ErrInvalidInput)
	}

	if err := ratelimiter.Enforce(ctx, s.redisClient, userID, ratelimiter.ScopeReaction, s.limit); err != nil {
		return nil, err
	}

	reaction := &entity.Reaction{
		UserID:       userID,
		VideoID:      videoID,
		ReactionType: kind,
	}
	if err := s.repo.Upsert(ctx, reaction); err != nil {
		return nil, fmt.Errorf("failed to save reaction: %w", err)
	}

	return s.videoService.Get(ctx, videoID)
}
