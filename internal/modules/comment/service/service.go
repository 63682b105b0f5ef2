package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/videohub/internal/entity"
	commentDto "anoa.com/videohub/internal/modules/comment/dto"
	commentRepo "anoa.com/videohub/internal/modules/comment/repository"
	video "anoa.com/videohub/internal/modules/video/service"
	"anoa.com/videohub/pkg/apperror"
	"anoa.com/videohub/pkg/logger"
	"anoa.com/videohub/pkg/ratelimiter"
	"anoa.com/videohub/pkg/sanitize"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errTextRequired    = fmt.Errorf("text is required: %w", apperror.ErrBadRequest)
	errCommentNotFound = fmt.Errorf("comment not found: %w", apperror.ErrNotFound)
)

type CommentService interface {
	List(ctx context.Context, videoID uint) ([]commentDto.CommentResponse, error)
	Create(ctx context.Context, userID uuid.UUID, videoID uint, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error)
	Update(ctx context.Context, userID uuid.UUID, commentID uint, req commentDto.UpdateCommentRequest) (*commentDto.CommentResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, commentID uint) error
}

type commentService struct {
	repo         commentRepo.CommentRepository
	videoService video.VideoService
	redisClient  *redis.Client
	limit        time.Duration
}

func NewCommentService(repo commentRepo.CommentRepository, videoService video.VideoService, redisClient *redis.Client, limit time.Duration) CommentService {
	return &commentService{
		repo:         repo,
		videoService: videoService,
		redisClient:  redisClient,
		limit:        limit,
	}
}

func toResponse(c *entity.Comment) commentDto.CommentResponse {
	return commentDto.CommentResponse{
		ID:        c.ID,
		User:      c.UserID,
		Username:  c.User.Username,
		Video:     c.VideoID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

// commentText trims the input and rejects text that is empty once markup is
// stripped. The stored text is the trimmed input.
func commentText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if sanitize.Text(text) == "" {
		return "", errTextRequired
	}
	return text, nil
}

func (s *commentService) List(ctx context.Context, videoID uint) ([]commentDto.CommentResponse, error) {
	if err := s.videoService.EnsureExists(ctx, videoID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	out := make([]commentDto.CommentResponse, len(comments))
	for i := range comments {
		out[i] = toResponse(&comments[i])
	}
	return out, nil
}

func (s *commentService) Create(ctx context.Context, userID uuid.UUID, videoID uint, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	text, err := commentText(req.Text)
	if err != nil {
		return nil, err
	}

	if err := s.videoService.EnsureExists(ctx, videoID); err != nil {
		return nil, err
	}

	if err := ratelimiter.Enforce(ctx, s.redisClient, userID, ratelimiter.ScopeComment, s.limit); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		UserID:  userID,
		VideoID: videoID,
		Text:    text,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		if clearErr := ratelimiter.ClearRateLimit(ctx, s.redisClient, userID, ratelimiter.ScopeComment); clearErr != nil {
			logger.Log.Warn("failed to clear comment cooldown", zap.Error(clearErr))
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	created, err := s.repo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(created)
	return &resp, nil
}

func (s *commentService) findOwned(ctx context.Context, userID uuid.UUID, commentID uint) (*entity.Comment, error) {
	comment, err := s.repo.FindOwned(ctx, commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, userID uuid.UUID, commentID uint, req commentDto.UpdateCommentRequest) (*commentDto.CommentResponse, error) {
	text, err := commentText(req.Text)
	if err != nil {
		return nil, err
	}

	comment, err := s.findOwned(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Text = text
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	resp := toResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, userID uuid.UUID, commentID uint) error {
	comment, err := s.findOwned(ctx, userID, commentID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, comment)
}
