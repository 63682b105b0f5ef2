package history

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	historyDto "anoa.com/videohub/internal/modules/history/dto"
	historyRepo "anoa.com/videohub/internal/modules/history/repository"
	videoDto "anoa.com/videohub/internal/modules/video/dto"
	video "anoa.com/videohub/internal/modules/video/service"
	"anoa.com/videohub/pkg/apperror"
	"anoa.com/videohub/pkg/dto"
	"github.com/google/uuid"
)

var ErrInvalidPage = apperror.New(http.StatusNotFound, "invalid page", apperror.ErrNotFound)

type HistoryService interface {
	Register(ctx context.Context, userID uuid.UUID, req historyDto.RegisterViewRequest) (*historyDto.HistoryResponse, error)
	// List returns one page of the caller's history, most recent first.
	List(ctx context.Context, userID uuid.UUID, page int, base *url.URL) (*dto.Page[historyDto.HistoryResponse], error)
}

type historyService struct {
	repo         historyRepo.HistoryRepository
	videoService video.VideoService
	pageSize     int
}

func NewHistoryService(repo historyRepo.HistoryRepository, videoService video.VideoService) HistoryService {
	return &historyService{
		repo:         repo,
		videoService: videoService,
		pageSize:     dto.DefaultPageSize,
	}
}

func (s *historyService) Register(ctx context.Context, userID uuid.UUID, req historyDto.RegisterViewRequest) (*historyDto.HistoryResponse, error) {
	if err := s.videoService.EnsureExists(ctx, req.VideoID); err != nil {
		return nil, err
	}

	h, err := s.repo.GetOrCreate(ctx, userID, req.VideoID)
	if err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}

	v, err := s.videoService.Get(ctx, req.VideoID)
	if err != nil {
		return nil, err
	}

	return &historyDto.HistoryResponse{ID: h.ID, Video: *v, ViewedAt: h.ViewedAt}, nil
}

func (s *historyService) List(ctx context.Context, userID uuid.UUID, page int, base *url.URL) (*dto.Page[historyDto.HistoryResponse], error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if page > dto.TotalPages(count, s.pageSize) {
		return nil, ErrInvalidPage
	}

	rows, err := s.repo.ListByUser(ctx, userID, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.VideoID
	}
	videos, err := s.videoService.Project(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]videoDto.VideoResponse, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	results := make([]historyDto.HistoryResponse, 0, len(rows))
	for _, row := range rows {
		v, ok := byID[row.VideoID]
		if !ok {
			continue
		}
		results = append(results, historyDto.HistoryResponse{ID: row.ID, Video: v, ViewedAt: row.ViewedAt})
	}

	out := dto.NewPage(base, page, s.pageSize, count, results)
	return &out, nil
}
