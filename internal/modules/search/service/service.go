package search

import (
	"context"
	"strings"

	searchRepo "anoa.com/videohub/internal/modules/search/repository"
	videoDto "anoa.com/videohub/internal/modules/video/dto"
	video "anoa.com/videohub/internal/modules/video/service"
	"anoa.com/videohub/pkg/logger"
	"go.uber.org/zap"
)

const MaxResults = 20

type SearchService interface {
	Search(ctx context.Context, query string) ([]videoDto.VideoResponse, error)
}

type searchService struct {
	index        searchRepo.VideoIndex
	videoService video.VideoService
}

// NewSearchService searches through index when given one and through the
// database otherwise.
func NewSearchService(index searchRepo.VideoIndex, videoService video.VideoService) SearchService {
	return &searchService{index: index, videoService: videoService}
}

func (s *searchService) Search(ctx context.Context, query string) ([]videoDto.VideoResponse, error) {
	query = strings.TrimSpace(query)

	if s.index != nil {
		ids, err := s.index.Search(ctx, query, MaxResults)
		if err == nil {
			return s.videoService.Project(ctx, ids)
		}
		logger.Log.Warn("search index unavailable, falling back to database", zap.Error(err))
	}

	return s.videoService.SearchByTitle(ctx, query, MaxResults)
}
