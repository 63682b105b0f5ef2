package search

import (
	"context"
	"errors"
	"fmt"

	searchRepo "anoa.com/videohub/internal/modules/search/repository"
	videoRepo "anoa.com/videohub/internal/modules/video/repository"
	"anoa.com/videohub/pkg/logger"
	"go.uber.org/zap"
)

const ReindexJobName = "search-reindex"

type VideoLister interface {
	ListWithStats(ctx context.Context) ([]videoRepo.VideoStats, error)
}

// ReindexJob pushes every stored video into the search index, picking up
// uploads whose indexing failed at upload time.
type ReindexJob struct {
	videos   VideoLister
	index    searchRepo.VideoIndex
	schedule string
}

func NewReindexJob(videos VideoLister, index searchRepo.VideoIndex, schedule string) *ReindexJob {
	return &ReindexJob{videos: videos, index: index, schedule: schedule}
}

func (j *ReindexJob) Name() string { return ReindexJobName }

func (j *ReindexJob) Schedule() string { return j.schedule }

func (j *ReindexJob) Execute(ctx context.Context) error {
	rows, err := j.videos.ListWithStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to list videos: %w", err)
	}

	var errs []error
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.index.IndexVideo(ctx, row.ID, row.Title); err != nil {
			errs = append(errs, fmt.Errorf("video %d: %w", row.ID, err))
		}
	}

	logger.Log.Info("search reindex finished",
		zap.Int("videos", len(rows)),
		zap.Int("failed", len(errs)),
	)
	return errors.Join(errs...)
}
