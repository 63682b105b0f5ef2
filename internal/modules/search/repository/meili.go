package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"anoa.com/videohub/pkg/logger"
	"anoa.com/videohub/pkg/sanitize"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const videosIndex = "videos"

// VideoIndex is the full text index over video titles.
type VideoIndex interface {
	IndexVideo(ctx context.Context, id uint, title string) error
	// Search returns matching video ids, best match first.
	Search(ctx context.Context, query string, limit int) ([]uint, error)
}

type meiliVideoDoc struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type meiliSearchResult struct {
	Hits []meiliVideoDoc `json:"hits"`
}

type meiliVideoIndex struct {
	client meilisearch.ServiceManager
}

func NewMeiliVideoIndex(client meilisearch.ServiceManager) VideoIndex {
	idx := &meiliVideoIndex{client: client}
	idx.initIndex()
	return idx
}

func (m *meiliVideoIndex) initIndex() {
	searchable := []string{"title"}
	if _, err := m.client.Index(videosIndex).UpdateSearchableAttributes(&searchable); err != nil {
		logger.Log.Warn("failed to update videos searchable attributes", zap.Error(err))
	}
}

func strPtr(s string) *string {
	return &s
}

func (m *meiliVideoIndex) IndexVideo(ctx context.Context, id uint, title string) error {
	doc := meiliVideoDoc{ID: id, Title: sanitize.Text(title)}
	task, err := m.client.Index(videosIndex).AddDocumentsWithContext(ctx, []meiliVideoDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	logger.Log.Debug("indexed video", zap.Uint("video_id", id), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (m *meiliVideoIndex) Search(ctx context.Context, query string, limit int) ([]uint, error) {
	raw, err := m.client.Index(videosIndex).SearchRawWithContext(ctx, query, &meilisearch.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, err
	}

	var result meiliSearchResult
	if err := json.Unmarshal(*raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]uint, len(result.Hits))
	for i, hit := range result.Hits {
		ids[i] = hit.ID
	}
	return ids, nil
}
