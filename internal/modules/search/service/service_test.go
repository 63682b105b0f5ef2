package search

import (
	"context"
	"errors"
	"testing"
	"time"

	videoRepo "anoa.com/videohub/internal/modules/video/repository"
	video "anoa.com/videohub/internal/modules/video/service"
	"anoa.com/videohub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIndex struct {
	ids   []uint
	err   error
	query string
}

func (s *stubIndex) IndexVideo(context.Context, uint, string) error { return nil }

func (s *stubIndex) Search(_ context.Context, query string, _ int) ([]uint, error) {
	s.query = query
	return s.ids, s.err
}

func TestSearchUsesIndexOrder(t *testing.T) {
	db := testutil.NewDB(t)
	videos := video.NewVideoService(videoRepo.NewRepository(db), video.Options{})
	owner := testutil.CreateUser(t, db, "owner")
	a := testutil.CreateVideo(t, db, owner, "alpha", time.Now())
	b := testutil.CreateVideo(t, db, owner, "beta", time.Now())

	idx := &stubIndex{ids: []uint{b.ID, 999, a.ID}}
	got, err := NewSearchService(idx, videos).Search(context.Background(), "  anything ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
	assert.Equal(t, "anything", idx.query)
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	db := testutil.NewDB(t)
	videos := video.NewVideoService(videoRepo.NewRepository(db), video.Options{})
	owner := testutil.CreateUser(t, db, "owner")
	testutil.CreateVideo(t, db, owner, "Learning Go", time.Now())
	testutil.CreateVideo(t, db, owner, "Baking bread", time.Now())

	for name, svc := range map[string]SearchService{
		"no index":     NewSearchService(nil, videos),
		"index failed": NewSearchService(&stubIndex{err: errors.New("unreachable")}, videos),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := svc.Search(context.Background(), "learning")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "Learning Go", got[0].Title)
		})
	}
}
