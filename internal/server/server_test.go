package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"anoa.com/videohub/internal/config"
	"anoa.com/videohub/internal/entity"
	searchService "anoa.com/videohub/internal/modules/search/service"
	"anoa.com/videohub/internal/testutil"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	handler http.Handler
	db      *gorm.DB
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:         "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		JWTSecret:      "test-secret",
		JWTAccessTTL:   15 * time.Minute,
		JWTRefreshTTL:  24 * time.Hour,
		Timezone:       time.UTC,
	}
}

func newTestApp(t *testing.T, rdb *redis.Client) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)

	srv, err := NewServer(Deps{Config: testConfig(), DB: db, RedisClient: rdb})
	require.NoError(t, err)
	return &testApp{handler: srv.Handler(), db: db}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testApp) signup(t *testing.T, username string) (access, refresh string) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": username, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	return pair.Access, pair.Refresh
}

func (a *testApp) upload(t *testing.T, token, title string) uint {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/videos", token, gin.H{
		"title":        title,
		"youtube_link": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var video struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &video))
	return video.ID
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UP", decodeMap(t, w)["status"])
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	app := newTestApp(t, nil)

	for _, path := range []string{"/api/history", "/api/videos", "/api/todos", "/api/auth/me"} {
		w := app.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestHistoryIsPerUser(t *testing.T) {
	app := newTestApp(t, nil)
	user1, _ := app.signup(t, "user1")
	user2, _ := app.signup(t, "user2")
	videoID := app.upload(t, user1, "First")

	w := app.do(t, http.MethodPost, "/api/history", user1, gin.H{"video_id": videoID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/history", user1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeMap(t, w)["count"])

	w = app.do(t, http.MethodGet, "/api/history", user2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeMap(t, w)["count"])

	w = app.do(t, http.MethodGet, "/api/history?page=9", user1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "invalid page", decodeMap(t, w)["error"])
}

func TestReactOverwritesPreviousReaction(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.signup(t, "reactor")
	videoID := app.upload(t, token, "Clip")
	path := fmt.Sprintf("/api/videos/%d/react", videoID)

	w := app.do(t, http.MethodPost, path, token, gin.H{"reaction_type": "like"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decodeMap(t, w)["like_count"])

	w = app.do(t, http.MethodPost, path, token, gin.H{"reaction_type": "dislike"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeMap(t, w)
	assert.EqualValues(t, 0, body["like_count"])
	assert.EqualValues(t, 1, body["dislike_count"])

	var reactions []entity.Reaction
	require.NoError(t, app.db.Find(&reactions).Error)
	require.Len(t, reactions, 1)
	assert.Equal(t, entity.ReactionDislike, reactions[0].ReactionType)

	w = app.do(t, http.MethodPost, "/api/videos/999/react", token, gin.H{"reaction_type": "like"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPopularIsPublic(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/api/videos/popular", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	token, _ := app.signup(t, "uploader")
	app.upload(t, token, "One")
	app.upload(t, token, "Two")

	w = app.do(t, http.MethodGet, "/api/videos/popular", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var videos []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &videos))
	assert.Len(t, videos, 2)
}

func TestCommentLifecycle(t *testing.T) {
	app := newTestApp(t, nil)
	author, _ := app.signup(t, "author")
	other, _ := app.signup(t, "other")
	videoID := app.upload(t, author, "Talk")
	base := fmt.Sprintf("/api/videos/%d/comments", videoID)

	w := app.do(t, http.MethodPost, base, author, gin.H{"text": "if a<b and c>d then ok"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeMap(t, w)
	assert.Equal(t, "if a<b and c>d then ok", created["text"])
	commentPath := fmt.Sprintf("/api/comments/%v", created["id"])

	w = app.do(t, http.MethodPatch, commentPath, other, gin.H{"text": "hijack"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodDelete, commentPath, author, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "comment deleted", decodeMap(t, w)["detail"])

	w = app.do(t, http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	mr := miniredis.RunT(t)
	app := newTestApp(t, redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	access, refresh := app.signup(t, "leaver")

	w := app.do(t, http.MethodGet, "/api/auth/me", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "leaver", decodeMap(t, w)["username"])

	w = app.do(t, http.MethodPost, "/api/auth/logout", access, gin.H{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/auth/me", access, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStartJobsReindexesOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var documentPosts atomic.Int32
	meili := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/documents") {
			documentPosts.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"taskUid":1,"indexUid":"videos","status":"enqueued","type":"documentAdditionOrUpdate"}`))
	}))
	t.Cleanup(meili.Close)

	cfg := testConfig()
	cfg.SearchReindexSchedule = "@every 6h"
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner")
	testutil.CreateVideo(t, db, owner, "Backlog", time.Now())

	withIndex, err := NewServer(Deps{Config: cfg, DB: db, MeiliClient: meilisearch.New(meili.URL)})
	require.NoError(t, err)
	assert.Equal(t, []string{searchService.ReindexJobName}, withIndex.scheduler.Jobs())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	withIndex.StartJobs(ctx)
	t.Cleanup(func() { withIndex.StopJobs(context.Background()) })

	assert.Eventually(t, func() bool { return documentPosts.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	withoutIndex, err := NewServer(Deps{Config: cfg, DB: testutil.NewDB(t)})
	require.NoError(t, err)
	assert.Empty(t, withoutIndex.scheduler.Jobs())
}
