package server

import (
	"context"
	"net/http"
	"time"

	"anoa.com/videohub/internal/config"
	"anoa.com/videohub/internal/middleware"
	"anoa.com/videohub/internal/modules/popularity"
	"anoa.com/videohub/internal/scheduler"
	"anoa.com/videohub/pkg/database"
	"anoa.com/videohub/pkg/logger"
	"anoa.com/videohub/pkg/tokenstore"
	"anoa.com/videohub/pkg/validator"

	commentHttp "anoa.com/videohub/internal/modules/comment/delivery/http"
	commentRepo "anoa.com/videohub/internal/modules/comment/repository"
	commentService "anoa.com/videohub/internal/modules/comment/service"

	historyHttp "anoa.com/videohub/internal/modules/history/delivery/http"
	historyRepo "anoa.com/videohub/internal/modules/history/repository"
	historyService "anoa.com/videohub/internal/modules/history/service"

	reactionHttp "anoa.com/videohub/internal/modules/reaction/delivery/http"
	reactionRepo "anoa.com/videohub/internal/modules/reaction/repository"
	reactionService "anoa.com/videohub/internal/modules/reaction/service"

	searchHttp "anoa.com/videohub/internal/modules/search/delivery/http"
	searchRepo "anoa.com/videohub/internal/modules/search/repository"
	searchService "anoa.com/videohub/internal/modules/search/service"

	todoHttp "anoa.com/videohub/internal/modules/todo/delivery/http"
	todoRepo "anoa.com/videohub/internal/modules/todo/repository"
	todoService "anoa.com/videohub/internal/modules/todo/service"

	userHttp "anoa.com/videohub/internal/modules/user/delivery/http"
	userRepo "anoa.com/videohub/internal/modules/user/repository"
	userService "anoa.com/videohub/internal/modules/user/service"

	videoHttp "anoa.com/videohub/internal/modules/video/delivery/http"
	videoRepo "anoa.com/videohub/internal/modules/video/repository"
	videoService "anoa.com/videohub/internal/modules/video/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP server is built from. Redis and
// Meilisearch are optional.
type Deps struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	MeiliClient meilisearch.ServiceManager
	// Clock overrides the request time source.
	Clock      videoService.Clock
	Popularity []popularity.Option
}

type Server struct {
	engine    *gin.Engine
	scheduler *scheduler.Scheduler
}

func NewServer(deps Deps) (*Server, error) {
	cfg := deps.Config
	db := deps.DB
	redisClient := deps.RedisClient

	if err := validator.Register(); err != nil {
		return nil, err
	}

	clock := deps.Clock
	if clock == nil {
		loc := cfg.Timezone
		if loc == nil {
			loc = time.UTC
		}
		clock = func() time.Time { return time.Now().In(loc) }
	}

	// Search index (optional)
	var videoIndex searchRepo.VideoIndex
	var indexer videoService.Indexer
	if deps.MeiliClient != nil {
		videoIndex = searchRepo.NewMeiliVideoIndex(deps.MeiliClient)
		indexer = videoIndex
	}

	// User Module
	tokens := userService.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, tokenstore.New(redisClient))
	userRepository := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepository, tokens)
	authHandler := userHttp.NewAuthHandler(authSvc)

	// Video Module
	videoRepository := videoRepo.NewRepository(db)
	videoSvc := videoService.NewVideoService(videoRepository, videoService.Options{
		Clock:       clock,
		RedisClient: redisClient,
		UploadLimit: cfg.RateLimitUpload,
		Indexer:     indexer,
		Engine:      deps.Popularity,
	})
	videoHandler := videoHttp.NewVideoHandler(videoSvc)

	reactionSvc := reactionService.NewReactionService(reactionRepo.NewReactionRepository(db), videoSvc, redisClient, cfg.RateLimitReaction)
	reactionHandler := reactionHttp.NewReactionHandler(reactionSvc)

	commentSvc := commentService.NewCommentService(commentRepo.NewCommentRepository(db), videoSvc, redisClient, cfg.RateLimitComment)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	historySvc := historyService.NewHistoryService(historyRepo.NewHistoryRepository(db), videoSvc)
	historyHandler := historyHttp.NewHistoryHandler(historySvc)

	searchSvc := searchService.NewSearchService(videoIndex, videoSvc)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	jobs := scheduler.NewScheduler()
	if videoIndex != nil {
		if err := jobs.Register(searchService.NewReindexJob(videoRepository, videoIndex, cfg.SearchReindexSchedule)); err != nil {
			return nil, err
		}
	}

	todoSvc := todoService.NewTodoService(todoRepo.NewTodoRepository(db))
	todoHandler := todoHttp.NewTodoHandler(todoSvc)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(middleware.Recovery(logger.Log))
	router.Use(middleware.RequestLogger(logger.Log))

	authMiddleware := middleware.NewAuthMiddleware(tokens)
	requireAuth := authMiddleware.RequireAuth()

	router.GET("/health", healthHandler(db))

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", requireAuth, authHandler.Logout)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", requireAuth, videoHandler.List)
		videos.POST("", requireAuth, videoHandler.Upload)
		videos.GET("/popular", videoHandler.Popular)
		videos.GET("/search", searchHandler.Search)
		videos.GET("/:id", videoHandler.Get)
		videos.POST("/:id/react", requireAuth, reactionHandler.React)
		videos.GET("/:id/comments", commentHandler.List)
		videos.POST("/:id/comments", requireAuth, commentHandler.Create)
	}

	protected := api.Group("")
	protected.Use(requireAuth)
	{
		protected.PATCH("/comments/:id", commentHandler.Update)
		protected.DELETE("/comments/:id", commentHandler.Delete)

		protected.POST("/history", historyHandler.Register)
		protected.GET("/history", historyHandler.List)

		protected.GET("/todos", todoHandler.List)
		protected.POST("/todos", todoHandler.Create)
		protected.PATCH("/todos/:id", todoHandler.Update)
		protected.DELETE("/todos/:id", todoHandler.Delete)
	}

	return &Server{
		engine:    router,
		scheduler: jobs,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// StartJobs starts the background job scheduler and runs the search reindex
// once so videos uploaded while the index was down become searchable.
func (s *Server) StartJobs(ctx context.Context) {
	s.scheduler.Start()
	logger.Log.Info("scheduler started", zap.Strings("jobs", s.scheduler.Jobs()))

	for _, name := range s.scheduler.Jobs() {
		if name == searchService.ReindexJobName {
			go func() {
				_ = s.scheduler.RunByName(ctx, name)
			}()
		}
	}
}

func (s *Server) StopJobs(ctx context.Context) {
	s.scheduler.Stop(ctx)
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP", "database": "healthy"})
	}
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
