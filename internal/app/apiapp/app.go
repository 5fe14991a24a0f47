package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jordanhale/emberline/internal/config"
	s3infra "github.com/jordanhale/emberline/internal/infra/s3"
	"github.com/jordanhale/emberline/internal/jobs/cleanup"
	pgrepo "github.com/jordanhale/emberline/internal/repo/postgres"
	redrepo "github.com/jordanhale/emberline/internal/repo/redis"
	discoverysvc "github.com/jordanhale/emberline/internal/services/discovery"
	likessvc "github.com/jordanhale/emberline/internal/services/likes"
	matchessvc "github.com/jordanhale/emberline/internal/services/matches"
	sessionsvc "github.com/jordanhale/emberline/internal/services/sessions"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
	cleanupJob *cleanup.Job
	jobCancel  context.CancelFunc
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	exclusionRepo := redrepo.NewExclusionRepo(redisClient, cfg.Session.TTL)
	directoryRepo := pgrepo.NewDirectoryRepo(pool)
	likeRepo := pgrepo.NewLikeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	blockRepo := pgrepo.NewBlockRepo(pool)
	rejectedRepo := pgrepo.NewRejectedLikeRepo(pool)
	photoRepo := pgrepo.NewPhotoRepo(pool)

	jwtManager := sessionsvc.NewJWTManager(cfg.Session.JWTSecret, cfg.Session.TTL)
	sessionService := sessionsvc.NewService(jwtManager, sessionRepo, cfg.Session.TTL)

	discoveryService := discoverysvc.NewService(directoryRepo, exclusionRepo, discoverysvc.Config{
		TopK:           cfg.Matching.TopK,
		CandidateLimit: cfg.Matching.CandidateLimit,
	})
	discoveryService.AttachLogger(log)

	likeService := likessvc.NewService(likessvc.Dependencies{
		Pool:          pool,
		LikeStore:     likeRepo,
		MatchStore:    matchRepo,
		RejectedStore: rejectedRepo,
	})
	matchService := matchessvc.NewService(matchessvc.Dependencies{
		Pool:       pool,
		MatchStore: matchRepo,
		LikeStore:  likeRepo,
		BlockStore: blockRepo,
	})

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, candidates will carry no photo urls", zap.Error(err))
	} else {
		s3Client = c
		signer := s3infra.NewSigner(s3Client, cfg.S3.Bucket, cfg.S3.URLTTL)
		discoveryService.AttachPhotos(photoRepo, signer)
	}

	RegisterRoutes(r, Dependencies{
		SessionService:   sessionService,
		DiscoveryService: discoveryService,
		LikeService:      likeService,
		MatchService:     matchService,
		Logger:           log,
		Config:           cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	cleanupJob := cleanup.New(rejectedRepo, cfg.Cleanup.RejectedRetention, cfg.Cleanup.Interval, log)

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
		cleanupJob: cleanupJob,
	}, nil
}

func (a *App) Run() error {
	if a.cleanupJob != nil && a.postgres != nil {
		jobCtx, cancel := context.WithCancel(context.Background())
		a.jobCancel = cancel
		go a.cleanupJob.RunPeriodically(jobCtx)
	}

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if a.jobCancel != nil {
		a.jobCancel()
	}
	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
