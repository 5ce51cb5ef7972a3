package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/blackout-app/backend/internal/application/community"
	"github.com/blackout-app/backend/internal/application/photo"
	"github.com/blackout-app/backend/internal/config"
	"github.com/blackout-app/backend/internal/domain"
	cache "github.com/blackout-app/backend/internal/infrastructure/caching/redis"
	"github.com/blackout-app/backend/internal/infrastructure/db/postgres"
	"github.com/blackout-app/backend/internal/infrastructure/messaging/rabbitmq"
	s3store "github.com/blackout-app/backend/internal/infrastructure/storage/s3"
	"github.com/blackout-app/backend/internal/logger"
	"github.com/blackout-app/backend/internal/notify"
	"github.com/blackout-app/backend/internal/transport/http/handlers"
	authmw "github.com/blackout-app/backend/internal/transport/http/middleware"
	"github.com/blackout-app/backend/internal/transport/http/router"
)

// sysClock feeds the application services real time.
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service.
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Publisher *rabbitmq.Publisher
	Consumer  *rabbitmq.Consumer
	Cache     *cache.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	if cfg.AppEnv == "dev" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			cancel()
			zlog.Fatal().Err(err).Msg("schema setup failed")
		}
		cancel()
	}

	app := NewApp(cfg, db)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
		if app.Cache != nil {
			_ = app.Cache.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if app.Consumer != nil {
		go app.Consumer.Start(ctx)
	}

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	}()

	<-ctx.Done()
	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("server shutdown failed")
	}
}

func NewApp(cfg *config.Config, db *sql.DB) *App {
	// 1) Infrastructure
	communityRepo := postgres.NewCommunityRepo(db)
	membershipRepo := postgres.NewMembershipRepo(db)
	photoRepo := postgres.NewPhotoRepo(db)

	var rdb *cache.Client
	var communityCache community.Cache
	if cfg.RedisURL != "" {
		c, err := cache.New(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable: community details will not be cached")
		} else {
			rdb = c
			communityCache = c
		}
	}

	var storage photo.Storage
	if cfg.S3Endpoint != "" {
		s3c, err := s3store.NewClient(s3store.Config{
			Endpoint:         cfg.S3Endpoint,
			ExternalEndpoint: cfg.S3ExternalEndpoint,
			Region:           cfg.S3Region,
			AccessKeyID:      cfg.S3AccessKeyID,
			SecretAccessKey:  cfg.S3SecretAccessKey,
			Bucket:           cfg.S3Bucket,
			UsePathStyle:     cfg.S3UsePathStyle,
			CDNBaseURL:       cfg.CDNBaseURL,
			PresignTTL:       cfg.PresignTTL,
		}, logger.Logger)
		if err != nil {
			zlog.Fatal().Err(err).Msg("s3 client init failed")
		}
		{
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s3c.EnsureBucket(ctx); err != nil {
				zlog.Warn().Err(err).Msg("bucket setup failed")
			}
		}
		storage = s3c
	} else {
		zlog.Warn().Msg("S3_ENDPOINT empty: uploads disabled, photo refs pass through unresolved")
	}

	hub := notify.NewHub()

	var rabbit *rabbitmq.Publisher
	var consumer *rabbitmq.Consumer
	var pub community.EventPublisher = community.NoopPublisher{}
	var photoPub photo.EventPublisher

	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		rabbit = p
		pub = p
		photoPub = p
		consumer = rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, hub)
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}

	reveal := domain.RevealAfterEndOnly
	if cfg.RevealPolicy == "during_or_after" {
		reveal = domain.RevealDuringOrAfter
	}

	// 2) Application
	commSvc := community.New(communityRepo, membershipRepo, photoRepo, sysClock{}, pub, communityCache, cfg.CacheTTLDetails)
	photoSvc := photo.New(photoRepo, membershipRepo, communityRepo, storage, sysClock{}, photoPub, reveal)

	// 3) Transport
	communities := handlers.NewCommunitiesHandler(commSvc, sysClock{}, reveal)
	photos := handlers.NewPhotosHandler(photoSvc)
	stream := handlers.NewStreamHandler(commSvc, hub)
	health := handlers.NewHealthHandler()
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)

	// 4) Router
	httpHandler := router.New(communities, photos, stream, health, auth, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     httpHandler,
		ReadTimeout: cfg.HTTPReadTimeout,
		// no WriteTimeout: it would sever long-lived SSE streams
		IdleTimeout: cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:    cfg,
		Server:    srv,
		DB:        db,
		Publisher: rabbit,
		Consumer:  consumer,
		Cache:     rdb,
	}
}
