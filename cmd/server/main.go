package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/newsroom/backend/internal/application/identity"
	publishingapp "github.com/newsroom/backend/internal/application/publishing"
	queryapp "github.com/newsroom/backend/internal/application/query"
	taxonomyapp "github.com/newsroom/backend/internal/application/taxonomy"
	"github.com/newsroom/backend/internal/infrastructure/auth"
	"github.com/newsroom/backend/internal/infrastructure/cache"
	"github.com/newsroom/backend/internal/infrastructure/config"
	"github.com/newsroom/backend/internal/infrastructure/event"
	"github.com/newsroom/backend/internal/infrastructure/logger"
	"github.com/newsroom/backend/internal/infrastructure/notification"
	"github.com/newsroom/backend/internal/infrastructure/persistence"
	"github.com/newsroom/backend/internal/infrastructure/storage"
	"github.com/newsroom/backend/internal/interfaces/http/handler"
	"github.com/newsroom/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Newsroom Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	eventDedup := cache.NewRedisIdempotencyStoreWithClient(redisClient, "")
	viewDedup := cache.NewRedisIdempotencyStoreWithClient(redisClient, "dedup:")
	countCache := cache.NewRedisCategoryCountCache(redisClient, cfg.View.CountCacheTTL, log)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	profileRepo := persistence.NewGormWriterProfileRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	magazineRepo := persistence.NewGormMagazineRepository(db.DB)
	mediaRepo := persistence.NewGormMediaRepository(db.DB)
	subscriberRepo := persistence.NewGormSubscriberRepository(db.DB)
	viewLogRepo := persistence.NewGormViewLogRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Transactional outbox: domain events are saved in the same transaction
	// as the aggregate and relayed to the bus by the processor
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	outboxPublisher := event.NewOutboxPublisher(eventSerializer)
	postRepo.SetOutboxEventSaver(outboxPublisher)
	userRepo.SetOutboxEventSaver(outboxPublisher)
	categoryRepo.SetOutboxEventSaver(outboxPublisher)

	// Notifier: SMTP when configured, log-only otherwise
	var notifier notification.Notifier
	if cfg.SMTP.Enabled {
		notifier = notification.NewSMTPNotifier(cfg.SMTP, log)
		log.Info("SMTP notifier enabled", zap.String("host", cfg.SMTP.Host))
	} else {
		notifier = notification.NewLoggingNotifier(log)
	}

	// Media store: S3-compatible object storage when configured
	var mediaStore publishingapp.MediaStorage
	if cfg.Media.Enabled {
		s3Store, err := storage.NewS3MediaStore(cfg.Media, log)
		if err != nil {
			log.Fatal("Failed to initialize media storage", zap.Error(err))
		}
		mediaStore = s3Store
		log.Info("S3 media storage enabled", zap.String("bucket", cfg.Media.Bucket))
	} else {
		mediaStore = storage.NewNoopMediaStore()
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	txScope := persistence.NewGormIdentityTransactionScope(db.DB)
	txScope.SetOutboxEventSaver(outboxPublisher)
	registrationService := identityapp.NewRegistrationService(userRepo, profileRepo, txScope, notifier, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, profileRepo, log)

	taxonomyService := taxonomyapp.NewService(categoryRepo, tagRepo, log)
	postService := publishingapp.NewPostService(
		postRepo, categoryRepo, viewLogRepo, taxonomyService, viewDedup, cfg.View.DedupWindow, log,
	)
	magazineService := publishingapp.NewMagazineService(magazineRepo, log)
	commentService := publishingapp.NewCommentService(commentRepo, postRepo, log)
	mediaService := publishingapp.NewMediaService(mediaRepo, mediaStore, log)
	subscriberService := publishingapp.NewSubscriberService(subscriberRepo, notifier, log)
	readService := queryapp.NewReadService(postRepo, categoryRepo, userRepo, countCache, log)

	// Event bus and the post-publish fan-out handler. The idempotency
	// wrapper keeps outbox redeliveries from re-notifying subscribers.
	eventBus := event.NewInMemoryEventBus(log)
	postPublishedHandler := publishingapp.NewPostPublishedHandler(
		userRepo, subscriberRepo, notifier, countCache, log,
	)
	eventBus.Subscribe(event.NewIdempotentHandler(postPublishedHandler, eventDedup, log))
	log.Info("Event handlers registered",
		zap.Strings("post_published_events", postPublishedHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	processorConfig := event.DefaultOutboxProcessorConfig()
	if cfg.Event.BatchSize > 0 {
		processorConfig.BatchSize = cfg.Event.BatchSize
	}
	if cfg.Event.PollInterval > 0 {
		processorConfig.PollInterval = cfg.Event.PollInterval
	}
	processorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
	if cfg.Event.CleanupRetention > 0 {
		processorConfig.CleanupRetention = cfg.Event.CleanupRetention
	}

	outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, processorConfig, log)
	if cfg.Event.ProcessorEnabled {
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", processorConfig.BatchSize),
			zap.Duration("poll_interval", processorConfig.PollInterval),
		)
	}

	// HTTP layer
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(registrationService, authService),
		User:       handler.NewUserHandler(userService),
		Post:       handler.NewPostHandler(postService, commentService),
		Comment:    handler.NewCommentHandler(commentService),
		Taxonomy:   handler.NewTaxonomyHandler(taxonomyService, readService),
		Magazine:   handler.NewMagazineHandler(magazineService),
		Media:      handler.NewMediaHandler(mediaService),
		Subscriber: handler.NewSubscriberHandler(subscriberService),
		System:     handler.NewSystemHandler(db.DB),
	}
	engine := router.New(cfg, jwtService, handlers, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
