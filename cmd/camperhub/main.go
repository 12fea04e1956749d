package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	appoutbox "camperhub/internal/app/outbox"
	"camperhub/internal/app/services/adminusers"
	authsvc "camperhub/internal/app/services/auth"
	campersvc "camperhub/internal/app/services/campers"
	"camperhub/internal/app/services/ownerstats"
	"camperhub/internal/app/services/quotes"
	domainbooking "camperhub/internal/domain/booking"
	domaincamper "camperhub/internal/domain/camper"
	domainpricing "camperhub/internal/domain/pricing"
	domainuser "camperhub/internal/domain/user"
	"camperhub/internal/infra/broker/kafka"
	"camperhub/internal/infra/cache"
	"camperhub/internal/infra/config"
	mongodb "camperhub/internal/infra/db/mongo"
	ginserver "camperhub/internal/infra/http/gin"
	"camperhub/internal/infra/obs"
	"camperhub/internal/infra/outbox"
	"camperhub/internal/infra/security"
	"camperhub/internal/infra/storage/memory"
	"camperhub/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	deps, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer deps.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: deps.ready,
	}, deps.handlers(cfg, logger))

	if deps.outboxWorker != nil {
		go func() {
			if err := deps.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type dependencies struct {
	users    domainuser.Repository
	campers  domaincamper.Repository
	bookings domainbooking.Repository

	statsSource ownerstats.Source
	statsCache  ownerstats.Cache
	outboxPort  appoutbox.Outbox
	uploader    campersvc.Uploader
	tokens      *security.JWTManager

	outboxWorker *outbox.Worker
	mongoClient  *mongodb.Client
	redisClient  *redis.Client
	producer     *kafka.Producer
	statsTTL     time.Duration
}

func buildDependencies(ctx context.Context, cfg config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{
		tokens:   security.NewJWTManager([]byte(cfg.JWTSecret), cfg.TokenTTL),
		statsTTL: cfg.StatsCacheTTL,
	}

	if cfg.MongoURI != "" {
		client, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		deps.mongoClient = client
		deps.users = mongodb.NewUserRepository(client.DB)
		deps.campers = mongodb.NewCamperRepository(client.DB)
		deps.bookings = mongodb.NewBookingRepository(client.DB)
		deps.statsSource = mongodb.NewStatsSource(client.DB)

		store := outbox.NewStore(client.DB)
		deps.outboxPort = store
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				logger.Warn("kafka unavailable, outbox relay disabled", "error", err)
			} else {
				deps.producer = producer
				deps.outboxWorker = &outbox.Worker{
					Store:       store,
					Producer:    producer,
					Logger:      logger,
					Interval:    cfg.OutboxPollInterval,
					TopicPrefix: cfg.KafkaTopicPrefix,
					Backoff:     []time.Duration{time.Second, 5 * time.Second, 30 * time.Second},
				}
			}
		}
	} else {
		logger.Warn("MONGO_URI not set, using in-memory storage")
		users := memory.NewUserRepository()
		campers := memory.NewCamperRepository()
		bookings := memory.NewBookingRepository()
		deps.users = users
		deps.campers = campers
		deps.bookings = bookings
		deps.statsSource = &memory.StatsSource{Users: users, Campers: campers, Bookings: bookings}
		deps.outboxPort = memory.NewOutbox()
		seedAdmin(ctx, users, logger)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		deps.redisClient = client
		deps.statsCache = cache.NewOwnerStatsCache(client)
	}

	uploader, err := s3.NewPhotoStore(s3.Options{
		Endpoint:       cfg.S3Endpoint,
		PublicEndpoint: cfg.S3PublicEndpoint,
		AccessKey:      cfg.S3AccessKey,
		SecretKey:      cfg.S3SecretKey,
		Bucket:         cfg.S3Bucket,
		UseSSL:         cfg.S3UseSSL,
	}, logger)
	if err != nil {
		logger.Warn("photo storage unavailable", "error", err)
		deps.uploader = s3.NoopUploader{}
	} else {
		deps.uploader = uploader
	}

	return deps, nil
}

func (d *dependencies) handlers(cfg config.Config, logger *slog.Logger) ginserver.Handlers {
	hasher := &security.BcryptHasher{}
	encoder := appoutbox.JSONEventEncoder{}

	authService := &authsvc.Service{
		Users:     d.users,
		Passwords: hasher,
		Tokens:    d.tokens,
		Logger:    logger,
	}
	adminService := &adminusers.Service{
		Users:    d.users,
		Campers:  d.campers,
		Bookings: d.bookings,
		Outbox:   d.outboxPort,
		Encoder:  encoder,
		Logger:   logger,
	}
	statsService := &ownerstats.Service{
		Source:   d.statsSource,
		Cache:    d.statsCache,
		CacheTTL: d.statsTTL,
		Logger:   logger,
	}
	camperService := &campersvc.Service{
		Campers: d.campers,
		Uploads: d.uploader,
		Outbox:  d.outboxPort,
		Encoder: encoder,
		Logger:  logger,
	}
	quoteService := &quotes.Service{
		Campers:  d.campers,
		Bookings: d.bookings,
		Engine:   domainpricing.Engine{Logger: logger, StrictExtras: cfg.StrictExtras},
		Logger:   logger,
	}

	return ginserver.Handlers{
		Auth:   ginserver.AuthHandler{Service: authService, Logger: logger},
		Admin:  ginserver.AdminHandler{Users: adminService, Stats: statsService, Logger: logger},
		Camper: ginserver.CamperHandler{Service: camperService, Quotes: quoteService, Logger: logger},
		AuthMiddleware: ginserver.AuthMiddleware{
			Tokens:  d.tokens,
			Service: authService,
			Logger:  logger,
		}.Handle,
	}
}

func (d *dependencies) ready() error {
	if d.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return d.mongoClient.Ping(ctx)
	}
	return nil
}

func (d *dependencies) close(logger *slog.Logger) {
	if d.producer != nil {
		if err := d.producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			logger.Warn("redis close failed", "error", err)
		}
	}
	if d.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.mongoClient.Close(ctx); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}
}

// seedAdmin provisions a bootstrap admin for in-memory runs so the admin API
// is reachable without a database.
func seedAdmin(ctx context.Context, users domainuser.Repository, logger *slog.Logger) {
	email := os.Getenv("BOOTSTRAP_ADMIN_EMAIL")
	password := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	hasher := &security.BcryptHasher{}
	service := &authsvc.Service{Users: users, Passwords: hasher, Tokens: noopIssuer{}, Logger: logger}
	if _, err := service.CreateAdmin(ctx, authsvc.CreateAdminParams{
		Email:     email,
		Password:  password,
		FirstName: "Bootstrap",
		LastName:  "Admin",
	}); err != nil {
		logger.Warn("bootstrap admin not created", "error", err)
	}
}

type noopIssuer struct{}

func (noopIssuer) Issue(string, bool) (string, error) { return "", nil }
