package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fandangolas/heimdall/internal/application/commands"
	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/application/queries"
	"github.com/fandangolas/heimdall/internal/config"
	infraauth "github.com/fandangolas/heimdall/internal/infrastructure/auth"
	"github.com/fandangolas/heimdall/internal/infrastructure/events"
	httprouter "github.com/fandangolas/heimdall/internal/infrastructure/http"
	"github.com/fandangolas/heimdall/internal/infrastructure/http/handlers"
	"github.com/fandangolas/heimdall/internal/infrastructure/http/middleware"
	"github.com/fandangolas/heimdall/internal/infrastructure/persistence/memory"
	"github.com/fandangolas/heimdall/internal/infrastructure/persistence/postgres"
	"github.com/fandangolas/heimdall/internal/infrastructure/persistence/rediscache"
	"github.com/fandangolas/heimdall/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()

	// Write-side and read-side stores. Postgres when configured, the
	// in-memory stores otherwise (dev/demo mode).
	var (
		pool         *pgxpool.Pool
		userRepo     ports.WriteUserRepository
		sessionRepo  ports.WriteSessionRepository
		readSessions ports.ReadSessionRepository
	)
	if cfg.Database.URL != "" {
		pool, err = pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping database")
		}
		userRepo = postgres.NewUserRepository(pool)
		sessionRepo = postgres.NewSessionRepository(pool)
		readSessions = postgres.NewReadSessionRepository(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set; using in-memory stores")
		memUsers := memory.NewUserRepository()
		memSessions := memory.NewSessionRepository()
		userRepo = memUsers
		sessionRepo = memSessions
		readSessions = memSessions.ReadView()
	}

	var redisClient *redis.Client
	var redisOpt *redis.Options
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisOpt = opt
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}
	if redisClient != nil {
		cacheTTL := time.Duration(cfg.Redis.SessionCacheTTL) * time.Second
		readSessions = rediscache.NewSessionCache(readSessions, redisClient, cacheTTL, log)
	}

	var bus ports.EventBus
	var worker *events.Worker
	if redisClient != nil {
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqBus := events.NewAsynqEventBus(asynqOpt, log)
		defer asynqBus.Close()
		bus = asynqBus
		worker = events.NewWorker(asynqOpt, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("event worker stopped")
			}
		}()
	} else {
		bus = events.NewNoopEventBus()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	privateKey, err := infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT private key")
	}
	tokens := infraauth.NewTokenService(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	// Command side gets the write repositories and the event bus; the
	// query side gets only the read repository and the token service.
	registerUC := commands.NewRegister(userRepo, hasher, bus)
	loginUC := commands.NewLogin(userRepo, sessionRepo, hasher, tokens, bus)
	logoutUC := commands.NewLogout(sessionRepo, tokens, bus)
	refreshUC := commands.NewRefresh(readSessions, tokens)
	validateUC := queries.NewValidateToken(readSessions, tokens)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(cfg.Secure.IsDevelopment)
	requireSession := middleware.NewSessionValidator(validateUC).Handler

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, logoutUC, refreshUC, validateUC, log)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		HealthHandler:  healthHandler,
		RequireSession: requireSession,
		Log:            log,
		Secure:         secureMiddleware,
		IPRateLimit:    ipLimit,
		CORS:           middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil),
		Metrics:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
