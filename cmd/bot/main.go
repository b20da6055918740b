package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/similarium/internal/common/clock"
	"github.com/KirkDiggler/similarium/internal/common/uuid"
	"github.com/KirkDiggler/similarium/internal/config"
	"github.com/KirkDiggler/similarium/internal/dice"
	"github.com/KirkDiggler/similarium/internal/handlers/rest"
	"github.com/KirkDiggler/similarium/internal/notifier"
	"github.com/KirkDiggler/similarium/internal/picker"
	"github.com/KirkDiggler/similarium/internal/repositories/game"
	"github.com/KirkDiggler/similarium/internal/repositories/guess_ledger"
	gameService "github.com/KirkDiggler/similarium/internal/services/game"
	"github.com/KirkDiggler/similarium/internal/services/messaging"
	"github.com/KirkDiggler/similarium/internal/services/milestone"
	"github.com/KirkDiggler/similarium/internal/similarity"
	"github.com/KirkDiggler/similarium/internal/words"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", getEnv("SIMILARIUM_CONFIG", "config.yaml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}

	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	logger := log.Logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	defer redisClient.Close()

	// Initialize repositories
	gameRepo, err := game.NewRedis(&game.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game repository")
	}

	var ledgerRepo guess_ledger.Repository
	switch cfg.Game.LedgerBackend {
	case config.LedgerBackendMemory:
		ledgerRepo = guess_ledger.NewMemory()
	default:
		ledgerRepo, err = guess_ledger.NewRedis(&guess_ledger.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create guess ledger repository")
		}
	}

	// Initialize the similarity oracle
	var oracle similarity.Oracle
	switch cfg.Game.Oracle {
	case config.OracleBackendStatic:
		logger.Warn().Msg("using the static oracle, only explicitly set words can be ranked")
		oracle = similarity.NewStatic()
	default:
		pool, err := newPool(ctx, &cfg.Postgres)
		if err != nil {
			log.Fatal().Err(err).Str("host", cfg.Postgres.Host).Msg("failed to connect to PostgreSQL")
		}
		defer pool.Close()

		oracle, err = similarity.NewPostgres(&similarity.PostgresConfig{
			Pool: pool,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create similarity oracle")
		}
	}

	// Initialize the secret picker
	candidates, err := words.LoadFile(cfg.Game.WordListPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Game.WordListPath).Msg("failed to load word list")
	}
	secretPicker, err := picker.New(candidates)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create secret picker")
	}
	logger.Info().Int("words", secretPicker.Size()).Msg("loaded candidate secrets")

	// Initialize dice roller
	diceRoller := dice.New(&dice.Config{})

	evaluator, err := milestone.New(&milestone.Config{
		Threshold: cfg.Game.TauntThreshold,
		Factor:    cfg.Game.TauntFactor,
		Roller:    diceRoller,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create milestone evaluator")
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Roller: diceRoller,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create messaging service")
	}

	// Initialize game service
	gameSvc, err := gameService.New(&gameService.Config{
		GameRepo:   gameRepo,
		LedgerRepo: ledgerRepo,
		Oracle:     oracle,
		Picker:     secretPicker,
		Evaluator:  evaluator,
		Normalizer: words.NewNormalizer(cfg.Game.SpellingVariants),
		Messaging:  messagingSvc,
		Clock:      &clock.DefaultClock{},
		UUID:       uuid.New(),
		Logger:     &logger,

		LedgerRetention: cfg.Game.LedgerRetention,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game service")
	}

	// Initialize notification sinks
	sinks := []notifier.Sink{notifier.NewLog(logger)}
	if cfg.Kafka.Enabled {
		producer, err := notifier.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("failed to connect to Kafka")
		}

		kafkaSink, err := notifier.NewKafka(&notifier.KafkaConfig{
			Producer: producer,
			Topic:    cfg.Kafka.Topic,
			Logger:   logger,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Kafka sink")
		}
		defer kafkaSink.Close()

		sinks = append(sinks, kafkaSink)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publishing events to Kafka")
	}

	handler, err := rest.New(&rest.Config{
		GameService:  gameSvc,
		Sink:         notifier.Multi(sinks...),
		SummaryLimit: cfg.Game.SummaryLimit,
		Logger:       &logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP handler")
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}

	logger.Info().Msg("server stopped")
}

// newPool connects to the embeddings database
func newPool(ctx context.Context, cfg *config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
