package app

import (
	"context"
	"log"
	"time"

	"uniLeaderboard/config"
	"uniLeaderboard/internal/domain/repository"
	"uniLeaderboard/internal/domain/service"
	"uniLeaderboard/internal/domain/useCases"
	ws "uniLeaderboard/internal/handlers/websocket"
	redisrepo "uniLeaderboard/internal/infrastructure/cache"
	"uniLeaderboard/internal/infrastructure/queue"
	chrepo "uniLeaderboard/internal/infrastructure/storage"
	"uniLeaderboard/internal/infrastructure/subgraph"
)

// AppContext holds all app dependencies
type AppContext struct {
	Config       *config.Config
	Leaderboards useCases.LeaderboardService
	Broadcaster  *ws.WebSocketBroadcaster
	Cache        *redisrepo.RedisRepository
	Archive      *chrepo.ClickHouseRepository
	Feed         *queue.SwapFeedProducer
}

// NewApp initializes the app context with all dependencies. Redis, ClickHouse
// and Kafka are optional collaborators: an unreachable backend logs a warning
// and the pipeline runs without it.
func NewApp(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	app := &AppContext{Config: cfg}

	source := subgraph.NewClient(cfg.GraphAPIKey,
		subgraph.WithEndpoint(cfg.SubgraphURL),
		subgraph.WithBatchSize(cfg.BatchSize),
		subgraph.WithMaxSwaps(cfg.TargetSwaps),
		subgraph.WithTimeout(time.Duration(cfg.FetchTimeout)*time.Second),
	)
	log.Println("Subgraph client initialized")

	var cache repository.LeaderboardCache
	redisRepo := redisrepo.NewRedisRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
		time.Duration(cfg.CacheTTL)*time.Second)
	if err := redisRepo.Ping(ctx); err != nil {
		log.Printf("Warning: Redis unavailable: %v. Continuing without cache.", err)
	} else {
		app.Cache = redisRepo
		cache = redisRepo
		log.Println("Redis leaderboard cache initialized")
	}

	var archive repository.SwapArchive
	chConfig := chrepo.ClickHouseConfig{
		Addr:     cfg.ClickhouseAddr,
		Username: cfg.ClickhouseUsername,
		Password: cfg.ClickhousePassword,
		Timeout:  cfg.ClickhouseTimeout,
	}
	clickhouseRepo, err := chrepo.NewClickHouseRepository(chConfig)
	if err != nil {
		log.Printf("Warning: Failed to connect to ClickHouse: %v. Continuing without swap archive.", err)
	} else {
		app.Archive = clickhouseRepo
		archive = clickhouseRepo
		log.Println("ClickHouse swap archive initialized")
	}

	var publisher useCases.SwapPublisher
	if len(cfg.KafkaBrokers) > 0 {
		app.Feed = queue.NewSwapFeedProducer(queue.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		publisher = app.Feed
		log.Println("Kafka swap feed producer initialized")
	} else {
		log.Println("Kafka not configured, swap feed disabled")
	}

	app.Broadcaster = ws.NewWebSocketBroadcaster()

	app.Leaderboards = service.NewCachedLeaderboardService(source, cache, archive, publisher, app.Broadcaster)
	log.Println("Leaderboard service initialized")

	return app, nil
}

// SwapHistory exposes the archive as an optional interface for the HTTP
// layer; it is nil when ClickHouse was unavailable at startup.
func (a *AppContext) SwapHistory() repository.SwapArchive {
	if a.Archive == nil {
		return nil
	}
	return a.Archive
}

// Cleanup performs graceful shutdown of all components
func (a *AppContext) Cleanup(ctx context.Context) {
	if a.Feed != nil {
		log.Println("Closing Kafka producer...")
		if err := a.Feed.Close(); err != nil {
			log.Printf("Error closing Kafka producer: %v", err)
		}
	}

	if a.Archive != nil {
		log.Println("Closing ClickHouse connection...")
		if err := a.Archive.Close(); err != nil {
			log.Printf("Error closing ClickHouse connection: %v", err)
		}
	}

	if a.Cache != nil {
		log.Println("Closing Redis connection...")
		if err := a.Cache.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}

	log.Println("All resources cleaned up")
}
