package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all app configuration
type Config struct {
	// Server
	HTTPPort string

	// Subgraph access
	GraphAPIKey  string
	SubgraphURL  string // optional full endpoint override
	FetchTimeout int    // seconds, per leaderboard run
	TargetSwaps  int    // hard retrieval cap per run
	BatchSize    int    // records per page request

	// Leaderboard
	DefaultLimit int

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      int // seconds

	// ClickHouse
	ClickhouseAddr     string
	ClickhouseUsername string
	ClickhousePassword string
	ClickhouseTimeout  int

	// Kafka
	KafkaBrokers []string
	KafkaTopic   string

	// App settings
	Debug bool
}

// LoadConfig loads configuration from environment variables, with optional .env file
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return &Config{
		// Server
		HTTPPort: getEnv("HTTP_PORT", "3001"),

		// Subgraph
		GraphAPIKey:  getEnv("GRAPH_API_KEY", "e945e8b23d8af7b0f249e0a260e6768d"),
		SubgraphURL:  getEnv("UNISWAP_SUBGRAPH_URL", ""),
		FetchTimeout: getEnvAsInt("FETCH_TIMEOUT", 60),
		TargetSwaps:  getEnvAsInt("TARGET_SWAPS", 10000),
		BatchSize:    getEnvAsInt("BATCH_SIZE", 1000),

		// Leaderboard
		DefaultLimit: getEnvAsInt("DEFAULT_LIMIT", 20),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsInt("CACHE_TTL", 300),

		// ClickHouse
		ClickhouseAddr:     getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickhouseUsername: getEnv("CLICKHOUSE_USERNAME", ""),
		ClickhousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),
		ClickhouseTimeout:  getEnvAsInt("CLICKHOUSE_TIMEOUT", 10),

		// Kafka
		KafkaBrokers: getEnvAsSlice("KAFKA_BROKERS", nil, ","),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "swap-records"),

		// App settings
		Debug: getEnvAsBool("DEBUG", false),
	}
}

// Helper functions for parsing environment variables
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsSlice(key string, defaultVal []string, sep string) []string {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultVal
	}
	return strings.Split(valStr, sep)
}
