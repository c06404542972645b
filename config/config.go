package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Data     DataConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	// URL is optional: when empty the snapshot is generated
	// synthetically instead of loaded from Postgres.
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	TopicQuery    string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
	PrometheusPort string
}

type DataConfig struct {
	Seed             int64
	Customers        int
	Products         int
	Orders           int
	DashboardRefresh time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, _ := strconv.Atoi(getEnv("QUERY_CACHE_TTL_SECONDS", "300"))
	seed, _ := strconv.ParseInt(getEnv("DATA_SEED", "42"), 10, 64)
	customers, _ := strconv.Atoi(getEnv("DATA_CUSTOMERS", "1000"))
	products, _ := strconv.Atoi(getEnv("DATA_PRODUCTS", "500"))
	orders, _ := strconv.Atoi(getEnv("DATA_ORDERS", "5000"))
	refresh, _ := strconv.Atoi(getEnv("DASHBOARD_REFRESH_SECONDS", "60"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: time.Duration(cacheTTL) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicQuery:    getEnv("KAFKA_TOPIC_QUERY_EVENTS", "analytics-query-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "analytics-copilot-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			PrometheusPort: getEnv("PROMETHEUS_PORT", "9090"),
		},
		Data: DataConfig{
			Seed:             seed,
			Customers:        customers,
			Products:         products,
			Orders:           orders,
			DashboardRefresh: time.Duration(refresh) * time.Second,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
