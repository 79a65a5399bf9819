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
	Mongo    MongoConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Business BusinessConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	TopicRetail   string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type BusinessConfig struct {
	LowStockThreshold  int
	CardExpiryWarnDays int
	SweepInterval      time.Duration
	PromotionCacheTTL  time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	lowStock, _ := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "5"))
	warnDays, _ := strconv.Atoi(getEnv("CARD_EXPIRY_WARN_DAYS", "30"))
	sweepHours, _ := strconv.Atoi(getEnv("SWEEP_INTERVAL_HOURS", "24"))
	cacheTTL, _ := strconv.Atoi(getEnv("PROMOTION_CACHE_TTL_SECONDS", "60"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "retail"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicRetail:   getEnv("KAFKA_TOPIC_RETAIL_EVENTS", "retail-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "retail-backoffice-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Business: BusinessConfig{
			LowStockThreshold:  lowStock,
			CardExpiryWarnDays: warnDays,
			SweepInterval:      time.Duration(sweepHours) * time.Hour,
			PromotionCacheTTL:  time.Duration(cacheTTL) * time.Second,
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
