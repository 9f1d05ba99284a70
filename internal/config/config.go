package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultAdminID recibe las tareas de moderación mientras no exista un
// mecanismo de reparto entre admins.
const DefaultAdminID = "067c3205-d896-7404-8000-3c25a05b74cf"

type Config struct {
	LogLevel string

	// Persistencia
	DBDriver    string // "sqlite" | "postgres"
	SQLitePath  string
	PostgresDSN string

	// Broker
	UseKafka      bool
	KafkaBrokers  []string
	TopicPrefix   string
	MeetupTopic   string
	ConsumerGroup string

	// Caché
	RedisAddr string
	CacheTTL  time.Duration

	// Outbox relay
	OutboxPeriod time.Duration
	OutboxLimit  int

	// Archivo y analítica (opcionales: vacío = deshabilitado)
	MongoURI       string
	MongoDB        string
	ClickhouseAddr string
	ClickhouseDB   string

	// Identidad del proceso
	HTTPPort string
	UserID   uuid.UUID
	UserRole string
	AdminID  uuid.UUID
}

func LoadConfig() *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
			return v
		}
		return fallback
	}
	getUUID := func(key, fallback string) uuid.UUID {
		if id, err := uuid.Parse(getEnv(key, fallback)); err == nil {
			return id
		}
		return uuid.MustParse(fallback)
	}

	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	adminID := getUUID("DEFAULT_ADMIN_ID", DefaultAdminID)

	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		SQLitePath:  getEnv("SQLITE_PATH", "./moderlab.db"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		UseKafka:      getEnv("USE_KAFKA", "false") == "true",
		KafkaBrokers:  kafkaBrokers,
		TopicPrefix:   getEnv("KAFKA_TOPIC_PREFIX", "moderation."),
		MeetupTopic:   getEnv("KAFKA_MEETUP_TOPIC", "meetups.meetupcreated"),
		ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "moderlab"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  time.Duration(getInt("CACHE_TTL_SECONDS", 300)) * time.Second,

		OutboxPeriod: time.Duration(getInt("OUTBOX_PERIOD_MS", 1000)) * time.Millisecond,
		OutboxLimit:  getInt("OUTBOX_LIMIT", 10),

		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDB:        getEnv("MONGO_DB", "moderlab"),
		ClickhouseAddr: getEnv("CLICKHOUSE_ADDR", ""),
		ClickhouseDB:   getEnv("CLICKHOUSE_DB", "moderlab"),

		HTTPPort: getEnv("HTTP_PORT", "8080"),
		UserID:   getUUID("USER_ID", DefaultAdminID),
		UserRole: getEnv("USER_ROLE", "admin"),
		AdminID:  adminID,
	}
}
