package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port           int    `json:"port"`
	Environment    string `json:"environment"`
	ServiceVersion string `json:"service_version"`
	StaticDir      string `json:"static_dir"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Collection names
	FuncionarioCollection string `json:"mongo_funcionario_collection"`
	SistemaCollection     string `json:"mongo_sistema_collection"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Lock held while a registration for a CPF is being written
	CadastroLockTTL time.Duration `json:"cadastro_lock_ttl"`

	// Kafka configuration
	KafkaEnabled bool     `json:"kafka_enabled"`
	KafkaBrokers []string `json:"kafka_brokers"`
	KafkaTopic   string   `json:"kafka_topic"`

	// Tracing configuration
	TracingEnabled     bool    `json:"tracing_enabled"`
	TracingEndpoint    string  `json:"tracing_endpoint"`
	TracingSampleRatio float64 `json:"tracing_sample_ratio"`

	// Audit configuration
	AuditLogsEnabled    bool   `json:"audit_logs_enabled"`
	AuditLogsCollection string `json:"audit_logs_collection"`
	AuditWorkerCount    int    `json:"audit_worker_count"`
	AuditBufferSize     int    `json:"audit_buffer_size"`

	// CadastroRateLimit is the number of POST /cadastrar requests allowed per client per minute
	CadastroRateLimit int `json:"cadastro_rate_limit"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables, after an optional .env file
func LoadConfig() error {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	kafkaEnabled := getEnvAsBoolOrDefault("KAFKA_ENABLED", false)
	kafkaBrokers := parseCommaSeparatedList(getEnvOrDefault("KAFKA_BROKERS", "localhost:9092"))
	if kafkaEnabled && len(kafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
	}

	AppConfig = &Config{
		// Server configuration
		Port:           port,
		Environment:    getEnvOrDefault("ENVIRONMENT", "development"),
		ServiceVersion: getEnvOrDefault("SERVICE_VERSION", "v1.0.0"),
		StaticDir:      getEnvOrDefault("STATIC_DIR", "./static"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "cadastro"),

		FuncionarioCollection: getEnvOrDefault("MONGODB_FUNCIONARIO_COLLECTION", "funcionarios"),
		SistemaCollection:     getEnvOrDefault("MONGODB_SISTEMA_COLLECTION", "sistemas"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		CadastroLockTTL: getEnvAsDurationOrDefault("CADASTRO_LOCK_TTL", 10*time.Second),

		// Kafka configuration
		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: kafkaBrokers,
		KafkaTopic:   getEnvOrDefault("KAFKA_TOPIC", "rh.funcionarios"),

		// Tracing configuration
		TracingEnabled:     getEnvAsBoolOrDefault("TRACING_ENABLED", false),
		TracingEndpoint:    getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: getEnvAsRatioOrDefault("TRACING_SAMPLE_RATIO", 1.0),

		// Audit configuration
		AuditLogsEnabled:    getEnvAsBoolOrDefault("AUDIT_LOGS_ENABLED", true),
		AuditLogsCollection: getEnvOrDefault("MONGODB_AUDIT_LOGS_COLLECTION", "audit_logs"),
		AuditWorkerCount:    getEnvAsIntOrDefault("AUDIT_WORKER_COUNT", 2),
		AuditBufferSize:     getEnvAsIntOrDefault("AUDIT_BUFFER_SIZE", 1000),

		CadastroRateLimit: getEnvAsIntOrDefault("CADASTRO_RATE_LIMIT", 30),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns environment variable as bool or default if not set or invalid
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsIntOrDefault returns environment variable as int or default if not set or invalid
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// getEnvAsRatioOrDefault returns environment variable as a float in [0, 1] or default if not set or invalid
func getEnvAsRatioOrDefault(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || parsed > 1 {
		return defaultValue
	}
	return parsed
}

// getEnvAsDurationOrDefault returns environment variable as duration or default if not set or invalid
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// parseCommaSeparatedList splits a comma separated value, dropping empty items
func parseCommaSeparatedList(value string) []string {
	items := []string{}
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
