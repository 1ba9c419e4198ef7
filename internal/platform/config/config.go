package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	strutil "inu/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	Environment   string
	LogLevel      string
	JWT           JWTConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Tracing       TracingConfig
	OwnerCacheTTL time.Duration

	// LocalOwnerCache enables an in-process owner cache when Redis is not
	// configured. Single replica deployments only.
	LocalOwnerCache bool
}

// JWTConfig configures bearer token validation for caller identity.
type JWTConfig struct {
	SigningKey string
	Issuer     string
	Audience   string
	TTL        time.Duration
}

// DatabaseConfig selects the ledger storage. An empty URL keeps everything in memory.
type DatabaseConfig struct {
	URL string
}

// RedisConfig configures the owner-of cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit outbox relay. No brokers disables it.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	Partitions    int32
	Replication   int16
	RelayInterval time.Duration
	BatchSize     int
}

// TracingConfig selects the span exporter. "none" keeps tracing off.
type TracingConfig struct {
	Exporter     string
	OTLPEndpoint string
	SampleRate   float64
	ServiceName  string
}

// DevJWTSigningKey is the signing key used when JWT_SIGNING_KEY is unset.
const DevJWTSigningKey = "dev-secret-key-change-in-production"

// IsProduction reports whether dev-only defaults must be refused.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// Validate rejects settings that are only acceptable in development.
func (s Server) Validate() error {
	if s.IsProduction() && s.JWT.SigningKey == DevJWTSigningKey {
		return errors.New("JWT_SIGNING_KEY must be set in production")
	}
	if s.JWT.SigningKey == "" {
		return errors.New("JWT signing key must not be empty")
	}
	return nil
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:        envOr("INU_ADDR", ":8080"),
		Environment: envOr("INU_ENV", "development"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		JWT: JWTConfig{
			// Production refuses to start with the development key.
			SigningKey: envOr("JWT_SIGNING_KEY", DevJWTSigningKey),
			Issuer:     envOr("JWT_ISSUER", "inu"),
			Audience:   envOr("JWT_AUDIENCE", "inu-ledger"),
			TTL:        envDuration("JWT_TTL", 15*time.Minute),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:       envList("KAFKA_BROKERS"),
			Topic:         envOr("KAFKA_AUDIT_TOPIC", "inu.audit"),
			Partitions:    int32(envInt("KAFKA_AUDIT_PARTITIONS", 3)),
			Replication:   int16(envInt("KAFKA_AUDIT_REPLICATION", 1)),
			RelayInterval: envDuration("OUTBOX_RELAY_INTERVAL", time.Second),
			BatchSize:     envInt("OUTBOX_RELAY_BATCH_SIZE", 100),
		},
		Tracing: TracingConfig{
			Exporter:     envOr("TRACING_EXPORTER", "none"),
			OTLPEndpoint: envOr("TRACING_OTLP_ENDPOINT", "localhost:4317"),
			SampleRate:   envFloat("TRACING_SAMPLE_RATE", 1),
			ServiceName:  envOr("TRACING_SERVICE_NAME", "inu"),
		},
		OwnerCacheTTL:   envDuration("OWNER_CACHE_TTL", 5*time.Minute),
		LocalOwnerCache: envBool("OWNER_CACHE_LOCAL", false),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	return strutil.SplitList(os.Getenv(key), ",")
}
