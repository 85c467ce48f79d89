package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr              string
	DatabaseURL       string
	RedisURL          string
	KafkaBrokers      []string
	AuditTopic        string
	JWTSigningKey     string
	StatusCacheTTL    time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("HDC_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "hdc.audit.events"
	}

	cacheTTL := duration("STATUS_CACHE_TTL", 10*time.Minute)

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return Server{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaBrokers:      brokers,
		AuditTopic:        auditTopic,
		JWTSigningKey:     jwtSigningKey,
		StatusCacheTTL:    cacheTTL,
		ReadHeaderTimeout: duration("HTTP_READ_HEADER_TIMEOUT", 0),
		WriteTimeout:      duration("HTTP_WRITE_TIMEOUT", 0),
	}
}

func duration(name string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(name); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			return parsed
		}
	}
	return fallback
}
