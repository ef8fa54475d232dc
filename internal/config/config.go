package config

import (
	"os"
	"strings"
	"time"
)

// StockPolicy selects when a variant's stock is decremented for an order.
type StockPolicy string

const (
	// DecrementOnPaid decrements stock on the pending -> paid transition.
	DecrementOnPaid StockPolicy = "on_paid"
	// DecrementOnCreate decrements stock when the order is placed.
	DecrementOnCreate StockPolicy = "on_create"
)

type Config struct {
	HTTPAddr      string
	DBPath        string
	RedisAddr     string
	KafkaBrokers  []string
	KafkaTopic    string
	AdminEmail    string
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration
	StockPolicy   StockPolicy
}

func Load() Config {
	return Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		DBPath:        getenv("DB_PATH", "db/nava.db"),
		RedisAddr:     os.Getenv("REDIS_ADDR"), // empty disables the catalog cache
		KafkaBrokers:  splitCSV(getenv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:    getenv("KAFKA_TOPIC", "order-topic"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@mail.com"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		JWTSecret:     getenv("JWT_SECRET", "supersecret"),
		TokenTTL:      getduration("TOKEN_TTL", 2*time.Hour),
		StockPolicy:   parsePolicy(getenv("STOCK_POLICY", string(DecrementOnPaid))),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parsePolicy(s string) StockPolicy {
	if StockPolicy(s) == DecrementOnCreate {
		return DecrementOnCreate
	}
	return DecrementOnPaid
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
