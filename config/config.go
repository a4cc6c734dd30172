package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	StripeAPIKey     string
	FrontendStoreURL string
	KafkaBrokers     []string
	KafkaOrdersTopic string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	return Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		DatabaseURL:      getEnvOrDefault("DATABASE_URL", ""),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", ""),
		StripeAPIKey:     getEnvOrDefault("STRIPE_API_KEY", ""),
		FrontendStoreURL: getEnvOrDefault("FRONTEND_STORE_URL", "http://localhost:3001"),
		KafkaBrokers:     splitList(getEnvOrDefault("KAFKA_BROKERS", "")),
		KafkaOrdersTopic: getEnvOrDefault("KAFKA_ORDERS_TOPIC", "orders.created"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
