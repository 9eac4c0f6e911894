package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath       string
	DeliveriesFile string
	RankingFile    string
	DistanceFile   string
	ZThreshold     float64
}

// Load reads configuration from a .env file and environment variables.
// Input file paths default to well-known names under DATA_PATH.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, relying on environment variables")
	}

	dataPath := getEnv("DATA_PATH", ".")

	cfg := &AppConfig{
		DataPath:       dataPath,
		DeliveriesFile: getEnv("DELIVERIES_FILE", filepath.Join(dataPath, "deliveries.jsonl")),
		RankingFile:    getEnv("RANKING_FILE", filepath.Join(dataPath, "partner_ranking.jsonl")),
		DistanceFile:   getEnv("DISTANCE_FILE", filepath.Join(dataPath, "distance_performance.jsonl")),
		ZThreshold:     getEnvFloat("ANOMALY_Z_THRESHOLD", 2.0),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid float in environment, using fallback")
	}
	return fallback
}
