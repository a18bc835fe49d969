package ecsservice

import "os"

// Config holds ambient AWS configuration.
type Config struct {
	Region      string
	EndpointURL string // Custom endpoint URL for simulator mode
}

// ConfigFromEnv loads configuration from environment variables.
func ConfigFromEnv() Config {
	return Config{
		Region:      envOrDefault("AWS_REGION", "us-east-1"),
		EndpointURL: os.Getenv("ECS_SERVICE_ENDPOINT_URL"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
