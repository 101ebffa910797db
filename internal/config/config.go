package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// DataDir is the directory for the embedded key-value store.
	DataDir string

	// JWTSecret signs session tokens.
	JWTSecret string

	// OpenAIKey enables the AI advisor when set.
	OpenAIKey string

	// OpenAIModel overrides the default chat model.
	OpenAIModel string
}

// Load reads .env (if present) and the environment, applying defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:        getenv("ADDR", ":8081"),
		DataDir:     getenv("DATA_DIR", "./data"),
		JWTSecret:   getenv("JWT_SECRET", "nashwa-dev-secret"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: os.Getenv("OPENAI_MODEL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
