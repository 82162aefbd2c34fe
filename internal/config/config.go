package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings. Everything is read from the
// environment so the bot can run unchanged in any container scheduler.
type Config struct {
	Port        string
	WebhookPath string

	// Bot identity on Farcaster.
	BotFID      string
	BotUsername string

	// Neynar (social API) credentials.
	NeynarAPIKey     string
	NeynarSignerUUID string
	NeynarBase       string

	// Gemini (generation backend).
	GeminiAPIKey string
	GeminiModel  string

	// Netlify (publish backend).
	NetlifyToken string
	NetlifyBase  string

	// Local staging and ledger locations.
	OutputDir     string
	OwnershipFile string

	// Optional alternate create-format pattern (regexp with three
	// capture groups).
	AltCreatePattern string

	DrainInterval      time.Duration
	GenerateTimeout    time.Duration
	GenerateRetries    int
	DeployPollAttempts int
	DeployPollInterval time.Duration
}

// Load reads configuration from the environment, applying defaults
// for everything that is not a credential.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		WebhookPath: getEnv("WEBHOOK_PATH", "/webhook"),

		BotFID:      getEnv("FARCASTER_BOT_FID", "1042522"),
		BotUsername: getEnv("FARCASTER_BOT_USERNAME", "forg"),

		NeynarAPIKey:     os.Getenv("NEYNAR_API_KEY"),
		NeynarSignerUUID: os.Getenv("NEYNAR_SIGNER_UUID"),
		NeynarBase:       getEnv("NEYNAR_BASE", "https://api.neynar.com"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-pro-latest"),

		NetlifyToken: os.Getenv("NETLIFY_AUTH_TOKEN"),
		NetlifyBase:  getEnv("NETLIFY_BASE", "https://api.netlify.com/api/v1"),

		OutputDir:     getEnv("OUTPUT_DIR", "dist"),
		OwnershipFile: getEnv("OWNERSHIP_FILE", "data/site-ownership.json"),

		AltCreatePattern: os.Getenv("MENTION_FORMAT_ALT"),

		DrainInterval:      getDuration("DRAIN_INTERVAL", 5*time.Second),
		GenerateTimeout:    getDuration("GENERATE_TIMEOUT", 30*time.Second),
		GenerateRetries:    getInt("GENERATE_RETRIES", 3),
		DeployPollAttempts: getInt("DEPLOY_POLL_ATTEMPTS", 15),
		DeployPollInterval: getDuration("DEPLOY_POLL_INTERVAL", 2*time.Second),
	}
}

// Validate reports the first missing required credential. The process
// must refuse to start when this fails.
func (c *Config) Validate() error {
	switch {
	case c.NeynarAPIKey == "":
		return errors.New("NEYNAR_API_KEY is required")
	case c.NeynarSignerUUID == "":
		return errors.New("NEYNAR_SIGNER_UUID is required")
	case c.GeminiAPIKey == "":
		return errors.New("GEMINI_API_KEY is required")
	case c.NetlifyToken == "":
		return errors.New("NETLIFY_AUTH_TOKEN is required")
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
