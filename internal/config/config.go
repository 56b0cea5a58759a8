// ABOUTME: Environment-backed configuration for the hublens commands.
// ABOUTME: Loads .env via godotenv, then reads HUBSPOT_*/HUBLENS_* variables.

package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config carries everything the serve/check/mock commands need. The HubSpot
// token is a pre-provisioned private-app credential; hublens never manages
// an auth flow.
type Config struct {
	Token    string
	BaseURL  string
	Port     string
	MockPort string
	DBPath   string
}

// Load reads .env (current directory, parents, then the home directory) and
// assembles the configuration. Missing values fall back to defaults; a
// missing token is allowed and surfaces later as token_not_configured.
func Load() *Config {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".env"))
	}

	return &Config{
		Token:    os.Getenv("HUBSPOT_TOKEN"),
		BaseURL:  getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
		Port:     getEnv("HUBLENS_PORT", "8000"),
		MockPort: getEnv("HUBLENS_MOCK_PORT", "9100"),
		DBPath:   getEnv("HUBLENS_DB_PATH", "./hublens.db"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
