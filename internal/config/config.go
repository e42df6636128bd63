package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	OpenSeaAPIKey   string
	OpenSeaAPIURL   string
	OpenSeaPageSize int

	LootexAPIURL       string
	LootexPageSize     int
	LootexPlatformType int
	LootexTimeOffset   time.Duration

	FetchMaxPages   int
	HTTPTimeoutSecs int

	HTTPPort string
	APIKey   string

	SSHPort           int
	SSHHostKeyPath    string
	SSHAuthorizedKeys string
}

func Load() *Config {
	cfg := &Config{
		OpenSeaAPIKey:     strings.TrimSpace(os.Getenv("OPENSEA_API_KEY")),
		APIKey:            strings.TrimSpace(os.Getenv("API_KEY")),
		SSHAuthorizedKeys: strings.TrimSpace(os.Getenv("SSH_AUTHORIZED_KEYS")),
	}

	if cfg.OpenSeaAPIKey == "" {
		log.Println("Warning: OPENSEA_API_KEY not set, OpenSea requests will likely be rejected")
	}

	cfg.OpenSeaAPIURL = stringEnv("OPENSEA_API_URL", "https://api.opensea.io/api/v2")
	cfg.LootexAPIURL = stringEnv("LOOTEX_API_URL", "https://v3-api.lootex.io/api/v3")

	cfg.OpenSeaPageSize = positiveIntEnv("OPENSEA_PAGE_SIZE", 50)
	if cfg.OpenSeaPageSize > 50 {
		log.Printf("Warning: OPENSEA_PAGE_SIZE=%d exceeds the API maximum, using 50", cfg.OpenSeaPageSize)
		cfg.OpenSeaPageSize = 50
	}
	cfg.LootexPageSize = positiveIntEnv("LOOTEX_PAGE_SIZE", 30)
	cfg.LootexPlatformType = positiveIntEnv("LOOTEX_PLATFORM_TYPE", 1)

	cfg.LootexTimeOffset = 0
	if v := strings.TrimSpace(os.Getenv("LOOTEX_TIME_OFFSET_HOURS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= -14 && n <= 14 {
			cfg.LootexTimeOffset = time.Duration(n) * time.Hour
		} else {
			log.Printf("Warning: invalid LOOTEX_TIME_OFFSET_HOURS=%q, using 0", v)
		}
	}

	cfg.FetchMaxPages = positiveIntEnv("FETCH_MAX_PAGES", 100)
	cfg.HTTPTimeoutSecs = positiveIntEnv("HTTP_TIMEOUT_SECS", 30)

	cfg.HTTPPort = stringEnv("HTTP_PORT", "8080")
	if cfg.APIKey == "" {
		log.Println("Warning: API_KEY not set, HTTP API is unauthenticated")
	}

	cfg.SSHPort = positiveIntEnv("SSH_PORT", 2222)
	cfg.SSHHostKeyPath = stringEnv("SSH_HOST_KEY_PATH", ".ssh/id_ed25519")

	return cfg
}

// HTTPTimeout is HTTPTimeoutSecs as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSecs) * time.Second
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func positiveIntEnv(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
	}
	return def
}
