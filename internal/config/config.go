package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the site settings read from the environment.
type Config struct {
	Port            string
	ContentDir      string
	BaseURL         string
	DefaultLocale   string
	Locales         []string
	RateLimit       float64
	RateBurst       int
	StrictContent   bool
	TrustProxy      bool
	SiteTitle       string
	SiteDescription string
	SiteAuthor      string
}

// LoadEnv loads .env files into the environment. A missing file is not an
// error worth stopping for.
func LoadEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		log.Println("Error loading .env file")
	}
}

// Load reads the configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		ContentDir:      getEnv("CONTENT_DIR", "content/episodes"),
		BaseURL:         strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		DefaultLocale:   getEnv("DEFAULT_LOCALE", "es"),
		Locales:         splitList(getEnv("LOCALES", "es,en")),
		SiteTitle:       getEnv("SITE_TITLE", "Inaudible"),
		SiteDescription: getEnv("SITE_DESCRIPTION", "Conversaciones sobre la Ley del Uno y la filosofía de la Confederación."),
		SiteAuthor:      getEnv("SITE_AUTHOR", "Inaudible"),
	}

	var err error
	if cfg.RateLimit, err = strconv.ParseFloat(getEnv("RATE_LIMIT", "10"), 64); err != nil || cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q", os.Getenv("RATE_LIMIT"))
	}
	if cfg.RateBurst, err = strconv.Atoi(getEnv("RATE_BURST", "20")); err != nil || cfg.RateBurst <= 0 {
		return nil, fmt.Errorf("invalid RATE_BURST %q", os.Getenv("RATE_BURST"))
	}
	if cfg.StrictContent, err = strconv.ParseBool(getEnv("STRICT_CONTENT", "false")); err != nil {
		return nil, fmt.Errorf("invalid STRICT_CONTENT %q: %w", os.Getenv("STRICT_CONTENT"), err)
	}
	if cfg.TrustProxy, err = strconv.ParseBool(getEnv("TRUST_PROXY", "false")); err != nil {
		return nil, fmt.Errorf("invalid TRUST_PROXY %q: %w", os.Getenv("TRUST_PROXY"), err)
	}
	if cfg.ContentDir == "" {
		return nil, fmt.Errorf("CONTENT_DIR is empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
