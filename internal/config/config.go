package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
)

type Config struct {
	Addr         string
	DataDir      string
	APIURL       string
	InferenceURL string
	ProductsURL  string
	HTTPTimeout  time.Duration
	SessionTTL   time.Duration
	LogLevel     string
	LogFormat    string
	CookieSecure bool
}

// fileConfig is the optional JSON config file. Every key may be omitted.
type fileConfig struct {
	Addr         string `json:"addr"`
	DataDir      string `json:"data_dir"`
	APIURL       string `json:"api_url"`
	InferenceURL string `json:"inference_url"`
	ProductsURL  string `json:"products_url"`
	HTTPTimeout  string `json:"http_timeout"`
	SessionTTL   string `json:"session_ttl"`
	LogLevel     string `json:"log_level"`
	LogFormat    string `json:"log_format"`
	CookieSecure *bool  `json:"cookie_secure"`
}

func Default() Config {
	return Config{
		Addr:         ":8080",
		DataDir:      "data",
		APIURL:       "http://localhost:5000",
		InferenceURL: "http://localhost:5000",
		ProductsURL:  "https://world.openfoodfacts.org",
		HTTPTimeout:  30 * time.Second,
		SessionTTL:   7 * 24 * time.Hour,
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Load builds the configuration from defaults, then the JSON file at path (a
// missing file is not an error), then DIAMETRICS_* environment variables,
// then non-empty flag values.
func Load(path, flagAddr, flagDataDir string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Addr = getEnv("DIAMETRICS_ADDR", cfg.Addr)
	cfg.DataDir = getEnv("DIAMETRICS_DATA_DIR", cfg.DataDir)
	cfg.APIURL = getEnv("DIAMETRICS_API_URL", cfg.APIURL)
	cfg.InferenceURL = getEnv("DIAMETRICS_INFERENCE_URL", cfg.InferenceURL)
	cfg.ProductsURL = getEnv("DIAMETRICS_PRODUCTS_URL", cfg.ProductsURL)
	cfg.LogLevel = getEnv("DIAMETRICS_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("DIAMETRICS_LOG_FORMAT", cfg.LogFormat)
	cfg.CookieSecure = strings.EqualFold(getEnv("DIAMETRICS_COOKIE_SECURE", fmt.Sprint(cfg.CookieSecure)), "true")

	var err error
	if cfg.HTTPTimeout, err = getDuration("DIAMETRICS_HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getDuration("DIAMETRICS_SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}

	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var f fileConfig
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Addr, f.Addr)
	set(&c.DataDir, f.DataDir)
	set(&c.APIURL, f.APIURL)
	set(&c.InferenceURL, f.InferenceURL)
	set(&c.ProductsURL, f.ProductsURL)
	set(&c.LogLevel, f.LogLevel)
	set(&c.LogFormat, f.LogFormat)
	if f.CookieSecure != nil {
		c.CookieSecure = *f.CookieSecure
	}
	if f.HTTPTimeout != "" {
		if c.HTTPTimeout, err = time.ParseDuration(f.HTTPTimeout); err != nil {
			return fmt.Errorf("http_timeout: %w", err)
		}
	}
	if f.SessionTTL != "" {
		if c.SessionTTL, err = time.ParseDuration(f.SessionTTL); err != nil {
			return fmt.Errorf("session_ttl: %w", err)
		}
	}
	return nil
}
