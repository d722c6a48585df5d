package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultPort                 = "8080"
	defaultCurrencySymbol       = "₦"
	defaultDepositSurcharge     = "50"
	defaultSessionIdleTimeout   = 12 * time.Hour
	defaultSessionSweepInterval = 10 * time.Minute
	defaultRateLimit            = "300-M"
	defaultUploadRateLimit      = "30-M"
	defaultMaxUploadBytes       = 10 << 20
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	CurrencySymbol   string
	DepositSurcharge decimal.Decimal

	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration

	RateLimit          string
	UploadRateLimit    string
	CORSAllowedOrigins []string
	MaxUploadBytes     int64

	// PDFFontPath points at a UTF-8 TrueType font. Empty means the built-in core font,
	// which cannot draw the Naira sign, so amounts fall back to the currency code.
	PDFFontPath string
}

// LoadConfig loads configuration from environment variables, a .env file and an optional
// YAML file named by CONFIG_FILE. Environment variables win over the file.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CURRENCY_SYMBOL", defaultCurrencySymbol)
	v.SetDefault("DEPOSIT_SURCHARGE", defaultDepositSurcharge)
	v.SetDefault("SESSION_IDLE_TIMEOUT", defaultSessionIdleTimeout.String())
	v.SetDefault("SESSION_SWEEP_INTERVAL", defaultSessionSweepInterval.String())
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("UPLOAD_RATE_LIMIT", defaultUploadRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	v.SetDefault("PDF_FONT_PATH", "")

	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		CurrencySymbol:  v.GetString("CURRENCY_SYMBOL"),
		RateLimit:       v.GetString("RATE_LIMIT"),
		UploadRateLimit: v.GetString("UPLOAD_RATE_LIMIT"),
		PDFFontPath:     v.GetString("PDF_FONT_PATH"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = defaultCurrencySymbol
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	surcharge, err := decimal.NewFromString(v.GetString("DEPOSIT_SURCHARGE"))
	if err != nil || surcharge.IsNegative() {
		return nil, fmt.Errorf("invalid DEPOSIT_SURCHARGE %q: must be a non-negative amount", v.GetString("DEPOSIT_SURCHARGE"))
	}
	cfg.DepositSurcharge = surcharge

	cfg.SessionIdleTimeout = durationOrDefault(v, "SESSION_IDLE_TIMEOUT", defaultSessionIdleTimeout)
	cfg.SessionSweepInterval = durationOrDefault(v, "SESSION_SWEEP_INTERVAL", defaultSessionSweepInterval)

	cfg.MaxUploadBytes = v.GetInt64("MAX_UPLOAD_BYTES")
	if cfg.MaxUploadBytes <= 0 {
		log.Printf("Warning: MAX_UPLOAD_BYTES must be positive. Defaulting to %d.\n", defaultMaxUploadBytes)
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		return fallback
	}
	return d
}
