package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	CORS   CORSConfig
	OCR    OCRConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OCRConfig holds text extraction settings: paths to the poppler and
// tesseract binaries and the OCR fallback policy for scanned PDFs.
type OCRConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Pdftotext string `mapstructure:"pdftotext"`
	Pdftoppm  string `mapstructure:"pdftoppm"`
	Tesseract string `mapstructure:"tesseract"`
	DPI       int    `mapstructure:"dpi"`
	MaxPages  int    `mapstructure:"max_pages"`
}

// Load reads configuration from environment variables with the PADV_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PADV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// OCR defaults
	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.pdftotext", "pdftotext")
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.max_pages", 20)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "PADV_SERVER_PORT",
		"server.read_timeout":  "PADV_SERVER_READ_TIMEOUT",
		"server.write_timeout": "PADV_SERVER_WRITE_TIMEOUT",
		"server.environment":   "PADV_SERVER_ENVIRONMENT",
		"log.level":            "PADV_LOG_LEVEL",
		"log.format":           "PADV_LOG_FORMAT",
		"cors.allowed_origins": "PADV_CORS_ALLOWED_ORIGINS",
		"ocr.enabled":          "PADV_OCR_ENABLED",
		"ocr.pdftotext":        "PADV_OCR_PDFTOTEXT",
		"ocr.pdftoppm":         "PADV_OCR_PDFTOPPM",
		"ocr.tesseract":        "PADV_OCR_TESSERACT",
		"ocr.dpi":              "PADV_OCR_DPI",
		"ocr.max_pages":        "PADV_OCR_MAX_PAGES",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The comma-separated origins string needs manual splitting; viper only
	// splits slices from real config files.
	if raw := v.GetString("cors.allowed_origins"); raw != "" {
		cfg.CORS.AllowedOrigins = strings.Split(raw, ",")
		for i := range cfg.CORS.AllowedOrigins {
			cfg.CORS.AllowedOrigins[i] = strings.TrimSpace(cfg.CORS.AllowedOrigins[i])
		}
	}

	return &cfg, nil
}
