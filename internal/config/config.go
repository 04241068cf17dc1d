package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/orgnav/internal/outline"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Heading detection
	HeadingMode   string
	HeadingMarker string
	IndentWidth   int

	// Request limits
	MaxUploadBytes int64
	MaxLines       int

	// PDF
	PDFFallbackPdftotext bool

	LogLevel string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("ORGNAV_API_KEY"),

		HeadingMode:   envOr("HEADING_MODE", string(outline.ModeStrict)),
		HeadingMarker: envOr("HEADING_MARKER", string(outline.DefaultMarker)),
		IndentWidth:   envInt("INDENT_WIDTH", 1),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10<<20), // 10MB
		MaxLines:       envInt("MAX_LINES", 200000),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		LogLevel: envOr("LOG_LEVEL", "info"),
	}

	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = 1
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = 200000
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := outline.ParseMode(c.HeadingMode); err != nil {
		return fmt.Errorf("HEADING_MODE: %w", err)
	}
	if utf8.RuneCountInString(c.HeadingMarker) != 1 {
		return fmt.Errorf("HEADING_MARKER must be a single character, got %q", c.HeadingMarker)
	}
	if strings.TrimSpace(c.HeadingMarker) == "" {
		return fmt.Errorf("HEADING_MARKER must not be whitespace")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// Outline returns the heading detection settings. Call Validate first;
// invalid values fall back to the defaults.
func (c Config) Outline() outline.Options {
	opts := outline.DefaultOptions()
	if mode, err := outline.ParseMode(c.HeadingMode); err == nil {
		opts.Mode = mode
	}
	if r, size := utf8.DecodeRuneInString(c.HeadingMarker); size > 0 && r != utf8.RuneError {
		opts.Marker = r
	}
	if c.IndentWidth > 0 {
		opts.IndentWidth = c.IndentWidth
	}
	return opts
}

// ParseLevel maps a LOG_LEVEL value onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
