package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds the HTTP front end's settings plus the engine
// defaults applied when a request omits a field.
type ServerConfig struct {
	Port string

	// Auth
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Run manifest database
	ManifestDBPath string

	// Engine defaults for requests that don't override them.
	Defaults Config
}

// LoadServer reads server configuration from the environment, loading a
// local .env file first if present.
func LoadServer() ServerConfig {
	_ = godotenv.Load()

	cfg := ServerConfig{
		Port:           envOr("PORT", "8091"),
		APIKey:         os.Getenv("SLIDEGEST_API_KEY"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
		ManifestDBPath: envOr("MANIFEST_DB_PATH", "slidegest-runs.db"),
		Defaults:       Default(),
	}

	cfg.Defaults.ChunkType = ChunkType(envOr("DEFAULT_CHUNK_TYPE", string(ChunkParagraph)))
	cfg.Defaults.HeadingNestLevel = envInt("DEFAULT_HEADING_NEST_LEVEL", 0)
	cfg.Defaults.ExperimentalFormattingOn = envBool("EXPERIMENTAL_FORMATTING_ON", true)
	cfg.Defaults.DisplayComments = envBool("DISPLAY_COMMENTS", false)
	cfg.Defaults.DisplayFootnotes = envBool("DISPLAY_FOOTNOTES", false)
	cfg.Defaults.DisplayEndnotes = envBool("DISPLAY_ENDNOTES", false)
	cfg.Defaults.DisplayAnnotationMetadata = envBool("DISPLAY_ANNOTATION_METADATA", false)
	cfg.Defaults.PreserveMetadataInSpeakerNotes = envBool("PRESERVE_METADATA_IN_SPEAKER_NOTES", false)

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}

	return cfg
}

// Validate checks the server configuration, including the engine
// defaults it will hand to conversion calls.
func (c ServerConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("SLIDEGEST_API_KEY is required")
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("default engine config: %w", err)
	}
	return nil
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
