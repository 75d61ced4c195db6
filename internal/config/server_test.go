package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("SLIDEGEST_API_KEY", "k")

	cfg := LoadServer()
	if cfg.Port != "8091" {
		t.Errorf("port: %q", cfg.Port)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("max upload: %d", cfg.MaxUploadBytes)
	}
	if cfg.Defaults.ChunkType != ChunkParagraph {
		t.Errorf("default chunk type: %q", cfg.Defaults.ChunkType)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("SLIDEGEST_API_KEY", "k")
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_CHUNK_TYPE", "heading_flat")
	t.Setenv("DISPLAY_COMMENTS", "true")

	cfg := LoadServer()
	if cfg.Port != "9000" {
		t.Errorf("port: %q", cfg.Port)
	}
	if cfg.Defaults.ChunkType != ChunkHeadingFlat {
		t.Errorf("chunk type: %q", cfg.Defaults.ChunkType)
	}
	if !cfg.Defaults.DisplayComments {
		t.Errorf("display comments not read")
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := ServerConfig{Defaults: Default()}
	if err := cfg.Validate(); err == nil {
		t.Errorf("missing api key should fail")
	}
}
