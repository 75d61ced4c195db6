package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/docmodel"
	"github.com/dgallion1/slidegest/internal/engine"
	"github.com/dgallion1/slidegest/internal/loader"
	"github.com/dgallion1/slidegest/internal/manifest"
)

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !loader.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	cfg := configFromForm(r, s.cfg.Defaults)
	if err := cfg.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ld, err := loader.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := ld.Load(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "parsing "+filename+": "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	tmpl := templateFromForm(r)

	rc := engine.NewRunContext(r.FormValue("session_id"), cfg, s.log)
	if err := s.runs.Begin(manifest.Run{
		RunID:     rc.RunID,
		SessionID: rc.SessionID,
		Direction: manifest.DirectionConvert,
		Input:     filename,
		Config:    cfg,
	}); err != nil {
		s.log.Error("recording run", "run_id", rc.RunID, "error", err)
	}

	deck, warnings, err := engine.Convert(r.Context(), rc, doc, tmpl, cfg)
	if err != nil {
		if ferr := s.runs.Fail(rc.RunID, err); ferr != nil {
			s.log.Error("recording run failure", "run_id", rc.RunID, "error", ferr)
		}
		jsonError(w, err.Error(), statusForError(err))
		return
	}
	if cerr := s.runs.Complete(rc.RunID, len(deck.Slides), len(warnings)); cerr != nil {
		s.log.Error("recording run completion", "run_id", rc.RunID, "error", cerr)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(convertResponse{
		RunID:     rc.RunID,
		SessionID: rc.SessionID,
		Deck:      deck,
		Warnings:  warnings,
	})
}

type convertResponse struct {
	RunID     string             `json:"run_id"`
	SessionID string             `json:"session_id"`
	Deck      *deckmodel.Deck    `json:"deck"`
	Warnings  []docmodel.Warning `json:"warnings,omitempty"`
}

// configFromForm merges per-request overrides over the server defaults.
func configFromForm(r *http.Request, defaults config.Config) config.Config {
	cfg := defaults

	if v := r.FormValue("chunk_type"); v != "" {
		cfg.ChunkType = config.ChunkType(v)
	}
	if v := r.FormValue("heading_nest_level"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HeadingNestLevel = n
		}
	}
	if v := r.FormValue("range_start"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RangeStart = n
		}
	}
	if v := r.FormValue("range_end"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RangeEnd = n
		}
	}

	formBool(r, "experimental_formatting", &cfg.ExperimentalFormattingOn)
	formBool(r, "display_comments", &cfg.DisplayComments)
	formBool(r, "display_footnotes", &cfg.DisplayFootnotes)
	formBool(r, "display_endnotes", &cfg.DisplayEndnotes)
	formBool(r, "display_annotation_metadata", &cfg.DisplayAnnotationMetadata)
	formBool(r, "comments_sort_by_date", &cfg.CommentsSortByDate)
	formBool(r, "preserve_metadata", &cfg.PreserveMetadataInSpeakerNotes)

	return cfg
}

func formBool(r *http.Request, key string, dst *bool) {
	if v := r.FormValue(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// templateFromForm builds the destination template from request fields,
// falling back to the built-in skeleton.
func templateFromForm(r *http.Request) deckmodel.Template {
	layouts := r.FormValue("template_layouts")
	if layouts == "" {
		return deckmodel.DefaultTemplate()
	}
	tmpl := deckmodel.Template{Name: r.FormValue("template_name")}
	for _, name := range strings.Split(layouts, ",") {
		if name = strings.TrimSpace(name); name != "" {
			tmpl.LayoutNames = append(tmpl.LayoutNames, name)
		}
	}
	return tmpl
}

// statusForError maps engine sentinels onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, engine.ErrInputValidation):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrTemplateValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrConversion):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
