package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/docmodel"
	"github.com/dgallion1/slidegest/internal/engine"
	"github.com/dgallion1/slidegest/internal/loader"
	"github.com/dgallion1/slidegest/internal/manifest"
)

type reverseRequest struct {
	SessionID string         `json:"session_id,omitempty"`
	Deck      deckmodel.Deck `json:"deck"`

	// Config overrides the server defaults when present.
	Config *config.Config `json:"config,omitempty"`

	// Output selects the response body: "json" (default) for the
	// document model, "docx" for a rendered package.
	Output string `json:"output,omitempty"`
}

type reverseResponse struct {
	RunID     string             `json:"run_id"`
	SessionID string             `json:"session_id"`
	Document  *docmodel.Document `json:"document"`
	Warnings  []docmodel.Warning `json:"warnings,omitempty"`
}

func (s *Server) handleReverse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req reverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Output != "" && req.Output != "json" && req.Output != "docx" {
		jsonError(w, fmt.Sprintf("unknown output %q", req.Output), http.StatusBadRequest)
		return
	}

	cfg := s.cfg.Defaults
	if req.Config != nil {
		cfg = *req.Config
	}
	if err := cfg.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rc := engine.NewRunContext(req.SessionID, cfg, s.log)
	if err := s.runs.Begin(manifest.Run{
		RunID:     rc.RunID,
		SessionID: rc.SessionID,
		Direction: manifest.DirectionReverse,
		Input:     req.Deck.Template.Name,
		Config:    cfg,
	}); err != nil {
		s.log.Error("recording run", "run_id", rc.RunID, "error", err)
	}

	doc, warnings, err := engine.Reverse(r.Context(), rc, &req.Deck, cfg)
	if err != nil {
		if ferr := s.runs.Fail(rc.RunID, err); ferr != nil {
			s.log.Error("recording run failure", "run_id", rc.RunID, "error", ferr)
		}
		jsonError(w, err.Error(), statusForError(err))
		return
	}
	if cerr := s.runs.Complete(rc.RunID, len(req.Deck.Slides), len(warnings)); cerr != nil {
		s.log.Error("recording run completion", "run_id", rc.RunID, "error", cerr)
	}

	if req.Output == "docx" {
		var buf bytes.Buffer
		if err := loader.WriteDocx(doc, &buf); err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		w.Header().Set("Content-Disposition", `attachment; filename="`+rc.RunID+`.docx"`)
		w.Header().Set("X-Run-ID", rc.RunID)
		w.Header().Set("X-Warning-Count", fmt.Sprint(len(warnings)))
		w.Write(buf.Bytes())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reverseResponse{
		RunID:     rc.RunID,
		SessionID: rc.SessionID,
		Document:  doc,
		Warnings:  warnings,
	})
}
