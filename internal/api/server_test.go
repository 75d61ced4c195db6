package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/manifest"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	runs, err := manifest.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	t.Cleanup(func() { runs.Close() })

	cfg := config.ServerConfig{
		Port:           "0",
		APIKey:         testAPIKey,
		MaxUploadBytes: 1 << 20,
		Defaults:       config.Default(),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(runs, log, cfg)
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	return req
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	io.WriteString(fw, content)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealthNoAuth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/api/runs", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing auth: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/runs", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad key: status %d", rec.Code)
	}
}

func TestConvertMarkdown(t *testing.T) {
	s := newTestServer(t)

	body, ctype := multipartUpload(t, "notes.md",
		"# Title\n\nfirst paragraph\n\nsecond paragraph\n",
		map[string]string{"chunk_type": "paragraph"})
	req := authed(httptest.NewRequest("POST", "/api/convert", body))
	req.Header.Set("Content-Type", ctype)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp convertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunID == "" || resp.SessionID == "" {
		t.Errorf("missing identifiers: %+v", resp)
	}
	if len(resp.Deck.Slides) != 3 {
		t.Errorf("expected 3 slides, got %d", len(resp.Deck.Slides))
	}

	// The run should be listed as successful.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, authed(httptest.NewRequest("GET", "/api/runs", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("list runs: status %d", rec.Code)
	}
	var list struct {
		Runs []manifest.Run `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(list.Runs) != 1 || list.Runs[0].Status != manifest.StatusSuccess {
		t.Errorf("run not recorded: %+v", list.Runs)
	}
	if list.Runs[0].Slides != 3 {
		t.Errorf("slide count not recorded: %+v", list.Runs[0])
	}
}

func TestConvertUnsupportedType(t *testing.T) {
	s := newTestServer(t)

	body, ctype := multipartUpload(t, "image.png", "not a document", nil)
	req := authed(httptest.NewRequest("POST", "/api/convert", body))
	req.Header.Set("Content-Type", ctype)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestConvertInvalidConfig(t *testing.T) {
	s := newTestServer(t)

	body, ctype := multipartUpload(t, "notes.md", "hello\n",
		map[string]string{"chunk_type": "bogus"})
	req := authed(httptest.NewRequest("POST", "/api/convert", body))
	req.Header.Set("Content-Type", ctype)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
}

func testDeck() deckmodel.Deck {
	return deckmodel.Deck{
		Template: deckmodel.DefaultTemplate(),
		Slides: []deckmodel.Slide{
			{Body: []deckmodel.TextPara{
				{Runs: []deckmodel.TextRun{{Text: "slide one text"}}},
			}},
		},
	}
}

func TestReverseJSON(t *testing.T) {
	s := newTestServer(t)

	payload, _ := json.Marshal(reverseRequest{Deck: testDeck()})
	req := authed(httptest.NewRequest("POST", "/api/reverse", bytes.NewReader(payload)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp reverseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Document.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(resp.Document.Paragraphs))
	}
	if got := resp.Document.Paragraphs[0].Text(); got != "slide one text" {
		t.Errorf("paragraph text: %q", got)
	}
}

func TestReverseDocxOutput(t *testing.T) {
	s := newTestServer(t)

	payload, _ := json.Marshal(reverseRequest{Deck: testDeck(), Output: "docx"})
	req := authed(httptest.NewRequest("POST", "/api/reverse", bytes.NewReader(payload)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Errorf("body is not a zip package")
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), ".docx") {
		t.Errorf("missing attachment header: %q", rec.Header().Get("Content-Disposition"))
	}
}

func TestReverseEmptyDeck(t *testing.T) {
	s := newTestServer(t)

	payload, _ := json.Marshal(reverseRequest{Deck: deckmodel.Deck{}})
	req := authed(httptest.NewRequest("POST", "/api/reverse", bytes.NewReader(payload)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authed(httptest.NewRequest("GET", "/api/runs/nope", nil)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}
