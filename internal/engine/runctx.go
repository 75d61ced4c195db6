package engine

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/slidegest/internal/config"
)

// RunContext is the per-call mutable state of one conversion: run and
// session identifiers, the config snapshot taken at call start, and the
// current run state. It replaces any process-wide defaults; every
// engine call receives one explicitly.
type RunContext struct {
	SessionID string
	RunID     string

	Config    config.Config
	StartedAt time.Time

	state State
	log   *slog.Logger
}

// NewRunContext creates a run context under the given session. An empty
// sessionID starts a new session.
func NewRunContext(sessionID string, cfg config.Config, log *slog.Logger) *RunContext {
	if sessionID == "" {
		sessionID = newID()
	}
	if log == nil {
		log = slog.Default()
	}
	rc := &RunContext{
		SessionID: sessionID,
		RunID:     newID(),
		Config:    cfg,
		StartedAt: time.Now(),
		state:     StateIdle,
	}
	rc.log = log.With("session_id", rc.SessionID, "run_id", rc.RunID)
	return rc
}

// newID returns a short identifier: the first 8 hex digits of a v4
// UUID.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// State returns the current run state.
func (rc *RunContext) State() State {
	return rc.state
}

// Logger returns the context logger, tagged with the session and run
// identifiers.
func (rc *RunContext) Logger() *slog.Logger {
	return rc.log
}

func (rc *RunContext) setState(s State) {
	rc.log.Debug("run state change", "from", rc.state, "to", s)
	rc.state = s
}
