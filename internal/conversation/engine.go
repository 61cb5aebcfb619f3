// Package conversation hosts the editing session around the interpreter:
// it owns the per-session state the validator checks against, applies the
// transitions executed commands imply, and records the turn history. The
// interpreter core never imports this package; state crosses the boundary
// by value.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voxpost/internal/interpreter"
)

// Turn is one exchange in a session's history.
type Turn struct {
	ID      uuid.UUID
	Role    string // "user" or "assistant"
	Content string
	Command *interpreter.ParsedCommand // set on user turns
	At      time.Time
}

// Session is one content-editing conversation.
type Session struct {
	ID        uuid.UUID
	State     interpreter.State
	CreatedAt time.Time
	UpdatedAt time.Time
	Turns     []Turn
}

// Reply is what the engine answers with after handling an utterance.
type Reply struct {
	Text        string
	Command     interpreter.ParsedCommand
	Suggestions []string
	Executed    bool
}

// Engine drives sessions. Safe for concurrent use across sessions.
type Engine struct {
	parser *interpreter.Parser
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewEngine builds an engine over a configured parser.
func NewEngine(parser *interpreter.Parser, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		parser:   parser,
		logger:   logger,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// StartSession creates a fresh idle session and returns its ID.
func (e *Engine) StartSession() uuid.UUID {
	now := time.Now()
	s := &Session{
		ID:        uuid.New(),
		State:     interpreter.StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.mu.Lock()
	e.sessions[s.ID] = s
	e.mu.Unlock()
	e.logger.Debug("session started", zap.String("session", s.ID.String()))
	return s.ID
}

// Session returns a snapshot of a session's current record.
func (e *Engine) Session(id uuid.UUID) (Session, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.sessions[id]
	if !ok {
		return Session{}, false
	}
	snap := *s
	snap.Turns = append([]Turn(nil), s.Turns...)
	return snap, true
}

// Handle parses one utterance against a session, validates it against the
// session's state, applies the resulting transition, and records both
// turns. The only error is an unknown session ID; user input itself never
// fails.
func (e *Engine) Handle(ctx context.Context, id uuid.UUID, utterance string) (Reply, error) {
	cmd := e.parser.Parse(ctx, utterance)

	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		return Reply{}, fmt.Errorf("unknown session %s", id)
	}

	reply := Reply{Command: cmd}
	switch {
	case cmd.Type == interpreter.CommandUnknown:
		reply.Suggestions = e.parser.Suggestions(cmd)
		reply.Text = didNotCatch(reply.Suggestions)
	case !e.parser.CanExecute(cmd, s.State):
		reply.Text = e.parser.ExecutionError(cmd, s.State)
	default:
		s.State = transition(cmd.Type, s.State)
		reply.Executed = true
		reply.Text = acknowledge(cmd)
		e.logger.Debug("command executed",
			zap.String("session", id.String()),
			zap.String("command", string(cmd.Type)),
			zap.String("state", string(s.State)))
	}

	now := time.Now()
	s.Turns = append(s.Turns,
		Turn{ID: uuid.New(), Role: "user", Content: utterance, Command: &cmd, At: now},
		Turn{ID: uuid.New(), Role: "assistant", Content: reply.Text, At: now},
	)
	s.UpdatedAt = now
	return reply, nil
}

// CompleteGeneration is the callback the content generator invokes once a
// draft is ready; the session becomes editable.
func (e *Engine) CompleteGeneration(id uuid.UUID) error {
	return e.setState(id, interpreter.StateGenerating, interpreter.StateEditing)
}

// CompletePublish marks a publish as finished and returns the session to
// idle.
func (e *Engine) CompletePublish(id uuid.UUID) error {
	return e.setState(id, interpreter.StatePublishing, interpreter.StateIdle)
}

func (e *Engine) setState(id uuid.UUID, from, to interpreter.State) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		return fmt.Errorf("unknown session %s", id)
	}
	if s.State != from {
		return fmt.Errorf("session %s is %s, not %s", id, s.State, from)
	}
	s.State = to
	s.UpdatedAt = time.Now()
	return nil
}

// transition maps an executed command to the session's next state. Draft
// mutations keep the session in editing.
func transition(t interpreter.CommandType, current interpreter.State) interpreter.State {
	switch t {
	case interpreter.CommandGenerate:
		return interpreter.StateGenerating
	case interpreter.CommandPublish:
		return interpreter.StatePublishing
	case interpreter.CommandApprove, interpreter.CommandCancel:
		return interpreter.StateIdle
	default:
		return current
	}
}

func acknowledge(cmd interpreter.ParsedCommand) string {
	switch cmd.Type {
	case interpreter.CommandGenerate:
		return "On it, drafting your post now."
	case interpreter.CommandPublish:
		return "Publishing it now."
	case interpreter.CommandApprove:
		return "Great, I'll keep it as is."
	case interpreter.CommandCancel:
		return "Okay, scrapping that."
	case interpreter.CommandTranslate:
		if cmd.Params != nil && cmd.Params.Language != "" {
			return "Translating to " + cmd.Params.Language + "."
		}
		return "Translating it."
	case interpreter.CommandChangeTone:
		if cmd.Params != nil && cmd.Params.Tone != "" {
			return "Making it sound " + cmd.Params.Tone + "."
		}
		return "Adjusting the tone."
	default:
		return "Working on that edit."
	}
}

func didNotCatch(suggestions []string) string {
	if len(suggestions) == 0 {
		return "I didn't quite catch that."
	}
	return "I didn't quite catch that. Did you mean: " + strings.Join(suggestions, ", ") + "?"
}
