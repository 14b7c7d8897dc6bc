// Package chat runs the assistant conversation and forwards the entity pair
// a reply suggests to the comparison store.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/statcompare/internal/observe"
	"github.com/sells-group/statcompare/pkg/statsapi"
)

// DefaultErrorNotice replaces the reply when a turn fails.
const DefaultErrorNotice = "Error: Could not get response from server"

const defaultTypingInterval = 500 * time.Millisecond

var (
	// ErrEmptyMessage is returned for blank input. The session is unchanged.
	ErrEmptyMessage = statsapi.NewValidationError("message", eris.New("chat: message is empty"))
	// ErrTurnInFlight is returned while another turn is being sent.
	ErrTurnInFlight = eris.New("chat: turn already in flight")
)

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the append-only history.
type Message struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
	// Failed marks the synthetic notice appended for a failed turn.
	Failed bool `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// State is the session lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
	StateFailed  State = "failed"
)

// Event is published after a message is appended or the state changes.
type Event struct {
	State   State
	Message *Message
}

// PairSelector receives the pair an assistant reply points at.
type PairSelector interface {
	SetPair(ctx context.Context, a, b statsapi.EntityID)
}

// Option configures a Session.
type Option func(*Session)

// WithTypingInterval sets the typing indicator tick.
func WithTypingInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.typingInterval = d
		}
	}
}

// WithErrorNotice overrides the assistant message shown for failed turns.
func WithErrorNotice(notice string) Option {
	return func(s *Session) {
		if notice != "" {
			s.errorNotice = notice
		}
	}
}

// WithTypingListener is called with the indicator text on every tick.
func WithTypingListener(fn func(string)) Option {
	return func(s *Session) {
		s.onTyping = fn
	}
}

// WithObserver subscribes fn to session events.
func WithObserver(fn func(Event)) Option {
	return func(s *Session) {
		s.hub.Subscribe(fn)
	}
}

// Session is one conversation. At most one turn is in flight at a time.
type Session struct {
	client         statsapi.Client
	selector       PairSelector
	typingInterval time.Duration
	errorNotice    string
	onTyping       func(string)

	mu       sync.Mutex
	history  []Message
	threadID string
	state    State
	dots     int
	hub      observe.Hub[Event]
}

// NewSession creates an idle session. selector may be nil.
func NewSession(client statsapi.Client, selector PairSelector, opts ...Option) *Session {
	s := &Session{
		client:         client,
		selector:       selector,
		typingInterval: defaultTypingInterval,
		errorNotice:    DefaultErrorNotice,
		state:          StateIdle,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Send runs one turn and blocks until it settles. A failed turn is recorded
// as an assistant notice and is not returned as an error.
func (s *Session) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.state == StateSending {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	user := Message{Role: RoleUser, Content: text}
	s.history = append(s.history, user)
	s.state = StateSending
	s.dots = 0
	threadID := s.threadID
	s.hub.Publish(Event{State: StateSending, Message: &user})
	s.mu.Unlock()
	s.hub.Flush()

	stop := s.startTyping()
	reply, err := s.client.ChatTurn(ctx, statsapi.ChatRequest{Message: text, ThreadID: threadID})
	stop()

	if err == nil && reply == nil {
		err = eris.New("chat: empty reply")
	}
	if err != nil {
		s.fail(err)
		return nil
	}

	s.mu.Lock()
	if s.threadID == "" && reply.ThreadID != "" {
		s.threadID = reply.ThreadID
	} else if reply.ThreadID != "" && reply.ThreadID != s.threadID {
		zap.L().Warn("chat: ignoring thread change",
			zap.String("thread_id", s.threadID),
			zap.String("reply_thread_id", reply.ThreadID),
		)
	}
	answer := Message{Role: RoleAssistant, Content: reply.Response}
	s.history = append(s.history, answer)
	s.state = StateIdle
	s.hub.Publish(Event{State: StateIdle, Message: &answer})
	s.mu.Unlock()
	s.hub.Flush()

	if a, b, ok := reply.RelevantPair(); ok && s.selector != nil {
		zap.L().Info("chat: selecting suggested pair",
			zap.String("a", string(a)),
			zap.String("b", string(b)),
		)
		// The views outlive this turn; cancelling the turn must not fail them.
		s.selector.SetPair(context.WithoutCancel(ctx), a, b)
	}
	return nil
}

func (s *Session) fail(err error) {
	zap.L().Warn("chat: turn failed", zap.Error(err))

	s.mu.Lock()
	notice := Message{Role: RoleAssistant, Content: s.errorNotice, Failed: true}
	s.history = append(s.history, notice)
	s.state = StateFailed
	s.hub.Publish(Event{State: StateFailed, Message: &notice})
	s.state = StateIdle
	s.hub.Publish(Event{State: StateIdle})
	s.mu.Unlock()
	s.hub.Flush()
}

// History returns a copy of the message history in send order.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// ThreadID returns the conversation thread, empty until the first reply assigns one.
func (s *Session) ThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threadID
}

// State returns the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for session events.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}
