package presence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultHeartbeatInterval is the steady-state heartbeat cadence.
	DefaultHeartbeatInterval = 30 * time.Second

	// DefaultTypingClear is how long a typing status survives without
	// another keystroke before it falls back to active.
	DefaultTypingClear = 3 * time.Second
)

// Beater is the slice of the presence store a Tracker needs.
type Beater interface {
	Heartbeat(ctx context.Context, pc Context, userID uuid.UUID, sessionID string, status Status) (string, error)
	Leave(ctx context.Context, pc Context, sessionToken string) error
}

// Tracker keeps one session announced in one context for as long as it runs:
// it heartbeats immediately on Start, then on a fixed cadence, and sends one
// best-effort leave on Stop. Typing is an orthogonal overlay that fires an
// immediate heartbeat and auto-clears after a short idle window.
//
// Heartbeat and leave failures are logged and never propagated; the next
// scheduled heartbeat is the de facto retry.
type Tracker struct {
	beater    Beater
	pc        Context
	userID    uuid.UUID
	sessionID string
	logger    *zap.Logger

	// Interval and TypingClear may be overridden before Start.
	Interval    time.Duration
	TypingClear time.Duration

	mu          sync.Mutex
	typing      bool
	token       string
	typingTimer *time.Timer
	cancel      context.CancelFunc
	done        chan struct{}
	started     bool
}

func NewTracker(beater Beater, pc Context, userID uuid.UUID, logger *zap.Logger) *Tracker {
	return &Tracker{
		beater:      beater,
		pc:          pc,
		userID:      userID,
		sessionID:   uuid.NewString(),
		logger:      logger,
		Interval:    DefaultHeartbeatInterval,
		TypingClear: DefaultTypingClear,
	}
}

// SessionID returns the session identifier this tracker announces under
func (t *Tracker) SessionID() string {
	return t.sessionID
}

// Start announces the session immediately and begins the heartbeat loop.
// It returns once the first heartbeat has been attempted.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.mu.Unlock()

	t.beat(runCtx)

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				t.beat(runCtx)
			}
		}
	}()
}

// Stop cancels the heartbeat loop and sends one best-effort leave so the
// session does not linger until TTL expiry. Safe to call more than once.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	cancel := t.cancel
	done := t.done
	token := t.token
	if t.typingTimer != nil {
		t.typingTimer.Stop()
		t.typingTimer = nil
	}
	t.mu.Unlock()

	cancel()
	<-done

	if token == "" {
		return
	}
	ctx, cancelLeave := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelLeave()
	if err := t.beater.Leave(ctx, t.pc, token); err != nil {
		t.logger.Warn("presence leave failed, relying on TTL expiry",
			zap.String("sessionId", t.sessionID),
			zap.String("context", t.pc.Key()),
			zap.Error(err))
	}
}

// SetTyping updates the typing overlay and fires an immediate heartbeat.
// Typing auto-clears after TypingClear of inactivity.
func (t *Tracker) SetTyping(isTyping bool) {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.typing = isTyping
	if t.typingTimer != nil {
		t.typingTimer.Stop()
		t.typingTimer = nil
	}
	if isTyping {
		t.typingTimer = time.AfterFunc(t.TypingClear, t.clearTyping)
	}
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	t.beat(ctx)
}

// Typing reports the current typing overlay
func (t *Tracker) Typing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.typing
}

func (t *Tracker) clearTyping() {
	t.mu.Lock()
	if !t.typing || !t.started {
		t.mu.Unlock()
		return
	}
	t.typing = false
	t.typingTimer = nil
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	t.beat(ctx)
}

func (t *Tracker) beat(ctx context.Context) {
	t.mu.Lock()
	status := StatusActive
	if t.typing {
		status = StatusTyping
	}
	t.mu.Unlock()

	token, err := t.beater.Heartbeat(ctx, t.pc, t.userID, t.sessionID, status)
	if err != nil {
		t.logger.Warn("presence heartbeat failed",
			zap.String("sessionId", t.sessionID),
			zap.String("context", t.pc.Key()),
			zap.Error(err))
		return
	}

	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}
