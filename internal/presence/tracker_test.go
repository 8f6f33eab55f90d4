package presence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type beatRecord struct {
	sessionID string
	status    Status
}

type fakeBeater struct {
	mu     sync.Mutex
	beats  []beatRecord
	leaves []string
	token  int
	err    error
}

func (f *fakeBeater) Heartbeat(ctx context.Context, pc Context, userID uuid.UUID, sessionID string, status Status) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.beats = append(f.beats, beatRecord{sessionID: sessionID, status: status})
	f.token++
	return uuid.NewString(), nil
}

func (f *fakeBeater) Leave(ctx context.Context, pc Context, sessionToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leaves = append(f.leaves, sessionToken)
	return f.err
}

func (f *fakeBeater) beatCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.beats)
}

func (f *fakeBeater) lastStatus() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.beats) == 0 {
		return ""
	}
	return f.beats[len(f.beats)-1].status
}

func (f *fakeBeater) leaveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.leaves)
}

func newTestTracker(beater Beater) *Tracker {
	tr := NewTracker(beater, GlobalContext(), uuid.New(), zap.NewNop())
	tr.Interval = 10 * time.Millisecond
	tr.TypingClear = 30 * time.Millisecond
	return tr
}

func TestTracker_AnnouncesImmediatelyOnStart(t *testing.T) {
	beater := &fakeBeater{}
	tracker := newTestTracker(beater)

	tracker.Start(context.Background())
	defer tracker.Stop()

	assert.Equal(t, 1, beater.beatCount())
	assert.Equal(t, StatusActive, beater.lastStatus())
}

func TestTracker_HeartbeatsOnInterval(t *testing.T) {
	beater := &fakeBeater{}
	tracker := newTestTracker(beater)

	tracker.Start(context.Background())
	defer tracker.Stop()

	require.Eventually(t, func() bool {
		return beater.beatCount() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestTracker_StopSendsLeave(t *testing.T) {
	beater := &fakeBeater{}
	tracker := newTestTracker(beater)

	tracker.Start(context.Background())
	tracker.Stop()

	assert.Equal(t, 1, beater.leaveCount())

	before := beater.beatCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, beater.beatCount())
}

func TestTracker_StopIsIdempotent(t *testing.T) {
	beater := &fakeBeater{}
	tracker := newTestTracker(beater)

	tracker.Start(context.Background())
	tracker.Stop()
	tracker.Stop()

	assert.Equal(t, 1, beater.leaveCount())
}

func TestTracker_StopWithoutTokenSkipsLeave(t *testing.T) {
	// Every heartbeat fails, so no session token was ever issued and a
	// leave has nothing to revoke.
	beater := &fakeBeater{err: context.DeadlineExceeded}
	tracker := newTestTracker(beater)

	tracker.Start(context.Background())
	tracker.Stop()

	assert.Equal(t, 0, beater.leaveCount())
}

func TestTracker_TypingBeatsImmediatelyAndAutoClears(t *testing.T) {
	beater := &fakeBeater{}
	tracker := newTestTracker(beater)
	tracker.Interval = time.Hour // isolate typing beats from the ticker

	tracker.Start(context.Background())
	defer tracker.Stop()

	tracker.SetTyping(true)
	assert.True(t, tracker.Typing())
	assert.Equal(t, StatusTyping, beater.lastStatus())

	require.Eventually(t, func() bool {
		return !tracker.Typing() && beater.lastStatus() == StatusActive
	}, time.Second, 5*time.Millisecond)
}

func TestTracker_ExplicitTypingStop(t *testing.T) {
	beater := &fakeBeater{}
	tracker := newTestTracker(beater)
	tracker.Interval = time.Hour

	tracker.Start(context.Background())
	defer tracker.Stop()

	tracker.SetTyping(true)
	tracker.SetTyping(false)

	assert.False(t, tracker.Typing())
	assert.Equal(t, StatusActive, beater.lastStatus())
}

func TestTracker_SetTypingBeforeStartIsIgnored(t *testing.T) {
	beater := &fakeBeater{}
	tracker := newTestTracker(beater)

	tracker.SetTyping(true)

	assert.False(t, tracker.Typing())
	assert.Equal(t, 0, beater.beatCount())
}

func TestTracker_HeartbeatFailuresAreSwallowed(t *testing.T) {
	beater := &fakeBeater{err: context.DeadlineExceeded}
	tracker := newTestTracker(beater)

	tracker.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	tracker.Stop()
	// No panic and no propagated error is the assertion here
}
