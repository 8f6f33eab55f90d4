package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "presence:session:"
	contextKeyPrefix = "presence:ctx:"
	tokenKeyPrefix   = "presence:token:"
	contextIndexKey  = "presence:contexts"

	// DefaultTTL is how long a session survives without a heartbeat.
	// Clients heartbeat every 30s, so one missed beat is tolerated.
	DefaultTTL = 45 * time.Second
)

type Status string

const (
	StatusActive Status = "active"
	StatusIdle   Status = "idle"
	StatusTyping Status = "typing"
)

// ValidStatus reports whether s is a known presence status
func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusIdle || s == StatusTyping
}

// Entry is one live session in a context
type Entry struct {
	UserID    uuid.UUID `json:"userId"`
	SessionID string    `json:"sessionId"`
	Status    Status    `json:"status"`
	Context   Context   `json:"context"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Store keeps presence records in Redis under TTL keys.
// Each session holds one key; a per-context set indexes the sessions
// so a context can be listed without scanning.
type Store struct {
	redis  *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewStore(redisClient *redis.Client, logger *zap.Logger) *Store {
	return &Store{
		redis:  redisClient,
		logger: logger,
		ttl:    DefaultTTL,
	}
}

// SetTTL overrides the session expiry window
func (s *Store) SetTTL(ttl time.Duration) {
	s.ttl = ttl
}

// TTL returns the session expiry window
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Heartbeat records "this session is alive in this context with this status"
// and returns a renewed session token the caller must present to Leave.
func (s *Store) Heartbeat(ctx context.Context, pc Context, userID uuid.UUID, sessionID string, status Status) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}
	if !ValidStatus(status) {
		return "", fmt.Errorf("invalid presence status: %q", status)
	}

	entry := Entry{
		UserID:    userID,
		SessionID: sessionID,
		Status:    status,
		Context:   pc,
		LastSeen:  time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("failed to marshal presence entry: %w", err)
	}

	token := uuid.NewString()

	pipe := s.redis.Pipeline()
	pipe.Set(ctx, sessionKeyPrefix+sessionID, data, s.ttl)
	pipe.SAdd(ctx, contextKeyPrefix+pc.Key(), sessionID)
	pipe.Expire(ctx, contextKeyPrefix+pc.Key(), s.ttl*2)
	pipe.SAdd(ctx, contextIndexKey, pc.Key())
	pipe.Set(ctx, tokenKeyPrefix+token, sessionID, s.ttl*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to update presence: %w", err)
	}

	return token, nil
}

// Leave removes a session from a context ahead of its TTL expiry.
// The session token returned by Heartbeat authorizes the removal.
func (s *Store) Leave(ctx context.Context, pc Context, sessionToken string) error {
	sessionID, err := s.redis.Get(ctx, tokenKeyPrefix+sessionToken).Result()
	if err != nil {
		if err == redis.Nil {
			// Token already expired; TTL will clear the session anyway.
			return nil
		}
		return fmt.Errorf("failed to resolve session token: %w", err)
	}

	pipe := s.redis.Pipeline()
	pipe.Del(ctx, sessionKeyPrefix+sessionID)
	pipe.SRem(ctx, contextKeyPrefix+pc.Key(), sessionID)
	pipe.Del(ctx, tokenKeyPrefix+sessionToken)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove presence: %w", err)
	}

	s.logger.Debug("presence session left",
		zap.String("sessionId", sessionID),
		zap.String("context", pc.Key()))
	return nil
}

// List returns every live session in a context, oldest heartbeat last.
// Expired sessions found in the index set are compacted away as a side effect.
func (s *Store) List(ctx context.Context, pc Context) ([]Entry, error) {
	setKey := contextKeyPrefix + pc.Key()

	sessionIDs, err := s.redis.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list presence sessions: %w", err)
	}
	if len(sessionIDs) == 0 {
		return []Entry{}, nil
	}

	pipe := s.redis.Pipeline()
	cmds := make([]*redis.StringCmd, len(sessionIDs))
	for i, sessionID := range sessionIDs {
		cmds[i] = pipe.Get(ctx, sessionKeyPrefix+sessionID)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get presence entries: %w", err)
	}

	entries := make([]Entry, 0, len(sessionIDs))
	var expired []interface{}

	for i, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				expired = append(expired, sessionIDs[i])
				continue
			}
			s.logger.Warn("failed to read presence entry",
				zap.String("sessionId", sessionIDs[i]),
				zap.Error(err))
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			s.logger.Warn("failed to unmarshal presence entry",
				zap.String("sessionId", sessionIDs[i]),
				zap.Error(err))
			continue
		}

		entries = append(entries, entry)
	}

	if len(expired) > 0 {
		s.redis.SRem(ctx, setKey, expired...)
	}

	return entries, nil
}

// Sweep compacts the per-context index sets of every known context and
// forgets contexts that have gone empty. Run periodically; it does not
// shorten the TTL staleness window, it only keeps the indexes small.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	contextKeys, err := s.redis.SMembers(ctx, contextIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list presence contexts: %w", err)
	}

	removed := 0
	for _, ctxKey := range contextKeys {
		setKey := contextKeyPrefix + ctxKey
		sessionIDs, err := s.redis.SMembers(ctx, setKey).Result()
		if err != nil {
			s.logger.Warn("sweep: failed to list context set",
				zap.String("context", ctxKey), zap.Error(err))
			continue
		}

		live := 0
		for _, sessionID := range sessionIDs {
			exists, err := s.redis.Exists(ctx, sessionKeyPrefix+sessionID).Result()
			if err != nil {
				continue
			}
			if exists == 0 {
				s.redis.SRem(ctx, setKey, sessionID)
				removed++
				continue
			}
			live++
		}

		if live == 0 {
			s.redis.SRem(ctx, contextIndexKey, ctxKey)
		}
	}

	return removed, nil
}
