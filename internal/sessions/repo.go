package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "designer:session:" // session data: designer:session:{session_id}
	dirtySetKey      = "designer:dirty"    // set of session ids with unsaved edits
)

// Repo handles Redis operations for editing sessions.
type Repo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepo creates a session repository. ttl bounds how long an abandoned
// session survives.
func NewRepo(client *redis.Client, ttl time.Duration) *Repo {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Repo{client: client, ttl: ttl}
}

func (r *Repo) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Put stores a session, refreshing its TTL and maintaining the dirty index
// in one pipeline.
func (r *Repo) Put(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(s.SessionID), data, r.ttl)
	if s.Dirty {
		pipe.SAdd(ctx, dirtySetKey, s.SessionID)
	} else {
		pipe.SRem(ctx, dirtySetKey, s.SessionID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get loads a session by id.
func (r *Repo) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete removes a session and its dirty marker.
func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(sessionID))
	pipe.SRem(ctx, dirtySetKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DirtySessions lists session ids with unsaved edits. Sessions that expired
// out from under the dirty set are pruned as they are encountered.
func (r *Repo) DirtySessions(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, dirtySetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list dirty sessions: %w", err)
	}

	live := make([]string, 0, len(ids))
	for _, id := range ids {
		exists, err := r.client.Exists(ctx, r.key(id)).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			r.client.SRem(ctx, dirtySetKey, id)
			continue
		}
		live = append(live, id)
	}
	return live, nil
}
