package sdk

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotArchived indicates that no archived export exists for the
// requested session ID.
var ErrSessionNotArchived = errors.New("session not archived")

// Archive stores finished session exports outside the process. Archived
// exports are diagnostic artifacts; they are never read back to rebuild
// live store state.
type Archive interface {
	// SaveSession writes a session export under its session ID,
	// replacing any previous export for that session.
	SaveSession(ctx context.Context, export *SessionExport) error

	// FetchSession retrieves a previously saved export for inspection.
	// Returns ErrSessionNotArchived if none exists.
	FetchSession(ctx context.Context, sessionID string) (*SessionExport, error)

	// Close releases the archive's underlying connection.
	Close() error
}

// RedisArchiveOptions configures the Redis connection for a RedisArchive.
type RedisArchiveOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// TTL is how long archived sessions are retained. Zero means keep forever.
	TTL time.Duration
}

// RedisArchive implements Archive using go-redis/v9. Each session export
// is stored as a JSON blob under "gencompute:session:<id>", and the session
// ID is appended to the "gencompute:sessions" index list.
type RedisArchive struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisArchive creates a Redis-backed archive with the given options
// and verifies the connection with a ping.
func NewRedisArchive(opts RedisArchiveOptions) (*RedisArchive, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisArchive{client: client, ttl: opts.TTL}, nil
}

// NewRedisArchiveFromClient wraps an existing Redis client. The caller
// retains ownership of the client's lifecycle configuration; Close still
// closes it.
func NewRedisArchiveFromClient(client *redis.Client, ttl time.Duration) *RedisArchive {
	return &RedisArchive{client: client, ttl: ttl}
}

// SaveSession writes the export as JSON under the session key and records
// the session ID in the index list.
func (a *RedisArchive) SaveSession(ctx context.Context, export *SessionExport) error {
	data, err := json.Marshal(export)
	if err != nil {
		return fmt.Errorf("failed to marshal session export: %w", err)
	}

	key := sessionKey(export.SessionID)
	if err := a.client.Set(ctx, key, data, a.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", export.SessionID, err)
	}

	if err := a.client.RPush(ctx, sessionIndexKey, export.SessionID).Err(); err != nil {
		return fmt.Errorf("failed to index session %s: %w", export.SessionID, err)
	}

	if len(export.Log) > 0 {
		actionsKey := actionsKey(export.SessionID)
		entries := make([]any, len(export.Log))
		for i, action := range export.Log {
			entries[i] = action.Name
		}
		if err := a.client.RPush(ctx, actionsKey, entries...).Err(); err != nil {
			return fmt.Errorf("failed to record actions for %s: %w", export.SessionID, err)
		}
		if err := a.client.LTrim(ctx, actionsKey, -maxArchivedActions, -1).Err(); err != nil {
			return fmt.Errorf("failed to trim actions for %s: %w", export.SessionID, err)
		}
	}

	return nil
}

// Actions returns the most recent action names recorded for a session,
// up to maxArchivedActions entries.
func (a *RedisArchive) Actions(ctx context.Context, sessionID string) ([]string, error) {
	names, err := a.client.LRange(ctx, actionsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list actions for %s: %w", sessionID, err)
	}
	return names, nil
}

// FetchSession loads a previously archived export.
func (a *RedisArchive) FetchSession(ctx context.Context, sessionID string) (*SessionExport, error) {
	data, err := a.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %q", ErrSessionNotArchived, sessionID)
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", sessionID, err)
	}

	var export SessionExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}

	return &export, nil
}

// Sessions lists the IDs of all archived sessions in save order.
func (a *RedisArchive) Sessions(ctx context.Context) ([]string, error) {
	ids, err := a.client.LRange(ctx, sessionIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// Close closes the Redis connection.
func (a *RedisArchive) Close() error {
	return a.client.Close()
}

const (
	sessionIndexKey = "gencompute:sessions"

	// maxArchivedActions caps the per-session action list in Redis. The
	// in-process log stays unbounded; only the archived copy is trimmed.
	maxArchivedActions = 100
)

func sessionKey(sessionID string) string {
	return "gencompute:session:" + sessionID
}

func actionsKey(sessionID string) string {
	return "gencompute:actions:" + sessionID
}
