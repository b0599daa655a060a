package portal

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const SessionKeyPrefix = "portal:session:"

func SessionKey(id string) string {
	return SessionKeyPrefix + id
}

// ErrSessionNotFound covers both a missing and an unreadable session.
var ErrSessionNotFound = errors.New("portal session not found")

// SessionStore keeps portal sessions with a sliding expiry.
type SessionStore interface {
	Create(ctx context.Context, s Session) (string, error)
	Load(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	rdb   *redis.Client
	ttl   time.Duration
	newID func() (string, error)
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{rdb: rdb, ttl: ttl, newID: newSessionID}
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *redisSessionStore) Create(ctx context.Context, sess Session) (string, error) {
	id, err := s.newID()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, SessionKey(id), payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Load returns the session and pushes its expiry out by the full ttl.
func (s *redisSessionStore) Load(ctx context.Context, id string) (Session, error) {
	key := SessionKey(id)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, ErrSessionNotFound
	}
	if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, SessionKey(id)).Err()
}
