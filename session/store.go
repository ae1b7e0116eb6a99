// session/store.go
package session

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	logger "github.com/imdes/console/logging"
	"github.com/imdes/console/model"
	"github.com/imdes/console/storage"
	"github.com/imdes/console/util"
)

const (
	tokenKey = "auth_token"
	userKey  = "auth_user"

	// EventChanged is published on every login/logout so mounted views
	// stay consistent without polling the store.
	EventChanged = "session.changed"

	sessionIDPrefixLen = 16
)

// Event is the payload delivered to session subscribers.
type Event struct {
	Authenticated bool
	User          *model.UserProfile
}

// Store is the sole owner of the persisted token/user pair. It is
// explicitly constructed and injected; there is no package-level instance.
// Exactly one active session exists per store.
type Store struct {
	kv  storage.KV
	bus *util.EventBus

	mu    sync.RWMutex
	token string
	user  *model.UserProfile
}

// NewStore builds a session store over the given backing. Any pair already
// persisted is restored, so a console restart keeps its session.
func NewStore(kv storage.KV, bus *util.EventBus) *Store {
	s := &Store{kv: kv, bus: bus}

	ctx := context.Background()
	token, err := kv.Get(ctx, tokenKey)
	if err != nil {
		logger.Warn("Failed to restore session token", zap.Error(err))
		return s
	}
	s.token = token

	if raw, err := kv.Get(ctx, userKey); err == nil && raw != "" {
		var user model.UserProfile
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			s.user = &user
		} else {
			logger.Warn("Failed to decode persisted user profile", zap.Error(err))
		}
	}
	return s
}

// Set stores a fresh token/user pair and notifies subscribers.
func (s *Store) Set(ctx context.Context, token string, user model.UserProfile) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, tokenKey, token); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, userKey, string(encoded)); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.notify(ctx)
	return nil
}

// Clear drops the session on logout or a failed token refresh.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, tokenKey, userKey); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.notify(ctx)
	return nil
}

// Token returns the current bearer token, or "" when signed out. Satisfies
// client.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current profile, or nil when signed out.
func (s *Store) User() *model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// AuthHeader returns the Authorization header pair, empty when signed out.
func (s *Store) AuthHeader() map[string]string {
	token := s.Token()
	if token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// SessionID derives the audit session identifier from the token prefix.
func (s *Store) SessionID() string {
	token := s.Token()
	if len(token) > sessionIDPrefixLen {
		return token[:sessionIDPrefixLen]
	}
	return token
}

// Subscribe registers fn to run on every session change.
func (s *Store) Subscribe(fn func(Event)) {
	if s.bus == nil {
		return
	}
	s.bus.Subscribe(EventChanged, func(ctx context.Context, event util.Event) error {
		if payload, ok := event.Payload.(Event); ok {
			fn(payload)
		}
		return nil
	})
}

func (s *Store) notify(ctx context.Context) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, EventChanged, Event{
		Authenticated: s.IsAuthenticated(),
		User:          s.User(),
	})
}
