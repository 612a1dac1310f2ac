// internal/session/store.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockml/stockml/internal/core"
	"github.com/stockml/stockml/internal/kvstore"
	"github.com/stockml/stockml/internal/notice"
)

// storageKey is the persistence key for the serialized session.
const storageKey = "user"

// minPasswordLen is the only strength requirement the simulated
// backend enforces.
const minPasswordLen = 6

// Listener is invoked after every session transition with the new
// identity, nil when the session ended.
type Listener func(user *core.User)

// Config holds session store configuration.
type Config struct {
	Latency time.Duration
}

// Store holds the current authenticated identity. At most one session
// exists at a time; it is persisted so a restart resumes it.
type Store struct {
	cfg     Config
	kv      kvstore.Store
	notices *notice.Registry
	logger  *zap.Logger

	mu        sync.RWMutex
	user      *core.User
	listeners []Listener
}

// New creates a session store in the anonymous state. Call Rehydrate
// to resume a persisted session.
func New(cfg Config, kv kvstore.Store, notices *notice.Registry, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		cfg:     cfg,
		kv:      kv,
		notices: notices,
		logger:  logger,
	}
}

// Subscribe registers a listener for session transitions. Listeners
// are invoked synchronously after the state changes.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Current returns the authenticated user, or nil when anonymous.
func (s *Store) Current() *core.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Rehydrate loads a persisted session from storage. Corrupt data is
// discarded and the store stays anonymous.
func (s *Store) Rehydrate(ctx context.Context) error {
	data, err := s.kv.Get(ctx, storageKey)
	if errors.Is(err, core.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var user core.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn("discarding corrupt session state",
			zap.Error(core.WrapError(core.ErrStorageCorrupt, err)))
		return s.kv.Delete(ctx, storageKey)
	}

	s.setUser(&user)
	s.logger.Info("session restored", zap.String("user", user.Name))
	return nil
}

// Login validates the credential shape and fabricates an authenticated
// identity. The name is the email's local part.
func (s *Store) Login(ctx context.Context, email, password string) (*core.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	if !strings.Contains(email, "@") || len(password) < minPasswordLen {
		s.notices.Error("Login failed", "Invalid credentials. Please try again.")
		return nil, core.ErrInvalidCredentials
	}

	user := &core.User{
		ID:    userID(email),
		Name:  strings.SplitN(email, "@", 2)[0],
		Email: email,
	}

	if err := s.persist(ctx, user); err != nil {
		return nil, err
	}

	s.setUser(user)
	s.notices.Info("Login successful", fmt.Sprintf("Welcome back, %s!", user.Name))

	u := *user
	return &u, nil
}

// Register validates the registration shape and creates a new
// authenticated identity.
func (s *Store) Register(ctx context.Context, name, email, password string) (*core.User, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}

	if name == "" || !strings.Contains(email, "@") || len(password) < minPasswordLen {
		s.notices.Error("Registration failed", "Please check your information and try again.")
		return nil, core.ErrInvalidRegistration
	}

	user := &core.User{
		ID:    userID(email),
		Name:  name,
		Email: email,
	}

	if err := s.persist(ctx, user); err != nil {
		return nil, err
	}

	s.setUser(user)
	s.notices.Info("Registration successful", fmt.Sprintf("Welcome to StockML, %s!", name))

	u := *user
	return &u, nil
}

// Logout ends the session unconditionally and clears persisted state.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storageKey); err != nil {
		s.logger.Warn("clearing persisted session", zap.Error(err))
	}

	s.setUser(nil)
	s.notices.Info("Logged out", "You have been successfully logged out.")
	return nil
}

// userID derives a stable identifier from the email so the same
// account maps to the same watchlist across sessions.
func userID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("stockml:user:"+strings.ToLower(email))).String()
}

func (s *Store) persist(ctx context.Context, user *core.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKey, data)
}

func (s *Store) setUser(user *core.User) {
	s.mu.Lock()
	s.user = user
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(user)
	}
}

func (s *Store) simulate(ctx context.Context) error {
	if s.cfg.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.cfg.Latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
