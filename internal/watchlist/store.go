// internal/watchlist/store.go
package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/stockml/stockml/internal/core"
	"github.com/stockml/stockml/internal/kvstore"
	"github.com/stockml/stockml/internal/notice"
	"github.com/stockml/stockml/internal/session"
)

// Store is the per-user watchlist. It is scoped to the current session
// identity: the collection empties on logout and loads the signed-in
// user's persisted list on login. Construct it after the session store;
// it subscribes to session transitions.
type Store struct {
	kv       kvstore.Store
	sessions *session.Store
	notices  *notice.Registry
	logger   *zap.Logger

	mu    sync.RWMutex
	user  *core.User
	items []core.WatchlistItem
	set   map[string]struct{}
}

// New creates a watchlist store bound to the session store's identity.
func New(kv kvstore.Store, sessions *session.Store, notices *notice.Registry, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		kv:       kv,
		sessions: sessions,
		notices:  notices,
		logger:   logger,
		items:    []core.WatchlistItem{},
		set:      make(map[string]struct{}),
	}

	s.reload(context.Background(), sessions.Current())
	sessions.Subscribe(func(user *core.User) {
		s.reload(context.Background(), user)
	})

	return s
}

func storageKey(userID string) string {
	return fmt.Sprintf("watchlist-%s", userID)
}

// reload swaps the collection for the given identity: empty when
// anonymous, the persisted list otherwise. Corrupt stored data is
// deleted and treated as empty.
func (s *Store) reload(ctx context.Context, user *core.User) {
	items := []core.WatchlistItem{}

	if user != nil {
		data, err := s.kv.Get(ctx, storageKey(user.ID))
		switch {
		case errors.Is(err, core.ErrKeyNotFound):
			// First login for this user.
		case err != nil:
			s.logger.Warn("loading watchlist", zap.Error(err))
		default:
			if jsonErr := json.Unmarshal(data, &items); jsonErr != nil {
				s.logger.Warn("discarding corrupt watchlist",
					zap.Error(core.WrapError(core.ErrStorageCorrupt, jsonErr)))
				if delErr := s.kv.Delete(ctx, storageKey(user.ID)); delErr != nil {
					s.logger.Warn("deleting corrupt watchlist", zap.Error(delErr))
				}
				items = []core.WatchlistItem{}
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.items = items
	s.set = make(map[string]struct{}, len(items))
	for _, item := range items {
		s.set[item.Symbol] = struct{}{}
	}
}

// Add appends an item to the watchlist. It is rejected without state
// change when no session is active or the symbol is already present;
// the outcome is reported on the notification surface either way. When
// persisting fails the in-memory collection is rolled back so memory
// and storage stay in step. The boolean reports whether the item was
// added.
func (s *Store) Add(ctx context.Context, item core.WatchlistItem) (bool, error) {
	s.mu.Lock()

	if s.user == nil {
		s.mu.Unlock()
		s.notices.Error("Authentication required", "Please log in to add stocks to your watchlist.")
		return false, core.ErrNotAuthenticated
	}

	if _, exists := s.set[item.Symbol]; exists {
		s.mu.Unlock()
		s.notices.Error("Already in watchlist", fmt.Sprintf("%s is already in your watchlist.", item.Symbol))
		return false, nil
	}

	s.items = append(s.items, item)
	s.set[item.Symbol] = struct{}{}

	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		delete(s.set, item.Symbol)
		s.mu.Unlock()
		s.notices.Error("Watchlist not saved", fmt.Sprintf("%s could not be added to your watchlist.", item.Symbol))
		return false, err
	}
	s.mu.Unlock()

	s.notices.Info("Added to watchlist", fmt.Sprintf("%s has been added to your watchlist.", item.Symbol))
	return true, nil
}

// Remove filters a symbol out of the watchlist. Without a session the
// collection is left unchanged, and a failed persist restores the
// removed entry in place. The boolean reports whether the symbol was
// removed.
func (s *Store) Remove(ctx context.Context, symbol string) (bool, error) {
	s.mu.Lock()

	if s.user == nil {
		s.mu.Unlock()
		s.notices.Error("Authentication required", "Please log in to manage your watchlist.")
		return false, core.ErrNotAuthenticated
	}

	idx := -1
	for i, item := range s.items {
		if item.Symbol == symbol {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}

	removed := s.items[idx]
	delete(s.set, symbol)
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	if err := s.persistLocked(ctx); err != nil {
		s.set[symbol] = struct{}{}
		s.items = append(s.items, core.WatchlistItem{})
		copy(s.items[idx+1:], s.items[idx:])
		s.items[idx] = removed
		s.mu.Unlock()
		s.notices.Error("Watchlist not saved", fmt.Sprintf("%s could not be removed from your watchlist.", symbol))
		return false, err
	}
	s.mu.Unlock()

	s.notices.Info("Removed from watchlist", fmt.Sprintf("%s has been removed from your watchlist.", symbol))
	return true, nil
}

// Contains reports membership in the current collection.
func (s *Store) Contains(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.set[symbol]
	return exists
}

// Items returns a snapshot of the current collection.
func (s *Store) Items() []core.WatchlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]core.WatchlistItem, len(s.items))
	copy(result, s.items)
	return result
}

// UpdateSnapshot refreshes the stored price snapshot for a symbol, if
// present. Used by the scheduled refresher.
func (s *Store) UpdateSnapshot(ctx context.Context, symbol string, lastPrice, priceChange, percentChange float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}

	for i := range s.items {
		if s.items[i].Symbol == symbol {
			s.items[i].LastPrice = lastPrice
			s.items[i].PriceChange = priceChange
			s.items[i].PercentChange = percentChange
			return s.persistLocked(ctx)
		}
	}
	return nil
}

// persistLocked writes the collection for the current user, including
// an emptied collection so removals survive re-login. Callers hold mu.
func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKey(s.user.ID), data)
}
