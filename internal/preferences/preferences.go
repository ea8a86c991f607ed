// Package preferences resolves per-user generation preferences with a short-lived cache.
package preferences

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/lift/internal/types"
)

// DefaultTTL is how long a user's preferences are served from memory
const DefaultTTL = 60 * time.Second

// Store reads and writes preferences. GetPreferences returns nil when the user has none.
type Store interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (*types.Preferences, error)
	SavePreferences(ctx context.Context, userID uuid.UUID, p types.Preferences) error
}

type cacheEntry struct {
	prefs   types.Preferences
	expires time.Time
}

// Service resolves preferences from a Store, filling defaults and caching results per user.
// A nil Store yields defaults for everyone.
type Service struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	cache map[uuid.UUID]cacheEntry
}

// NewService creates a preference service. ttl <= 0 uses DefaultTTL.
func NewService(store Store, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
		cache:  make(map[uuid.UUID]cacheEntry),
	}
}

// Get returns the user's preferences with defaults applied. Anonymous users
// (uuid.Nil), missing rows and store failures all yield defaults; failures are logged.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) types.Preferences {
	if s == nil || s.store == nil || userID == uuid.Nil {
		return types.DefaultPreferences()
	}

	s.mu.Lock()
	entry, ok := s.cache[userID]
	if ok && !s.now().Before(entry.expires) {
		delete(s.cache, userID)
		ok = false
	}
	s.mu.Unlock()
	if ok {
		return entry.prefs
	}

	stored, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load preferences, using defaults",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return types.DefaultPreferences()
	}

	prefs := types.DefaultPreferences()
	if stored != nil {
		prefs = stored.WithDefaults()
	}

	s.remember(userID, prefs)

	return prefs
}

// Save stores the user's preferences and refreshes the cache entry
func (s *Service) Save(ctx context.Context, userID uuid.UUID, p types.Preferences) (types.Preferences, error) {
	if s == nil || s.store == nil {
		return types.Preferences{}, ErrNoStore
	}
	if err := s.store.SavePreferences(ctx, userID, p); err != nil {
		return types.Preferences{}, err
	}

	prefs := p.WithDefaults()
	s.remember(userID, prefs)
	return prefs, nil
}

// remember caches prefs for the user and sweeps entries that have expired
func (s *Service) remember(userID uuid.UUID, prefs types.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, entry := range s.cache {
		if !now.Before(entry.expires) {
			delete(s.cache, id)
		}
	}
	s.cache[userID] = cacheEntry{prefs: prefs, expires: now.Add(s.ttl)}
}

// Invalidate drops the cached entry for a user
func (s *Service) Invalidate(userID uuid.UUID) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}
