package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/normsuite/internal/logging"
	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
)

// DefaultLockTTL bounds how long a single update may hold the distributed lock.
const DefaultLockTTL = 30 * time.Second

// ErrLockUnavailable is returned when the distributed lock cannot be acquired.
var ErrLockUnavailable = errors.New("suite lock unavailable")

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates suite access, ensuring safe concurrent updates.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SuiteStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiration of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Manager over the given store.
func NewManager(store ports.SuiteStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release after unlocking it.
func (m *Manager) acquire(suiteID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[suiteID]
	if !exists {
		entry = &lockEntry{}
		m.locks[suiteID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(suiteID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[suiteID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, suiteID)
	}
}

// Load retrieves a stored suite.
func (m *Manager) Load(ctx context.Context, suiteID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, suiteID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, suiteID)
		return err
	})
	return snap, err
}

// Save persists a suite.
func (m *Manager) Save(ctx context.Context, suiteID string, snap *domain.Snapshot) error {
	return m.WithLock(ctx, suiteID, func(ctx context.Context) error {
		return m.store.Save(ctx, suiteID, snap)
	})
}

// Update loads a suite, passes it to fn and saves what fn returns, all under
// the suite lock. Nothing is saved when fn fails.
func (m *Manager) Update(ctx context.Context, suiteID string, fn func(context.Context, *domain.Snapshot) (*domain.Snapshot, error)) (*domain.Snapshot, error) {
	var updated *domain.Snapshot
	err := m.WithLock(ctx, suiteID, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, suiteID)
		if err != nil {
			return err
		}
		next, err := fn(ctx, current)
		if err != nil {
			return err
		}
		if err := m.store.Save(ctx, suiteID, next); err != nil {
			return fmt.Errorf("failed to save suite: %w", err)
		}
		updated = next
		return nil
	})
	return updated, err
}

// Delete removes a suite from the store.
func (m *Manager) Delete(ctx context.Context, suiteID string) error {
	return m.WithLock(ctx, suiteID, func(ctx context.Context) error {
		return m.store.Delete(ctx, suiteID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying suite store.
func (m *Manager) Store() ports.SuiteStore {
	return m.store
}

// WithLock executes fn while holding the lock for the suite.
func (m *Manager) WithLock(ctx context.Context, suiteID string, fn func(context.Context) error) error {
	entry := m.acquire(suiteID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(suiteID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, suiteID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLockUnavailable, err)
		}
		defer func() {
			// The request context may be gone by now.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"suite_id", suiteID,
					"error", err,
				)
			}
		}()
	}

	return fn(ctx)
}
