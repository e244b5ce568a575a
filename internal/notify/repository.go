package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/web3hub/internal/metrics"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/store"
)

// MaxRetained is the number of notifications kept; older entries are
// dropped on append.
const MaxRetained = 50

// Repository owns the ordered notification list (newest first) and
// persists it as one record in the local namespace.
//
// The in-memory list is updated before the write is issued. A failed
// write is logged and returned but not rolled back. Until the next
// successful write the repository is dirty: mutations build on the
// in-memory list and Reload keeps it.
type Repository struct {
	kv     store.KV
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	items []model.Notification
	dirty bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the clock used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// NewRepository creates an empty repository over kv. Call Reload to pick
// up previously persisted notifications.
func NewRepository(kv store.KV, opts ...Option) *Repository {
	r := &Repository{
		kv:     kv,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reload replaces the in-memory list with the persisted one. A missing
// record leaves an empty list; an unreadable store keeps what is in memory.
// A dirty repository keeps its in-memory list.
func (r *Repository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dirty {
		return nil
	}
	items, err := r.readLocked(ctx)
	if err != nil {
		return err
	}
	r.items = items
	return nil
}

// List returns a copy of the notifications, most recently added first.
func (r *Repository) List() []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Get returns the notification with the given id.
func (r *Repository) Get(id string) (model.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.items {
		if n.ID == id {
			return n, true
		}
	}
	return model.Notification{}, false
}

// Append completes partial with an id, a timestamp and defaults for any
// missing type, title, description or priority, puts it at the head of
// the list, drops everything past MaxRetained and persists the result.
// The returned record is the stored one even when persisting fails.
func (r *Repository) Append(ctx context.Context, partial model.Notification) (model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.complete(partial)

	current := r.freshLocked(ctx)
	items := make([]model.Notification, 0, min(len(current)+1, MaxRetained))
	items = append(items, n)
	items = append(items, current...)
	if len(items) > MaxRetained {
		items = items[:MaxRetained]
	}
	r.items = items
	metrics.IncrementAppended(string(n.Type))

	if err := r.persistLocked(ctx); err != nil {
		return n, err
	}
	return n, nil
}

// Delete removes the notification with the given id and persists the
// list. Deleting an unknown id is a successful no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.freshLocked(ctx)
	items := make([]model.Notification, 0, len(current))
	for _, n := range current {
		if n.ID != id {
			items = append(items, n)
		}
	}
	if len(items) == len(current) {
		r.items = current
		return nil
	}
	r.items = items
	metrics.NotificationsDeleted.Inc()

	return r.persistLocked(ctx)
}

// complete fills the generated and defaulted fields of a partial record.
func (r *Repository) complete(partial model.Notification) model.Notification {
	now := r.now()
	n := partial
	n.ID = newID(now)
	n.Timestamp = now.UnixMilli()
	if n.Type == "" {
		n.Type = model.CategoryGovernance
	}
	if n.Priority == "" {
		n.Priority = model.PriorityMedium
	}
	return n.Normalize()
}

// newID joins the creation instant with a random suffix so that two
// records created in the same millisecond never collide.
func newID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

// freshLocked returns the persisted list when it can be read, so that
// writes from another process are not clobbered; otherwise the in-memory
// list. A dirty repository always uses memory.
func (r *Repository) freshLocked(ctx context.Context) []model.Notification {
	if r.dirty {
		return r.items
	}
	items, err := r.readLocked(ctx)
	if err != nil {
		r.logger.Warn("reading notifications failed, using in-memory copy", zap.Error(err))
		return r.items
	}
	return items
}

func (r *Repository) readLocked(ctx context.Context) ([]model.Notification, error) {
	var items []model.Notification
	err := store.GetJSON(ctx, r.kv, store.NamespaceLocal, store.KeyNotifications, &items)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading notifications: %w", err)
	}
	return items, nil
}

func (r *Repository) persistLocked(ctx context.Context) error {
	items := r.items
	if items == nil {
		items = []model.Notification{}
	}
	if err := store.SetJSON(ctx, r.kv, store.NamespaceLocal, store.KeyNotifications, items); err != nil {
		metrics.IncrementStoreWriteFailure(string(store.NamespaceLocal))
		r.logger.Error("persisting notifications failed; in-memory list is ahead of the store",
			zap.Int("count", len(items)),
			zap.Error(err),
		)
		r.dirty = true
		return fmt.Errorf("persisting notifications: %w", err)
	}
	r.dirty = false
	return nil
}
