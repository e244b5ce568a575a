package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/web3hub/internal/store"
)

// Lease lets one of several processes sharing a store run the schedule.
// The holder renews it on every tick; another process takes over once it
// has gone unrenewed for its TTL. The store has no compare-and-swap, so
// two processes starting in the same instant may both tick once.
type Lease struct {
	kv    store.KV
	owner string
	ttl   time.Duration
	now   func() time.Time
}

type leaseRecord struct {
	Owner   string `json:"owner"`
	Expires int64  `json:"expires"`
}

// NewLease creates a lease over the local namespace of kv.
func NewLease(kv store.KV, ttl time.Duration) *Lease {
	return &Lease{
		kv:    kv,
		owner: uuid.NewString(),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Acquire takes or renews the lease. It reports false while another owner
// holds an unexpired lease. A store that cannot be read or written does
// not block the caller; the error is returned alongside true.
func (l *Lease) Acquire(ctx context.Context) (bool, error) {
	now := l.now()

	var rec leaseRecord
	err := store.GetJSON(ctx, l.kv, store.NamespaceLocal, store.KeyPollerLease, &rec)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return true, fmt.Errorf("reading poller lease: %w", err)
	case rec.Owner != l.owner && rec.Expires > now.UnixMilli():
		return false, nil
	}

	rec = leaseRecord{Owner: l.owner, Expires: now.Add(l.ttl).UnixMilli()}
	if err := store.SetJSON(ctx, l.kv, store.NamespaceLocal, store.KeyPollerLease, rec); err != nil {
		return true, fmt.Errorf("writing poller lease: %w", err)
	}
	return true, nil
}

// Release gives the lease up if this process holds it.
func (l *Lease) Release(ctx context.Context) error {
	var rec leaseRecord
	if err := store.GetJSON(ctx, l.kv, store.NamespaceLocal, store.KeyPollerLease, &rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("reading poller lease: %w", err)
	}
	if rec.Owner != l.owner {
		return nil
	}
	if err := store.SetJSON(ctx, l.kv, store.NamespaceLocal, store.KeyPollerLease, leaseRecord{}); err != nil {
		return fmt.Errorf("releasing poller lease: %w", err)
	}
	return nil
}
