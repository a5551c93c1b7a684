package storage

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fallback wraps a primary Store and degrades to an in-memory copy when the
// primary fails. The session keeps working with no durability guarantee until
// a later write to the primary succeeds again; reads prefer the primary so a
// recovered backend wins over stale memory.
type Fallback struct {
	primary Store
	backup  *Memory
	log     *logrus.Logger

	mu       sync.Mutex
	degraded bool
}

func NewFallback(primary Store, log *logrus.Logger) *Fallback {
	return &Fallback{primary: primary, backup: NewMemory(), log: log}
}

// Degraded reports whether the most recent primary operation failed.
func (f *Fallback) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

func (f *Fallback) setDegraded(on bool) {
	f.mu.Lock()
	changed := f.degraded != on
	f.degraded = on
	f.mu.Unlock()
	if changed && on {
		f.log.Warn("Persistence unavailable, continuing in-memory only")
	} else if changed {
		f.log.Info("Persistence recovered")
	}
}

func (f *Fallback) Load(ctx context.Context, email, key string) ([]byte, error) {
	value, err := f.primary.Load(ctx, email, key)
	if err != nil {
		f.setDegraded(true)
		f.log.WithError(err).WithField("key", key).Warn("Load fell back to memory")
		return f.backup.Load(ctx, email, key)
	}
	f.setDegraded(false)
	return value, nil
}

func (f *Fallback) Save(ctx context.Context, email, key string, value []byte) error {
	// The backup always gets the write so a degraded session still reads
	// its own mutations back.
	_ = f.backup.Save(ctx, email, key, value)

	if err := f.primary.Save(ctx, email, key, value); err != nil {
		f.setDegraded(true)
		f.log.WithError(err).WithField("key", key).Warn("Save kept in memory only")
		return nil
	}
	f.setDegraded(false)
	return nil
}

func (f *Fallback) Delete(ctx context.Context, email, key string) error {
	_ = f.backup.Delete(ctx, email, key)
	if err := f.primary.Delete(ctx, email, key); err != nil {
		f.setDegraded(true)
		f.log.WithError(err).WithField("key", key).Warn("Delete kept in memory only")
		return nil
	}
	f.setDegraded(false)
	return nil
}

func (f *Fallback) DeleteAll(ctx context.Context, email string) error {
	_ = f.backup.DeleteAll(ctx, email)
	if err := f.primary.DeleteAll(ctx, email); err != nil {
		f.setDegraded(true)
		f.log.WithError(err).Warn("DeleteAll kept in memory only")
		return nil
	}
	f.setDegraded(false)
	return nil
}
