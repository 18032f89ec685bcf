package catalog

import (
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shoplens/shoplens/internal/domain"
)

// Snapshot is one fully-built catalog generation. Snapshots are immutable;
// a reload produces a new one and swaps the reference, so concurrent
// readers never observe a half-built catalog.
type Snapshot struct {
	Products    []domain.Product
	SourceCount int
	LoadedAt    time.Time
}

// Store holds the process-wide catalog behind an atomic reference.
type Store struct {
	dir      string
	currency string
	current  atomic.Value // *Snapshot
	group    singleflight.Group
}

func NewStore(dir, currency string) *Store {
	s := &Store{dir: dir, currency: currency}
	s.current.Store(&Snapshot{LoadedAt: time.Now()})
	return s
}

// Snapshot returns the current catalog generation.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load().(*Snapshot)
}

// Reload rebuilds the catalog from the source directory and swaps it in
// wholesale. Concurrent callers collapse into a single load.
func (s *Store) Reload() (*Snapshot, error) {
	v, err, _ := s.group.Do("reload", func() (interface{}, error) {
		products, sources, err := Load(s.dir, s.currency)
		if err != nil {
			return nil, err
		}
		snap := &Snapshot{Products: products, SourceCount: sources, LoadedAt: time.Now()}
		s.current.Store(snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}
