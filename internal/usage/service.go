package usage

import (
	"context"
	"time"
)

// Fetcher is what the service needs from the API client: one authenticated
// fetch plus the plan label to stamp into the snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (*Response, error)
	Plan() string
}

// Service ties the fetch path and the cache together. GetUsage is the
// freshness-gated read used by frequent callers; Refresh is the unconditional
// fetch-and-persist used by the daemon and the one-shot commands.
type Service struct {
	store   *Store
	fetcher Fetcher

	now func() time.Time
}

func NewService(store *Store, fetcher Fetcher) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// Refresh fetches, normalizes, and persists a new snapshot.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	resp, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Normalize(resp, s.fetcher.Plan(), s.now())

	if err := s.store.Write(snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// GetUsage returns the cached snapshot when it is younger than maxAge and
// only attempts a refresh otherwise. It never fails outward: a failed refresh
// degrades to the stale cache, and with no cache at all it degrades to the
// zero snapshot. Staleness is a strict < comparison — a snapshot exactly
// maxAge old already triggers a refresh attempt.
func (s *Service) GetUsage(ctx context.Context, maxAge time.Duration) Snapshot {
	cached, readErr := s.store.Read()
	if readErr == nil {
		if age, ok := cached.Age(s.now()); ok && age < maxAge {
			return *cached
		}
	}

	fresh, err := s.Refresh(ctx)
	if err == nil {
		return fresh
	}

	if readErr == nil {
		return *cached
	}
	return Snapshot{}
}
