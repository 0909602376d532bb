package usage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

type fakeFetcher struct {
	resp  *Response
	err   error
	plan  string
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context) (*Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeFetcher) Plan() string { return f.plan }

func newTestService(t *testing.T, fetcher *fakeFetcher, now time.Time) *Service {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "usage-limits.json"))
	svc := NewService(store, fetcher)
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetUsage_FreshCacheSkipsFetch(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{err: errors.New("fetcher must not be called")}
	svc := newTestService(t, fetcher, now)

	// One second inside the freshness window.
	cached := Snapshot{
		Plan:      "max_5x",
		Source:    "api",
		UpdatedAt: now.Add(-(300 - 1) * time.Second).Format(time.RFC3339),
		FiveHour:  &Bucket{Pct: 35},
	}
	if err := svc.store.Write(cached); err != nil {
		t.Fatal(err)
	}

	got := svc.GetUsage(context.Background(), 300*time.Second)

	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, want 0", fetcher.calls)
	}
	if got.FiveHour == nil || got.FiveHour.Pct != 35 {
		t.Errorf("got = %+v, want cached snapshot", got)
	}
}

func TestGetUsage_ExactlyMaxAgeIsStale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{
		resp: &Response{FiveHour: &RawBucket{Utilization: 80}},
		plan: "max_5x",
	}
	svc := newTestService(t, fetcher, now)

	cached := Snapshot{
		Source:    "api",
		UpdatedAt: now.Add(-300 * time.Second).Format(time.RFC3339),
		FiveHour:  &Bucket{Pct: 35},
	}
	if err := svc.store.Write(cached); err != nil {
		t.Fatal(err)
	}

	got := svc.GetUsage(context.Background(), 300*time.Second)

	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if got.FiveHour == nil || got.FiveHour.Pct != 80 {
		t.Errorf("got = %+v, want refreshed snapshot", got)
	}
}

func TestGetUsage_StaleFallbackOnFetchFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{err: ErrTokenExpired}
	svc := newTestService(t, fetcher, now)

	stale := Snapshot{
		Plan:      "max_5x",
		Source:    "api",
		UpdatedAt: now.Add(-time.Hour).Format(time.RFC3339),
		FiveHour:  &Bucket{Pct: 35},
	}
	if err := svc.store.Write(stale); err != nil {
		t.Fatal(err)
	}

	got := svc.GetUsage(context.Background(), 300*time.Second)

	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if got.FiveHour == nil || got.FiveHour.Pct != 35 {
		t.Errorf("got = %+v, want stale cached snapshot", got)
	}
}

func TestGetUsage_EmptySnapshotFloor(t *testing.T) {
	fetcher := &fakeFetcher{err: ErrNoCredentials}
	svc := newTestService(t, fetcher, time.Now())

	got := svc.GetUsage(context.Background(), 300*time.Second)

	if !reflect.DeepEqual(got, Snapshot{}) {
		t.Errorf("got = %+v, want zero snapshot", got)
	}

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("zero snapshot marshals to %s, want {}", data)
	}
}

func TestGetUsage_CorruptCacheTriggersRefresh(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{
		resp: &Response{SevenDay: &RawBucket{Utilization: 14}},
		plan: "pro",
	}
	svc := newTestService(t, fetcher, now)

	if err := os.WriteFile(svc.store.Path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := svc.GetUsage(context.Background(), 300*time.Second)

	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if got.SevenDay == nil || got.SevenDay.Pct != 14 {
		t.Errorf("got = %+v, want refreshed snapshot", got)
	}
}

func TestRefresh_PersistsSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{
		resp: &Response{FiveHour: &RawBucket{Utilization: 35, ResetsAt: "2025-06-01T13:00:00Z"}},
		plan: "max_5x",
	}
	svc := newTestService(t, fetcher, now)

	snap, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if snap.UpdatedAt != "2025-06-01T12:00:00Z" {
		t.Errorf("UpdatedAt = %q", snap.UpdatedAt)
	}

	persisted, err := svc.store.Read()
	if err != nil {
		t.Fatalf("Read after Refresh error: %v", err)
	}
	if persisted.FiveHour == nil || persisted.FiveHour.Pct != 35 {
		t.Errorf("persisted = %+v", persisted)
	}
}

func TestRefresh_SurfacesFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: ErrNoCredentials}
	svc := newTestService(t, fetcher, time.Now())

	if _, err := svc.Refresh(context.Background()); !errors.Is(err, ErrNoCredentials) {
		t.Errorf("err = %v, want ErrNoCredentials", err)
	}
}
