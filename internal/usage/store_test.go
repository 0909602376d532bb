package usage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "usage-limits.json"))

	want := Snapshot{
		Plan:      "max_5x",
		Source:    "api",
		UpdatedAt: "2025-06-01T10:30:00Z",
		FiveHour:  &Bucket{Pct: 35, ResetsAt: "2025-06-01T12:00:00Z"},
		SevenDay:  &Bucket{Pct: 14},
		ExtraUsage: map[string]any{
			"is_enabled":    true,
			"used_credits":  float64(42),
			"monthly_limit": float64(100000),
		},
	}
	if err := store.Write(want); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, want)
	}
}

func TestStoreWrite_PrettyPrintedNewlineTerminated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage-limits.json")
	store := NewStore(path)

	if err := store.Write(Snapshot{Plan: "pro", Source: "api"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("cache file not newline-terminated")
	}
	if !strings.Contains(string(data), "\n  \"plan\"") {
		t.Errorf("cache file not indented:\n%s", data)
	}
}

func TestStoreWrite_OmitsAbsentBuckets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage-limits.json")
	store := NewStore(path)

	if err := store.Write(Snapshot{Plan: "pro", Source: "api", UpdatedAt: time.Now().UTC().Format(time.RFC3339)}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"5h", "7d", "7d_sonnet", "7d_opus", "extra_usage"} {
		if strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("absent bucket %q serialized:\n%s", key, data)
		}
	}
}

func TestStoreRead_NotFound(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := store.Read(); err == nil {
		t.Fatal("expected error for missing cache")
	}
}

func TestStoreRead_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage-limits.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore(path).Read(); err == nil {
		t.Fatal("expected error for corrupt cache")
	}
}

func TestStoreWrite_ReplacesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage-limits.json")
	store := NewStore(path)

	if err := store.Write(Snapshot{Plan: "pro", Source: "api", FiveHour: &Bucket{Pct: 90}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Write(Snapshot{Plan: "pro", Source: "api"}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatal(err)
	}
	if got.FiveHour != nil {
		t.Errorf("FiveHour = %+v, want nil after overwrite", got.FiveHour)
	}
}
