package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleRecords(base time.Time) []LogRecord {
	return []LogRecord{
		{
			Timestamp:     base,
			RequestID:     "req-1",
			AppointmentID: "appt-1",
			PoolSize:      2,
			Candidates:    []Candidate{{DriverID: "d1", Score: 75, PerfectMatch: true}},
			Ineligible:    []string{"d2"},
		},
		{
			Timestamp:     base.Add(time.Hour),
			RequestID:     "req-2",
			AppointmentID: "appt-2",
			PoolSize:      1,
			Candidates:    []Candidate{{DriverID: "d3", Score: 40}},
		},
	}
}

func TestJSONLStoreAppendAndQuery(t *testing.T) {
	store, err := NewJSONLStore(filepath.Join(t.TempDir(), "match.jsonl"))
	if err != nil {
		t.Fatalf("NewJSONLStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	for _, rec := range sampleRecords(base) {
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := store.Query(ctx, LogQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all records = %d, want 2", len(all))
	}

	byAppt, err := store.Query(ctx, LogQuery{AppointmentID: "appt-1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(byAppt) != 1 || byAppt[0].RequestID != "req-1" {
		t.Errorf("appointment filter = %+v", byAppt)
	}

	// Driver filter matches both candidates and ineligible drivers.
	byDriver, err := store.Query(ctx, LogQuery{DriverID: "d2"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(byDriver) != 1 || byDriver[0].RequestID != "req-1" {
		t.Errorf("driver filter = %+v", byDriver)
	}

	byTime, err := store.Query(ctx, LogQuery{Start: base.Add(time.Minute)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(byTime) != 1 || byTime[0].RequestID != "req-2" {
		t.Errorf("time filter = %+v", byTime)
	}
}

func TestJSONLStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.jsonl")
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("NewJSONLStore: %v", err)
	}
	ctx := context.Background()
	if err := store.Append(ctx, LogRecord{RequestID: "req-1"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("not json\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = f.Close()
	if err := store.Append(ctx, LogRecord{RequestID: "req-2"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := store.Query(ctx, LogQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2 (corrupt line skipped)", len(records))
	}
}

func TestRotatingJSONLStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.jsonl")
	store, err := NewRotatingJSONLStore(path, 1, 2, 1)
	if err != nil {
		t.Fatalf("NewRotatingJSONLStore: %v", err)
	}
	ctx := context.Background()
	if err := store.Append(ctx, LogRecord{RequestID: "req-1", AppointmentID: "appt-1"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	records, err := store.Query(ctx, LogQuery{AppointmentID: "appt-1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
