package cleanup

import (
	"context"
	"testing"
	"time"
)

type fakePurger struct {
	cutoff  time.Time
	deleted int64
}

func (f *fakePurger) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, nil
}

func TestRunUsesRetentionCutoff(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	purger := &fakePurger{deleted: 3}

	job := New(purger, 180*24*time.Hour, time.Hour, nil)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run cleanup job: %v", err)
	}

	want := now.Add(-180 * 24 * time.Hour)
	if !purger.cutoff.Equal(want) {
		t.Fatalf("unexpected cutoff: got %v want %v", purger.cutoff, want)
	}
}

func TestRunWithoutStore(t *testing.T) {
	job := New(nil, 0, 0, nil)

	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected error when store is missing")
	}
}
