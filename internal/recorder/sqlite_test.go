package recorder

import (
	"testing"
	"time"

	"StravaBoard/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(":memory:")
	if err != nil {
		t.Fatalf("open in-memory recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestWinnerLedger_AppendOnly(t *testing.T) {
	r := newTestRecorder(t)

	first := &model.Winner{MonthKey: "2025-02", Alias: "C", Score: 12.0, Category: model.CategoryDistance}
	if err := r.RecordWinner(first); err != nil {
		t.Fatalf("record first winner: %v", err)
	}

	// A later run with contradictory totals must not change the outcome.
	second := &model.Winner{MonthKey: "2025-02", Alias: "A", Score: 99.0, Category: model.CategoryDistance}
	if err := r.RecordWinner(second); err != nil {
		t.Fatalf("second record should be a silent no-op: %v", err)
	}

	got, err := r.WinnerFor("2025-02")
	if err != nil {
		t.Fatalf("winner for: %v", err)
	}
	if got == nil || got.Alias != "C" || got.Score != 12.0 {
		t.Errorf("ledger rewrote a closed month: %+v", got)
	}
}

func TestHasWinner(t *testing.T) {
	r := newTestRecorder(t)

	ok, err := r.HasWinner("2025-01")
	if err != nil || ok {
		t.Errorf("expected no winner yet, got ok=%v err=%v", ok, err)
	}
	if err := r.RecordWinner(&model.Winner{MonthKey: "2025-01", Alias: "A", Score: 1}); err != nil {
		t.Fatalf("record: %v", err)
	}
	ok, err = r.HasWinner("2025-01")
	if err != nil || !ok {
		t.Errorf("expected winner present, got ok=%v err=%v", ok, err)
	}
}

func TestWinnerFor_Absent(t *testing.T) {
	r := newTestRecorder(t)
	got, err := r.WinnerFor("1999-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unrecorded month, got %+v", got)
	}
}

func TestRecordSync(t *testing.T) {
	r := newTestRecorder(t)
	evt := &SyncEvent{
		Mode:            "FULL",
		AthletesFound:   []string{"Alice", "Bob"},
		SkippedAuth:     []string{"revoked_user"},
		SkippedUnmapped: []string{"stranger"},
		Duration:        1500 * time.Millisecond,
	}
	if err := r.RecordSync(evt); err != nil {
		t.Fatalf("record sync: %v", err)
	}

	var found int
	var skippedAuth string
	err := r.db.QueryRow(`SELECT found_count, skipped_auth FROM sync_runs`).Scan(&found, &skippedAuth)
	if err != nil {
		t.Fatalf("query sync_runs: %v", err)
	}
	if found != 2 || skippedAuth != "revoked_user" {
		t.Errorf("unexpected sync row: found=%d skipped_auth=%q", found, skippedAuth)
	}
}
