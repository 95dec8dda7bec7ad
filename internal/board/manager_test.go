package board

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"StravaBoard/internal/calendar"
	"StravaBoard/internal/model"
)

func TestManager_CommitRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if len(m.Snapshot().Athletes) != 0 {
		t.Error("fresh manager should start with an empty board")
	}

	window := calendar.MonthsFrom(2025, 1, 3)
	athletes := map[string]*model.AthleteSummary{
		"Alice": {
			DisplayName:      "Alice",
			MonthlyDistances: []float64{1, 2, 3},
			MonthlyTime:      []float64{10, 20, 30},
			DailyDistanceKm:  [][]float64{make([]float64, 31), make([]float64, 28), make([]float64, 31)},
			DailyTimeMin:     [][]float64{make([]float64, 31), make([]float64, 28), make([]float64, 31)},
		},
	}
	synced := time.Date(2025, time.March, 20, 18, 5, 0, 0, time.UTC)
	if err := m.Commit(window, athletes, synced); err != nil {
		t.Fatalf("commit: %v", err)
	}

	// Reload from disk through a fresh manager.
	m2, err := NewManager(dir)
	if err != nil {
		t.Fatalf("reload manager: %v", err)
	}
	b := m2.Snapshot()
	if b.LastSynced != "20-03-2025 18:05" {
		t.Errorf("unexpected last_synced: %q", b.LastSynced)
	}
	if len(b.MonthNames) != 3 || b.MonthNames[0] != "January 2025" {
		t.Errorf("unexpected month names: %v", b.MonthNames)
	}
	if b.Athletes["Alice"].MonthlyDistances[2] != 3 {
		t.Errorf("athlete totals lost in round trip: %+v", b.Athletes["Alice"])
	}

	got := m2.Window()
	if len(got) != 3 || got[0] != window[0] || got[2] != window[2] {
		t.Errorf("window not recoverable from labels: %v", got)
	}
}

func TestManager_WriteChallenge(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	month := calendar.Month{Year: 2025, Month: time.March}
	daily := make([]float64, month.Days())
	daily[4] = 5.0
	entries := map[string]ChallengeEntry{
		"Alice": NewChallengeEntry("Alice", "img", "Run", 5.0, daily),
		"Bob":   NewChallengeEntry("Bob", "", "Workout", 45, make([]float64, month.Days())),
	}
	if err := m.WriteChallenge(month, "Run", entries, time.Now()); err != nil {
		t.Fatalf("write challenge: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Mar_Challenge_Run.json"))
	if err != nil {
		t.Fatalf("read challenge file: %v", err)
	}
	var decoded struct {
		Athletes   map[string]ChallengeEntry `json:"athletes"`
		MonthNames []string                  `json:"month_names"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode challenge file: %v", err)
	}
	if decoded.MonthNames[0] != "Mar 2025" {
		t.Errorf("unexpected month name: %v", decoded.MonthNames)
	}
	alice := decoded.Athletes["Alice"]
	if alice.MonthlyDistances == nil || *alice.MonthlyDistances != 5.0 {
		t.Errorf("distance-classified entry missing monthly_distances: %+v", alice)
	}
	if alice.MonthlyTime != nil {
		t.Error("distance-classified entry must not carry monthly_time")
	}
	bob := decoded.Athletes["Bob"]
	if bob.MonthlyTime == nil || *bob.MonthlyTime != 45 {
		t.Errorf("duration-classified entry missing monthly_time: %+v", bob)
	}
	if strings.Contains(string(data), `"daily_distance_km":null`) {
		t.Error("unused fields should be omitted, not null")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	b, err := Load(filepath.Join(t.TempDir(), "athletes.json"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if b == nil || b.Athletes == nil {
		t.Fatal("expected usable empty board")
	}
}
