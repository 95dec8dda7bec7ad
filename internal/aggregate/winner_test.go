package aggregate

import (
	"testing"

	"StravaBoard/internal/calendar"
	"StravaBoard/internal/model"
)

func TestSelectWinner_StrictMaximum(t *testing.T) {
	window := calendar.MonthsFrom(2025, 1, 3)
	athletes := map[string]*model.AthleteSummary{
		"A": summaryFor(window, []float64{10, 0, 0}),
		"B": summaryFor(window, []float64{10, 0, 0}),
		"C": summaryFor(window, []float64{12, 0, 0}),
	}

	w, ok := SelectWinner(athletes, window, window[0], model.CategoryDistance)
	if !ok {
		t.Fatal("expected a winner")
	}
	if w.Alias != "C" || w.Score != 12 {
		t.Errorf("expected C with 12, got %s with %v", w.Alias, w.Score)
	}
	if w.MonthKey != "2025-01" {
		t.Errorf("expected month key 2025-01, got %s", w.MonthKey)
	}
}

func TestSelectWinner_TieBreaksToFirstInOrder(t *testing.T) {
	window := calendar.MonthsFrom(2025, 1, 1)
	athletes := map[string]*model.AthleteSummary{
		"Zoe": summaryFor(window, []float64{10}),
		"Amy": summaryFor(window, []float64{10}),
	}
	w, ok := SelectWinner(athletes, window, window[0], model.CategoryDistance)
	if !ok || w.Alias != "Amy" {
		t.Errorf("tie must break to first alias in order, got %q", w.Alias)
	}
}

func TestSelectWinner_AllZeroScores(t *testing.T) {
	window := calendar.MonthsFrom(2025, 1, 1)
	athletes := map[string]*model.AthleteSummary{
		"A": summaryFor(window, []float64{0}),
	}
	if _, ok := SelectWinner(athletes, window, window[0], model.CategoryDistance); ok {
		t.Error("no winner should be selected when every score is zero")
	}
}

func TestSelectWinner_TimeCategory(t *testing.T) {
	window := calendar.MonthsFrom(2025, 1, 1)
	a := summaryFor(window, []float64{0})
	a.MonthlyTime[0] = 90
	b := summaryFor(window, []float64{0})
	b.MonthlyTime[0] = 120
	athletes := map[string]*model.AthleteSummary{"A": a, "B": b}

	w, ok := SelectWinner(athletes, window, window[0], model.CategoryTime)
	if !ok || w.Alias != "B" || w.Score != 120 {
		t.Errorf("expected B with 120 minutes, got %s with %v", w.Alias, w.Score)
	}
	if w.Category != model.CategoryTime {
		t.Errorf("expected TIME category, got %s", w.Category)
	}
}

func TestSelectWinner_UntrackedMonth(t *testing.T) {
	window := calendar.MonthsFrom(2025, 1, 1)
	athletes := map[string]*model.AthleteSummary{"A": summaryFor(window, []float64{5})}
	if _, ok := SelectWinner(athletes, window, calendar.Month{Year: 2020, Month: 1}, model.CategoryDistance); ok {
		t.Error("expected no winner for a month outside the window")
	}
}
