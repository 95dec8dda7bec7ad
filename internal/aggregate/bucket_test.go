package aggregate

import (
	"math"
	"reflect"
	"testing"
	"time"

	"StravaBoard/internal/calendar"
	"StravaBoard/internal/model"
)

func testWindow() []calendar.Month {
	return calendar.MonthsFrom(2025, 1, 3) // Jan, Feb, Mar 2025
}

func rec(id int64, actType string, day int, distance, moving float64) model.ActivityRecord {
	return model.ActivityRecord{
		ID:         id,
		Type:       actType,
		StartLocal: time.Date(2025, time.March, day, 7, 30, 0, 0, time.UTC),
		Distance:   distance,
		MovingTime: moving,
	}
}

func TestBucketer_TwoActivitiesSameDay(t *testing.T) {
	b := NewBucketer(testWindow(), model.AcceptedTypes)
	b.Add(rec(1, "Run", 5, 5000, 1800))
	b.Add(rec(2, "Ride", 5, 10000, 1200))
	s := b.Summary("A", "")

	if s.DailyDistanceKm[2][4] != 15.0 {
		t.Errorf("expected daily_distance[4] == 15.0, got %v", s.DailyDistanceKm[2][4])
	}
	if s.MonthlyDistances[2] != 15.0 {
		t.Errorf("expected monthly_distance == 15.0, got %v", s.MonthlyDistances[2])
	}
	if s.DailyTimeMin[2][4] != 50.0 {
		t.Errorf("expected daily_time[4] == 50.0, got %v", s.DailyTimeMin[2][4])
	}
	if s.MonthlyTime[2] != 50.0 {
		t.Errorf("expected monthly_time == 50.0, got %v", s.MonthlyTime[2])
	}
}

func TestBucketer_DuplicateIDCountedOnce(t *testing.T) {
	b := NewBucketer(testWindow(), model.AcceptedTypes)
	// Same activity delivered on two overlapping pages.
	b.Add(rec(42, "Run", 10, 8000, 2400))
	b.Add(rec(42, "Run", 10, 8000, 2400))
	s := b.Summary("A", "")

	if s.MonthlyDistances[2] != 8.0 {
		t.Errorf("expected duplicate counted once (8.0 km), got %v", s.MonthlyDistances[2])
	}
	if s.MonthlyTime[2] != 40.0 {
		t.Errorf("expected 40 minutes, got %v", s.MonthlyTime[2])
	}
}

func TestBucketer_Idempotence(t *testing.T) {
	records := []model.ActivityRecord{
		rec(1, "Run", 3, 5231, 1811),
		rec(2, "Ride", 14, 23477, 3605),
		rec(3, "Walk", 14, 3120, 2400),
		rec(4, "Yoga", 20, 0, 3600),
	}

	once := NewBucketer(testWindow(), model.AcceptedTypes)
	once.AddAll(records)

	twice := NewBucketer(testWindow(), model.AcceptedTypes)
	twice.AddAll(records)
	twice.AddAll(records) // simulate a full page overlap

	a, b := once.Summary("A", ""), twice.Summary("A", "")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("aggregating the same input twice must be identical:\nonce:  %+v\ntwice: %+v", a, b)
	}
}

func TestBucketer_SumInvariant(t *testing.T) {
	b := NewBucketer(testWindow(), model.AcceptedTypes)
	b.Add(rec(1, "Run", 1, 5001, 1801))
	b.Add(rec(2, "Run", 15, 10003, 3607))
	b.Add(rec(3, "Hike", 28, 7777, 5555))
	s := b.Summary("A", "")

	for i := range s.MonthlyDistances {
		var distSum, timeSum float64
		for _, d := range s.DailyDistanceKm[i] {
			distSum += d
		}
		for _, m := range s.DailyTimeMin[i] {
			timeSum += m
		}
		if math.Abs(round2(distSum)-s.MonthlyDistances[i]) > 0.011 {
			t.Errorf("month %d: daily distance sum %v != monthly %v", i, round2(distSum), s.MonthlyDistances[i])
		}
		if math.Abs(round2(timeSum)-s.MonthlyTime[i]) > 0.011 {
			t.Errorf("month %d: daily time sum %v != monthly %v", i, round2(timeSum), s.MonthlyTime[i])
		}
	}
}

func TestBucketer_FiltersTypeAndWindow(t *testing.T) {
	b := NewBucketer(testWindow(), model.AcceptedTypes)
	b.Add(rec(1, "Swim", 5, 2000, 1800)) // not in the accepted board set
	outside := rec(2, "Run", 5, 5000, 1800)
	outside.StartLocal = time.Date(2024, time.December, 5, 8, 0, 0, 0, time.UTC)
	b.Add(outside)
	s := b.Summary("A", "")

	for i, d := range s.MonthlyDistances {
		if d != 0 {
			t.Errorf("month %d: expected 0 distance, got %v", i, d)
		}
	}
}

func TestBucketer_DailyArrayLengths(t *testing.T) {
	leap := calendar.MonthsFrom(2024, 2, 1)    // Feb 2024
	nonLeap := calendar.MonthsFrom(2025, 2, 1) // Feb 2025

	if got := len(NewBucketer(leap, model.AcceptedTypes).Summary("A", "").DailyDistanceKm[0]); got != 29 {
		t.Errorf("leap-year February: expected 29 entries, got %d", got)
	}
	if got := len(NewBucketer(nonLeap, model.AcceptedTypes).Summary("A", "").DailyTimeMin[0]); got != 28 {
		t.Errorf("non-leap February: expected 28 entries, got %d", got)
	}
}

func TestChallengeTotals_DistanceAndTimeModes(t *testing.T) {
	month := calendar.Month{Year: 2025, Month: time.March}
	records := []model.ActivityRecord{
		rec(1, "Run", 5, 5000, 1800),
		rec(1, "Run", 5, 5000, 1800), // duplicate page delivery
		rec(2, "Run", 12, 10000, 3600),
		rec(3, "Workout", 5, 0, 2700),
		rec(4, "Ride", 8, 20000, 2400), // other type, ignored for "Run"
	}

	total, daily := ChallengeTotals(records, "Run", month)
	if total != 15.0 {
		t.Errorf("expected Run total 15.0 km, got %v", total)
	}
	if daily[4] != 5.0 || daily[11] != 10.0 {
		t.Errorf("unexpected Run daily array: day5=%v day12=%v", daily[4], daily[11])
	}
	if len(daily) != 31 {
		t.Errorf("expected 31 entries for March, got %d", len(daily))
	}

	total, daily = ChallengeTotals(records, "Workout", month)
	if total != 45 {
		t.Errorf("expected Workout total 45 whole minutes, got %v", total)
	}
	if daily[4] != 45 {
		t.Errorf("expected 45 minutes on day 5, got %v", daily[4])
	}
}
