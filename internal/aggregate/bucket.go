package aggregate

import (
	"math"

	"StravaBoard/internal/calendar"
	"StravaBoard/internal/model"
)

// Bucketer accumulates one athlete's raw activities into the tracked month
// window. The provider may return the same activity on overlapping pages, so
// records are deduplicated by external ID; the seen set is scoped to one
// Bucketer, i.e. per athlete per run. Output is a pure function of the
// deduplicated, filtered input: feeding the same raw records twice yields
// identical totals.
type Bucketer struct {
	window   []calendar.Month
	accepted map[string]struct{}

	seen            map[int64]struct{}
	monthlyDistance []float64   // km
	monthlyTime     []float64   // minutes
	dailyDistance   [][]float64 // [month][day-1]
	dailyTime       [][]float64
}

// NewBucketer creates a Bucketer over the given window and accepted type set.
func NewBucketer(window []calendar.Month, accepted map[string]struct{}) *Bucketer {
	b := &Bucketer{
		window:          window,
		accepted:        accepted,
		seen:            make(map[int64]struct{}),
		monthlyDistance: make([]float64, len(window)),
		monthlyTime:     make([]float64, len(window)),
		dailyDistance:   make([][]float64, len(window)),
		dailyTime:       make([][]float64, len(window)),
	}
	for i, m := range window {
		b.dailyDistance[i] = make([]float64, m.Days())
		b.dailyTime[i] = make([]float64, m.Days())
	}
	return b
}

// Add buckets a single record. Duplicates, unaccepted types, and records outside
// the tracked window are dropped silently.
func (b *Bucketer) Add(rec model.ActivityRecord) {
	if _, dup := b.seen[rec.ID]; dup {
		return
	}
	b.seen[rec.ID] = struct{}{}

	if _, ok := b.accepted[rec.Type]; !ok {
		return
	}
	idx := -1
	for i, m := range b.window {
		if m.Contains(rec.StartLocal) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	day := rec.StartLocal.Day() - 1
	distKm := rec.Distance / 1000
	timeMin := rec.MovingTime / 60

	b.monthlyDistance[idx] += distKm
	b.monthlyTime[idx] += timeMin
	b.dailyDistance[idx][day] += distKm
	b.dailyTime[idx][day] += timeMin
}

// AddAll buckets a batch of records in order.
func (b *Bucketer) AddAll(records []model.ActivityRecord) {
	for _, rec := range records {
		b.Add(rec)
	}
}

// Summary finalizes the accumulated totals into an AthleteSummary, rounding
// distance and duration to 2 decimals.
func (b *Bucketer) Summary(displayName, profile string) *model.AthleteSummary {
	s := &model.AthleteSummary{
		DisplayName:      displayName,
		Profile:          profile,
		MonthlyDistances: make([]float64, len(b.window)),
		MonthlyTime:      make([]float64, len(b.window)),
		DailyDistanceKm:  make([][]float64, len(b.window)),
		DailyTimeMin:     make([][]float64, len(b.window)),
	}
	for i := range b.window {
		s.MonthlyDistances[i] = round2(b.monthlyDistance[i])
		s.MonthlyTime[i] = round2(b.monthlyTime[i])
		s.DailyDistanceKm[i] = roundSlice(b.dailyDistance[i])
		s.DailyTimeMin[i] = roundSlice(b.dailyTime[i])
	}
	return s
}

// ChallengeTotals computes the current-month daily array for one challenge
// activity type. Distance-classified types accumulate kilometers rounded to 2
// decimals; the duration class accumulates whole minutes and never distance.
// Deduplication by external ID applies within the call.
func ChallengeTotals(records []model.ActivityRecord, actType string, month calendar.Month) (total float64, daily []float64) {
	daily = make([]float64, month.Days())
	distance := model.IsDistanceType(actType)
	seen := make(map[int64]struct{})

	for _, rec := range records {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		if rec.Type != actType || !month.Contains(rec.StartLocal) {
			continue
		}
		if distance {
			daily[rec.StartLocal.Day()-1] += rec.Distance / 1000
		} else {
			daily[rec.StartLocal.Day()-1] += rec.MovingTime / 60
		}
	}

	for _, v := range daily {
		total += v
	}
	if distance {
		return round2(total), roundSlice(daily)
	}
	for i := range daily {
		daily[i] = math.Round(daily[i])
	}
	return math.Round(total), daily
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundSlice(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = round2(v)
	}
	return out
}
