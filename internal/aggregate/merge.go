package aggregate

import (
	"StravaBoard/internal/calendar"
	"StravaBoard/internal/model"
)

// Merge reconciles a freshly computed run with the previously persisted board.
//
// window is the full list of months the new board tracks; freshMonths is the
// subset actually covered by this run's fetch (equal to window on a full sync,
// just the trailing month on an incremental refresh). fresh maps alias to the
// summary this run computed, indexed by freshMonths.
//
// For every month in window: a freshly computed value wins; otherwise the value
// is carried forward verbatim from the prior window; months in neither are
// zero-filled. Athletes present only in the prior board keep their history,
// athletes new to this run start with zeroed earlier months.
func Merge(prev *model.Board, prevWindow, window, freshMonths []calendar.Month, fresh map[string]*model.AthleteSummary) map[string]*model.AthleteSummary {
	merged := make(map[string]*model.AthleteSummary)

	for alias, fs := range fresh {
		merged[alias] = mergeOne(alias, prevSummary(prev, alias), prevWindow, window, freshMonths, fs)
	}
	if prev != nil {
		for alias, ps := range prev.Athletes {
			if _, done := merged[alias]; done {
				continue
			}
			merged[alias] = mergeOne(alias, ps, prevWindow, window, freshMonths, nil)
		}
	}
	return merged
}

func prevSummary(prev *model.Board, alias string) *model.AthleteSummary {
	if prev == nil {
		return nil
	}
	return prev.Athletes[alias]
}

func mergeOne(alias string, prev *model.AthleteSummary, prevWindow, window, freshMonths []calendar.Month, fresh *model.AthleteSummary) *model.AthleteSummary {
	out := &model.AthleteSummary{
		DisplayName:      alias,
		MonthlyDistances: make([]float64, len(window)),
		MonthlyTime:      make([]float64, len(window)),
		DailyDistanceKm:  make([][]float64, len(window)),
		DailyTimeMin:     make([][]float64, len(window)),
	}
	switch {
	case fresh != nil:
		out.DisplayName = fresh.DisplayName
		out.Profile = fresh.Profile
	case prev != nil:
		out.DisplayName = prev.DisplayName
		out.Profile = prev.Profile
	}

	for i, m := range window {
		if fi := calendar.IndexOf(freshMonths, m); fresh != nil && fi >= 0 && fi < len(fresh.MonthlyDistances) {
			out.MonthlyDistances[i] = fresh.MonthlyDistances[fi]
			out.MonthlyTime[i] = fresh.MonthlyTime[fi]
			out.DailyDistanceKm[i] = fresh.DailyDistanceKm[fi]
			out.DailyTimeMin[i] = fresh.DailyTimeMin[fi]
			continue
		}
		if pi := calendar.IndexOf(prevWindow, m); prev != nil && pi >= 0 && pi < len(prev.MonthlyDistances) {
			out.MonthlyDistances[i] = prev.MonthlyDistances[pi]
			out.MonthlyTime[i] = prev.MonthlyTime[pi]
			out.DailyDistanceKm[i] = prev.DailyDistanceKm[pi]
			out.DailyTimeMin[i] = prev.DailyTimeMin[pi]
			continue
		}
		out.DailyDistanceKm[i] = make([]float64, m.Days())
		out.DailyTimeMin[i] = make([]float64, m.Days())
	}
	return out
}
