package aggregate

import (
	"sort"

	"StravaBoard/internal/calendar"
	"StravaBoard/internal/model"
)

// SelectWinner picks the winner of one tracked month from merged summaries.
// The score is the athlete's monthly distance (km) for CategoryDistance or
// monthly time (minutes) for CategoryTime. The strictly greatest score wins;
// ties break to the first athlete in enumeration order, which is the sorted
// alias list so repeated runs agree. ok is false when no athlete scored above
// zero, in which case no ledger entry should be written.
func SelectWinner(athletes map[string]*model.AthleteSummary, window []calendar.Month, month calendar.Month, category model.WinnerCategory) (model.Winner, bool) {
	idx := calendar.IndexOf(window, month)
	if idx < 0 {
		return model.Winner{}, false
	}

	aliases := make([]string, 0, len(athletes))
	for alias := range athletes {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	var best model.Winner
	for _, alias := range aliases {
		s := athletes[alias]
		var score float64
		switch category {
		case model.CategoryTime:
			if idx < len(s.MonthlyTime) {
				score = s.MonthlyTime[idx]
			}
		default:
			if idx < len(s.MonthlyDistances) {
				score = s.MonthlyDistances[idx]
			}
		}
		if score > best.Score {
			best = model.Winner{
				MonthKey: month.Key(),
				Alias:    alias,
				Score:    score,
				Category: category,
				Profile:  s.Profile,
			}
		}
	}
	return best, best.Score > 0
}
