package model

// AthleteSummary holds one athlete's aggregated totals for the tracked window.
// All month-indexed slices share the window's order, oldest first. Daily arrays
// always have exactly as many entries as the calendar month has days.
type AthleteSummary struct {
	DisplayName      string      `json:"display_name"`
	Profile          string      `json:"profile"`
	MonthlyDistances []float64   `json:"monthly_distances"` // km, 2 decimals
	MonthlyTime      []float64   `json:"monthly_time"`      // minutes, 2 decimals
	DailyDistanceKm  [][]float64 `json:"daily_distance_km"`
	DailyTimeMin     [][]float64 `json:"daily_time_min"`
}

// Board is the persisted leaderboard artifact: every mapped athlete's summary
// over the tracked months, plus display metadata for the frontend.
type Board struct {
	Athletes   map[string]*AthleteSummary `json:"athletes"`
	MonthNames []string                   `json:"month_names"`
	LastSynced string                     `json:"last_synced"` // display timezone, "02-01-2006 15:04"
}
