package notifier

import (
	"fmt"
	"sort"
	"strings"

	"StravaBoard/internal/model"
	"StravaBoard/internal/recorder"
)

// FormatLeaderboard renders the standings for one tracked month, highest
// distance first. monthIdx indexes the board's tracked window.
func FormatLeaderboard(b *model.Board, monthIdx int) string {
	if monthIdx < 0 || monthIdx >= len(b.MonthNames) {
		return "No data for that month yet."
	}

	type row struct {
		alias   string
		km      float64
		minutes float64
	}
	rows := make([]row, 0, len(b.Athletes))
	for alias, s := range b.Athletes {
		if monthIdx >= len(s.MonthlyDistances) {
			continue
		}
		rows = append(rows, row{alias, s.MonthlyDistances[monthIdx], s.MonthlyTime[monthIdx]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].km != rows[j].km {
			return rows[i].km > rows[j].km
		}
		return rows[i].alias < rows[j].alias
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 <b>Leaderboard</b> | %s\n\n", b.MonthNames[monthIdx]))
	medals := []string{"🥇", "🥈", "🥉"}
	for i, r := range rows {
		marker := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			marker = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s %s: %.2f km (%.0f min)\n", marker, r.alias, r.km, r.minutes))
	}
	if len(rows) == 0 {
		sb.WriteString("No athletes tracked yet.\n")
	}
	sb.WriteString(fmt.Sprintf("\nLast synced: %s", b.LastSynced))
	return sb.String()
}

// FormatWinner renders a closed-month winner announcement.
func FormatWinner(w *model.Winner, monthLabel string) string {
	unit := "km"
	if w.Category == model.CategoryTime {
		unit = "min"
	}
	return fmt.Sprintf("🎉 <b>%s is decided!</b>\n\nWinner: <b>%s</b> with %.2f %s\n",
		monthLabel, w.Alias, w.Score, unit)
}

// FormatSyncSummary renders one run's outcome for operator review.
func FormatSyncSummary(evt *recorder.SyncEvent) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔄 <b>Sync complete</b> (%s)\n\n", evt.Mode))
	sb.WriteString(fmt.Sprintf("Athletes updated: %d\n", len(evt.AthletesFound)))
	if len(evt.SkippedAuth) > 0 {
		sb.WriteString(fmt.Sprintf("⚠️ Token refresh failed: %s\n", strings.Join(evt.SkippedAuth, ", ")))
	}
	if len(evt.SkippedUnmapped) > 0 {
		sb.WriteString(fmt.Sprintf("⚠️ No alias configured: %s\n", strings.Join(evt.SkippedUnmapped, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Took %.1fs", evt.Duration.Seconds()))
	return sb.String()
}
