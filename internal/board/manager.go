package board

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"StravaBoard/internal/calendar"
	"StravaBoard/internal/model"
)

// lastSyncedLayout is the display-timezone timestamp format the frontend shows.
const lastSyncedLayout = "02-01-2006 15:04"

// Manager owns the persisted leaderboard artifacts under one data directory.
type Manager struct {
	mu      sync.Mutex
	dataDir string
	board   *model.Board
}

// NewManager creates a Manager, loading the prior board from disk if present.
func NewManager(dataDir string) (*Manager, error) {
	b, err := Load(filepath.Join(dataDir, "athletes.json"))
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return &Manager{dataDir: dataDir, board: b}, nil
}

// Snapshot returns the current board. Callers treat it as read-only input to a
// merge; Commit installs the replacement.
func (m *Manager) Snapshot() *model.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board
}

// Window returns the months the current board tracks, derived from its labels.
// Empty on a fresh install or if the artifact predates this format.
func (m *Manager) Window() []calendar.Month {
	m.mu.Lock()
	defer m.mu.Unlock()
	var window []calendar.Month
	for _, label := range m.board.MonthNames {
		mo, ok := calendar.ParseLabel(label)
		if !ok {
			return nil
		}
		window = append(window, mo)
	}
	return window
}

// Commit installs and persists a freshly merged board for the given window.
func (m *Manager) Commit(window []calendar.Month, athletes map[string]*model.AthleteSummary, syncedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &model.Board{
		Athletes:   athletes,
		MonthNames: calendar.Labels(window),
		LastSynced: syncedAt.Format(lastSyncedLayout),
	}
	if err := Save(filepath.Join(m.dataDir, "athletes.json"), b); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	m.board = b
	return nil
}

// ChallengeEntry is one athlete's row in a per-activity-type challenge file.
// Distance-classified types carry the distance fields, the duration class the
// time fields; the daily array is nested one level to mirror the board shape.
type ChallengeEntry struct {
	DisplayName      string      `json:"display_name"`
	Profile          string      `json:"profile"`
	MonthlyDistances *float64    `json:"monthly_distances,omitempty"`
	MonthlyTime      *float64    `json:"monthly_time,omitempty"`
	DailyDistanceKm  [][]float64 `json:"daily_distance_km,omitempty"`
	DailyTimeMin     [][]float64 `json:"daily_time_min,omitempty"`
}

// NewChallengeEntry builds an entry for one athlete and one challenge type.
func NewChallengeEntry(alias, profile, actType string, total float64, daily []float64) ChallengeEntry {
	e := ChallengeEntry{DisplayName: alias, Profile: profile}
	if model.IsDistanceType(actType) {
		e.MonthlyDistances = &total
		e.DailyDistanceKm = [][]float64{daily}
	} else {
		e.MonthlyTime = &total
		e.DailyTimeMin = [][]float64{daily}
	}
	return e
}

// challengeFile is the artifact written per challenge type for the current month.
type challengeFile struct {
	Athletes   map[string]ChallengeEntry `json:"athletes"`
	MonthNames []string                  `json:"month_names"`
	LastSynced string                    `json:"last_synced"`
}

// WriteChallenge persists the current-month challenge file for one activity
// type, e.g. data/Mar_Challenge_Run.json.
func (m *Manager) WriteChallenge(month calendar.Month, actType string, entries map[string]ChallengeEntry, syncedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := challengeFile{
		Athletes:   entries,
		MonthNames: []string{fmt.Sprintf("%s %d", month.Abbr(), month.Year)},
		LastSynced: syncedAt.Format(lastSyncedLayout),
	}
	path := filepath.Join(m.dataDir, fmt.Sprintf("%s_Challenge_%s.json", month.Abbr(), actType))
	if err := saveJSON(path, f); err != nil {
		return fmt.Errorf("save challenge %s: %w", actType, err)
	}
	return nil
}
