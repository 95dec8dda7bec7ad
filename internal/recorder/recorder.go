package recorder

import (
	"time"

	"StravaBoard/internal/model"
)

// SyncEvent records the outcome of one aggregation run.
type SyncEvent struct {
	Mode            string // "FULL" or "REFRESH"
	AthletesFound   []string
	SkippedAuth     []string // token refresh failed
	SkippedUnmapped []string // no alias configured
	Duration        time.Duration
}

// Recorder persists the winner ledger and run history.
//
// The winner ledger is append-only: RecordWinner for a month key that is
// already present must be a no-op, so re-computation of a closed period can
// never change its recorded outcome.
type Recorder interface {
	HasWinner(monthKey string) (bool, error)
	RecordWinner(w *model.Winner) error
	WinnerFor(monthKey string) (*model.Winner, error)
	RecordSync(evt *SyncEvent) error
	Close() error
}
