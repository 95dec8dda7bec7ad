package recorder

import "StravaBoard/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
// It reports every month as unrecorded; only the durable ledger is absent.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) HasWinner(_ string) (bool, error)          { return false, nil }
func (n *NoopRecorder) RecordWinner(_ *model.Winner) error        { return nil }
func (n *NoopRecorder) WinnerFor(_ string) (*model.Winner, error) { return nil, nil }
func (n *NoopRecorder) RecordSync(_ *SyncEvent) error             { return nil }
func (n *NoopRecorder) Close() error                              { return nil }
