package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"StravaBoard/internal/aggregate"
	"StravaBoard/internal/alias"
	"StravaBoard/internal/board"
	"StravaBoard/internal/calendar"
	"StravaBoard/internal/config"
	"StravaBoard/internal/model"
	"StravaBoard/internal/notifier"
	"StravaBoard/internal/recorder"
	"StravaBoard/internal/strava"

	"github.com/robfig/cron/v3"
)

// Run modes. A full sync refetches the whole rolling window; a refresh only
// refetches the current month and carries older months forward from the
// persisted board.
const (
	ModeFull    = "FULL"
	ModeRefresh = "REFRESH"
)

// Scheduler manages the cron tasks and runs the aggregation pipeline.
type Scheduler struct {
	Cron         *cron.Cron
	Source       strava.Source
	Aliases      *alias.Resolver
	Board        *board.Manager
	Recorder     recorder.Recorder
	Notifier     notifier.Sender
	Athletes     []config.Athlete
	WindowMonths int
	Ctx          context.Context

	// Now returns the current UTC instant; overridable in tests.
	Now func() time.Time

	runMu sync.Mutex // one run at a time; cron jobs may otherwise overlap
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, src strava.Source, aliases *alias.Resolver, bm *board.Manager, rec recorder.Recorder, send notifier.Sender, athletes []config.Athlete, windowMonths int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Source:       src,
		Aliases:      aliases,
		Board:        bm,
		Recorder:     rec,
		Notifier:     send,
		Athletes:     athletes,
		WindowMonths: windowMonths,
		Ctx:          ctx,
		Now:          func() time.Time { return time.Now().UTC() },
	}
}

// RegisterAll registers the full-sync and current-month refresh tasks.
func (s *Scheduler) RegisterAll(syncCron, refreshCron string) error {
	if _, err := s.Cron.AddFunc(syncCron, func() { s.runSync(ModeFull) }); err != nil {
		return fmt.Errorf("register sync task: %w", err)
	}
	if _, err := s.Cron.AddFunc(refreshCron, func() { s.runSync(ModeRefresh) }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunFullSyncNow executes a full sync immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunFullSyncNow() {
	s.runSync(ModeFull)
}

func (s *Scheduler) runSync(mode string) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	started := time.Now()
	log.Printf("[INFO] running %s sync", mode)

	nowUK := calendar.DisplayNow(s.Now())
	window := calendar.RollingWindow(nowUK, s.WindowMonths)
	freshMonths := window
	if mode == ModeRefresh {
		freshMonths = window[len(window)-1:]
	}
	after := freshMonths[0].Start()

	prevBoard := s.Board.Snapshot()
	prevWindow := s.Board.Window()

	fresh := make(map[string]*model.AthleteSummary)
	rawByAlias := make(map[string][]model.ActivityRecord)
	profiles := make(map[string]string)
	var found, skippedAuth, skippedUnmapped []string

	for _, athlete := range s.Athletes {
		token, err := s.Source.RefreshToken(athlete.RefreshToken)
		if err != nil {
			log.Printf("[WARN] token refresh failed for %q: %v", athlete.Username, err)
			skippedAuth = append(skippedAuth, athlete.Username)
			continue
		}

		aliasName, ok := s.Aliases.Resolve(athlete.Username)
		if !ok {
			log.Printf("[INFO] skipping %q: no alias configured", athlete.Username)
			skippedUnmapped = append(skippedUnmapped, athlete.Username)
			continue
		}

		records, err := s.Source.FetchActivities(token, after)
		if err != nil {
			// Treated as zero activities; the athlete still gets processed.
			log.Printf("[WARN] fetch activities for %q: %v", athlete.Username, err)
			records = nil
		}

		profile, err := s.Source.FetchProfile(token)
		if err != nil {
			log.Printf("[WARN] fetch profile for %q: %v", athlete.Username, err)
			profile = ""
		}

		b := aggregate.NewBucketer(freshMonths, model.AcceptedTypes)
		b.AddAll(records)
		fresh[aliasName] = b.Summary(aliasName, profile)
		rawByAlias[aliasName] = records
		profiles[aliasName] = profile
		found = append(found, aliasName)
	}

	merged := aggregate.Merge(prevBoard, prevWindow, window, freshMonths, fresh)
	if err := s.Board.Commit(window, merged, nowUK); err != nil {
		log.Printf("[ERROR] commit board: %v", err)
	}

	s.writeChallengeFiles(window[len(window)-1], rawByAlias, profiles, nowUK)
	s.decideWinners(merged, window)

	evt := &recorder.SyncEvent{
		Mode:            mode,
		AthletesFound:   found,
		SkippedAuth:     skippedAuth,
		SkippedUnmapped: skippedUnmapped,
		Duration:        time.Since(started),
	}
	if err := s.Recorder.RecordSync(evt); err != nil {
		log.Printf("[ERROR] record sync: %v", err)
	}
	s.trySend(notifier.FormatSyncSummary(evt))
	log.Printf("[INFO] %s sync done: %d updated, %d auth-skipped, %d unmapped",
		mode, len(found), len(skippedAuth), len(skippedUnmapped))
}

// writeChallengeFiles persists the per-activity-type current-month artifacts.
func (s *Scheduler) writeChallengeFiles(current calendar.Month, rawByAlias map[string][]model.ActivityRecord, profiles map[string]string, nowUK time.Time) {
	for _, actType := range model.ChallengeTypes() {
		entries := make(map[string]board.ChallengeEntry, len(rawByAlias))
		for aliasName, records := range rawByAlias {
			total, daily := aggregate.ChallengeTotals(records, actType, current)
			entries[aliasName] = board.NewChallengeEntry(aliasName, profiles[aliasName], actType, total, daily)
		}
		if err := s.Board.WriteChallenge(current, actType, entries, nowUK); err != nil {
			log.Printf("[ERROR] write challenge %s: %v", actType, err)
		}
	}
}

// decideWinners records winners for every closed tracked month that has no
// ledger entry yet. The current (in-progress) month is never decided.
func (s *Scheduler) decideWinners(merged map[string]*model.AthleteSummary, window []calendar.Month) {
	for _, m := range window[:len(window)-1] {
		has, err := s.Recorder.HasWinner(m.Key())
		if err != nil {
			log.Printf("[ERROR] check ledger for %s: %v", m.Key(), err)
			continue
		}
		if has {
			continue
		}
		w, ok := aggregate.SelectWinner(merged, window, m, model.CategoryDistance)
		if !ok {
			continue
		}
		if err := s.Recorder.RecordWinner(&w); err != nil {
			log.Printf("[ERROR] record winner for %s: %v", m.Key(), err)
			continue
		}
		log.Printf("[INFO] winner recorded for %s: %s (%.2f km)", m.Key(), w.Alias, w.Score)
		s.trySend(notifier.FormatWinner(&w, m.Label()))
	}
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/leaderboard":
		b := s.Board.Snapshot()
		return notifier.FormatLeaderboard(b, len(b.MonthNames)-1)
	case "/sync":
		s.runSync(ModeFull)
		return ""
	case "/status":
		b := s.Board.Snapshot()
		return fmt.Sprintf("Tracking %d months, %d athletes.\nLast synced: %s",
			len(b.MonthNames), len(b.Athletes), b.LastSynced)
	default:
		return "Available commands:\n• /leaderboard\n• /sync\n• /status"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
