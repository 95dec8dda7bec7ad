package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StravaBoard/internal/alias"
	"StravaBoard/internal/board"
	"StravaBoard/internal/config"
	"StravaBoard/internal/notifier"
	"StravaBoard/internal/recorder"
	"StravaBoard/internal/scheduler"
	"StravaBoard/internal/strava"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StravaBoard starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init Strava client
	src := strava.NewClient(cfg.Strava.BaseURL, cfg.Strava.ClientID, cfg.Strava.ClientSecret, cfg.Proxy)
	log.Printf("[INFO] activity source: %s, %d athletes configured", src.Name(), len(cfg.Athletes))

	// Init alias resolver
	aliases := alias.NewResolver(cfg.Aliases)
	if aliases.Len() == 0 {
		log.Println("[WARN] no aliases configured; every athlete will be skipped as unmapped")
	}

	// Init board manager
	bm, err := board.NewManager(cfg.Board.DataDir)
	if err != nil {
		log.Fatalf("[FATAL] init board manager: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init Telegram notifier (optional)
	var send notifier.Sender = notifier.NoopSender{}
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		send = tn
	} else {
		log.Println("[INFO] Telegram not configured, announcements disabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, src, aliases, bm, rec, send, cfg.Athletes, cfg.Board.WindowMonths)
	if err := sched.RegisterAll(cfg.Schedule.SyncCron, cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing full sync now")
		go sched.RunFullSyncNow()
	}

	log.Println("[INFO] StravaBoard is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StravaBoard stopped")
}
