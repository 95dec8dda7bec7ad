package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Athlete is one configured athlete credential. Athletes are processed in the
// order they appear here.
type Athlete struct {
	Username     string `yaml:"username"`
	RefreshToken string `yaml:"refresh_token"`
}

// Config holds all application configuration.
type Config struct {
	Strava struct {
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		BaseURL      string `yaml:"base_url"`
	} `yaml:"strava"`
	Athletes []Athlete         `yaml:"athletes"`
	Aliases  map[string]string `yaml:"aliases"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		SyncCron    string `yaml:"sync_cron"`
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Board struct {
		DataDir      string `yaml:"data_dir"`
		WindowMonths int    `yaml:"window_months"`
	} `yaml:"board"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STRAVA_CLIENT_ID"); v != "" {
		cfg.Strava.ClientID = v
	}
	if v := os.Getenv("STRAVA_CLIENT_SECRET"); v != "" {
		cfg.Strava.ClientSecret = v
	}
	if v := os.Getenv("STRAVA_REFRESH_TOKENS"); v != "" {
		athletes, err := parseRefreshTokensJSON(v)
		if err != nil {
			return nil, err
		}
		cfg.Athletes = athletes
	}
	if v := os.Getenv("ATHLETE_ALIASES"); v != "" {
		aliases := map[string]string{}
		if err := json.Unmarshal([]byte(v), &aliases); err != nil {
			return nil, fmt.Errorf("parse ATHLETE_ALIASES: %w", err)
		}
		cfg.Aliases = aliases
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_SYNC"); v != "" {
		cfg.Schedule.SyncCron = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Board.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Schedule.SyncCron == "" {
		cfg.Schedule.SyncCron = "0 0 5 * * *" // full window, nightly
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 30 */4 * * *" // current month, every 4h
	}
	if cfg.Board.DataDir == "" {
		cfg.Board.DataDir = "data"
	}
	if cfg.Board.WindowMonths == 0 {
		cfg.Board.WindowMonths = 3
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stravaboard.db"
	}

	return cfg, nil
}

// parseRefreshTokensJSON decodes the {"username": {"refresh_token": "..."}} env
// form. JSON objects carry no order, so usernames are sorted to keep the run
// order stable between invocations.
func parseRefreshTokensJSON(raw string) ([]Athlete, error) {
	var decoded map[string]struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("parse STRAVA_REFRESH_TOKENS: %w", err)
	}
	usernames := make([]string, 0, len(decoded))
	for name := range decoded {
		usernames = append(usernames, name)
	}
	sort.Strings(usernames)
	athletes := make([]Athlete, len(usernames))
	for i, name := range usernames {
		athletes[i] = Athlete{Username: name, RefreshToken: decoded[name].RefreshToken}
	}
	return athletes, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Strava.ClientID == "" {
		return fmt.Errorf("strava.client_id is required")
	}
	if c.Strava.ClientSecret == "" {
		return fmt.Errorf("strava.client_secret is required")
	}
	if len(c.Athletes) == 0 {
		return fmt.Errorf("at least one athlete credential is required")
	}
	if c.Board.WindowMonths < 1 {
		return fmt.Errorf("board.window_months must be positive")
	}
	return nil
}
