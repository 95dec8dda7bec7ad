package strava

import (
	"time"

	"StravaBoard/internal/model"
)

// Source defines the interface for fetching athlete data from the provider.
type Source interface {
	// RefreshToken exchanges a long-lived refresh token for an access token.
	RefreshToken(refreshToken string) (string, error)
	// FetchActivities returns every activity with a local start time at or after
	// the given instant. The sequence is exhaustive but may contain duplicates
	// from page overlap; callers deduplicate by ID.
	FetchActivities(accessToken string, after time.Time) ([]model.ActivityRecord, error)
	// FetchProfile returns the athlete's profile image URL, "" when absent.
	FetchProfile(accessToken string) (string, error)
	Name() string
}
