package strava

import (
	"time"

	"StravaBoard/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Activities map[string][]model.ActivityRecord // keyed by refresh token
	Profiles   map[string]string
	AuthFail   map[string]error // refresh tokens whose renewal fails
	FetchErr   error
}

func (m *MockSource) Name() string { return "mock" }

// RefreshToken echoes the refresh token back as the access token so test
// fixtures can key activities by credential.
func (m *MockSource) RefreshToken(refreshToken string) (string, error) {
	if err := m.AuthFail[refreshToken]; err != nil {
		return "", err
	}
	return refreshToken, nil
}

func (m *MockSource) FetchActivities(accessToken string, after time.Time) ([]model.ActivityRecord, error) {
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	var out []model.ActivityRecord
	for _, rec := range m.Activities[accessToken] {
		if !rec.StartLocal.Before(after) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *MockSource) FetchProfile(accessToken string) (string, error) {
	return m.Profiles[accessToken], nil
}
