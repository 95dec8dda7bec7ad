package strava

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"StravaBoard/internal/model"
)

const perPage = 200

// Client implements Source against the Strava v3 REST API.
type Client struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
}

// NewClient creates a Client with optional proxy support.
func NewClient(baseURL, clientID, clientSecret, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://www.strava.com"
	}
	return &Client{
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *Client) Name() string { return "strava" }

// RefreshToken performs the refresh_token grant against the OAuth endpoint.
func (c *Client) RefreshToken(refreshToken string) (string, error) {
	form := url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	resp, err := c.HTTPClient.PostForm(c.BaseURL+"/oauth/token", form)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("refresh token: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh token: status %d, body: %s", resp.StatusCode, string(body))
	}
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("refresh token: decode: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("refresh token: no access_token in response: %s", string(body))
	}
	return result.AccessToken, nil
}

// rawActivity is the loose JSON shape of one activity. Absent numeric fields
// default to zero; start_date_local is parsed separately so a malformed value
// drops only that record.
type rawActivity struct {
	ID             int64   `json:"id"`
	Type           string  `json:"type"`
	StartDateLocal string  `json:"start_date_local"`
	Distance       float64 `json:"distance"`
	MovingTime     float64 `json:"moving_time"`
}

// FetchActivities pages through /athlete/activities from the given instant.
// A non-success status mid-pagination is logged and the records collected so
// far are returned; the caller treats the gap as zero activities.
func (c *Client) FetchActivities(accessToken string, after time.Time) ([]model.ActivityRecord, error) {
	var records []model.ActivityRecord
	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s/api/v3/athlete/activities?after=%d&per_page=%d&page=%d",
			c.BaseURL, after.Unix(), perPage, page)
		raws, err := c.fetchPage(accessToken, endpoint)
		if err != nil {
			log.Printf("[WARN] fetch activities page %d: %v", page, err)
			return records, nil
		}
		if len(raws) == 0 {
			return records, nil
		}
		for _, raw := range raws {
			rec, err := raw.toRecord()
			if err != nil {
				log.Printf("[WARN] dropping malformed activity %d: %v", raw.ID, err)
				continue
			}
			records = append(records, rec)
		}
	}
}

func (c *Client) fetchPage(accessToken, endpoint string) ([]rawActivity, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch page: status %d, body: %s", resp.StatusCode, string(body))
	}
	var raws []rawActivity
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return raws, nil
}

func (r rawActivity) toRecord() (model.ActivityRecord, error) {
	start, err := parseLocalStart(r.StartDateLocal)
	if err != nil {
		return model.ActivityRecord{}, err
	}
	return model.ActivityRecord{
		ID:         r.ID,
		Type:       r.Type,
		StartLocal: start,
		Distance:   r.Distance,
		MovingTime: r.MovingTime,
	}, nil
}

// parseLocalStart accepts the offset-suffixed form the API documents and the
// bare "Z" form it actually returns for start_date_local.
func parseLocalStart(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty start_date_local")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable start_date_local %q", s)
}

// FetchProfile returns the athlete's profile image URL. Any failure degrades to
// an empty string with a logged warning: the image is decorative.
func (c *Client) FetchProfile(accessToken string) (string, error) {
	req, err := http.NewRequest("GET", c.BaseURL+"/api/v3/athlete", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch profile: status %d", resp.StatusCode)
	}
	var profile struct {
		Profile string `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", fmt.Errorf("decode profile: %w", err)
	}
	return profile.Profile, nil
}
