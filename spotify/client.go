// Package spotify is a thin data-fetching wrapper over the Spotify Web API.
// It authenticates via the client-credentials flow for catalog reads and
// accepts a user access token for the player endpoints, returning flat
// records shaped for serialization into tool results.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tunecrew/tunecrew/logging"
)

const (
	defaultAPIBase  = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
	defaultTimeout  = 30 * time.Second

	// tokenSlack renews tokens slightly before their reported expiry.
	tokenSlack = 30 * time.Second
)

// Options configure the Spotify client.
type Options struct {
	APIBase    string
	TokenURL   string
	HTTPClient *http.Client
	Logger     logging.Logger

	// UserAccessToken, when set, is used for the player endpoints which
	// the client-credentials flow cannot reach.
	UserAccessToken string
}

// Client talks to the Spotify Web API.
type Client struct {
	clientID     string
	clientSecret string
	opts         Options
	httpClient   *http.Client
	logger       logging.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a client with the given application credentials.
func NewClient(clientID, clientSecret string, optFns ...func(o *Options)) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify client id and secret must be set")
	}
	opts := Options{
		APIBase:  defaultAPIBase,
		TokenURL: defaultTokenURL,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		opts:         opts,
		httpClient:   httpClient,
		logger:       logging.OrNoOp(opts.Logger),
	}, nil
}

// token returns a valid client-credentials access token, refreshing when
// expired.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("spotify token endpoint: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("spotify token endpoint returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	c.accessToken = out.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(out.ExpiresIn)*time.Second - tokenSlack)
	c.logger.Debug("spotify.token.refreshed", "expires_in", out.ExpiresIn)
	return c.accessToken, nil
}

// get performs an authenticated GET and decodes the JSON body into dst.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	return c.do(ctx, http.MethodGet, path, query, dst, false)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, dst any, userAuth bool) error {
	var bearer string
	if userAuth {
		if c.opts.UserAccessToken == "" {
			return fmt.Errorf("a user access token is required for %s (client credentials cannot control playback)", path)
		}
		bearer = c.opts.UserAccessToken
	} else {
		tok, err := c.token(ctx)
		if err != nil {
			return err
		}
		bearer = tok
	}

	u := c.opts.APIBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spotify api: %w", err)
	}
	defer resp.Body.Close()
	c.logger.Debug("spotify.api.call", "method", method, "path", path,
		"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("spotify api returned status %d for %s: %s", resp.StatusCode, path, string(snippet))
	}
	if dst == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}

// CheckAuth verifies the application credentials by forcing a token fetch.
// Used by the doctor command.
func (c *Client) CheckAuth(ctx context.Context) error {
	_, err := c.token(ctx)
	return err
}

// SearchTracks searches the catalog by free-text query.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	if limit <= 0 {
		limit = 5
	}
	q := url.Values{
		"q":     {query},
		"type":  {"track"},
		"limit": {strconv.Itoa(limit)},
	}
	var out struct {
		Tracks struct {
			Items []trackObject `json:"items"`
		} `json:"tracks"`
	}
	if err := c.get(ctx, "/search", q, &out); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(out.Tracks.Items))
	for _, item := range out.Tracks.Items {
		tracks = append(tracks, item.toTrack())
	}
	return tracks, nil
}

// Track fetches detailed information about a single track.
func (c *Client) Track(ctx context.Context, id string) (*TrackDetail, error) {
	var out trackObject
	if err := c.get(ctx, "/tracks/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	detail := out.toDetail()
	return &detail, nil
}

// Artist fetches detailed information about an artist.
func (c *Client) Artist(ctx context.Context, id string) (*Artist, error) {
	var out struct {
		Name       string   `json:"name"`
		Genres     []string `json:"genres"`
		Popularity int      `json:"popularity"`
		Followers  struct {
			Total int `json:"total"`
		} `json:"followers"`
		URI string `json:"uri"`
	}
	if err := c.get(ctx, "/artists/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &Artist{
		Name:       out.Name,
		Genres:     out.Genres,
		Popularity: out.Popularity,
		Followers:  out.Followers.Total,
		URI:        out.URI,
	}, nil
}

// Recommendations fetches track recommendations for up to five seed tracks.
func (c *Client) Recommendations(ctx context.Context, seedTracks []string, limit int) ([]Track, error) {
	if len(seedTracks) == 0 {
		return nil, fmt.Errorf("at least one seed track is required")
	}
	if len(seedTracks) > 5 {
		seedTracks = seedTracks[:5]
	}
	if limit <= 0 {
		limit = 5
	}
	q := url.Values{
		"seed_tracks": {strings.Join(seedTracks, ",")},
		"limit":       {strconv.Itoa(limit)},
	}
	var out struct {
		Tracks []trackObject `json:"tracks"`
	}
	if err := c.get(ctx, "/recommendations", q, &out); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(out.Tracks))
	for _, item := range out.Tracks {
		tracks = append(tracks, item.toTrack())
	}
	return tracks, nil
}

// Playlist fetches playlist metadata plus its first tracks (capped at ten,
// enough for a conversational summary without flooding the model context).
func (c *Client) Playlist(ctx context.Context, id string) (*Playlist, error) {
	var out struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Tracks      struct {
			Items []struct {
				Track *trackObject `json:"track"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := c.get(ctx, "/playlists/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	pl := &Playlist{Name: out.Name, Description: out.Description}
	for _, item := range out.Tracks.Items {
		if item.Track == nil {
			continue
		}
		pl.Tracks = append(pl.Tracks, item.Track.toTrack())
		if len(pl.Tracks) >= 10 {
			break
		}
	}
	return pl, nil
}

// Devices lists the user's available playback devices.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var out struct {
		Devices []Device `json:"devices"`
	}
	if err := c.do(ctx, http.MethodGet, "/me/player/devices", nil, &out, true); err != nil {
		return nil, err
	}
	return out.Devices, nil
}

// StartPlayback resumes or starts playback on the given device ("" for the
// active device).
func (c *Client) StartPlayback(ctx context.Context, deviceID string) error {
	return c.player(ctx, "/me/player/play", deviceID)
}

// PausePlayback pauses playback.
func (c *Client) PausePlayback(ctx context.Context, deviceID string) error {
	return c.player(ctx, "/me/player/pause", deviceID)
}

// SkipToNext advances to the next track in the queue.
func (c *Client) SkipToNext(ctx context.Context, deviceID string) error {
	return c.do(ctx, http.MethodPost, withDevice("/me/player/next", deviceID), nil, nil, true)
}

func (c *Client) player(ctx context.Context, path, deviceID string) error {
	return c.do(ctx, http.MethodPut, withDevice(path, deviceID), nil, nil, true)
}

func withDevice(path, deviceID string) string {
	if deviceID == "" {
		return path
	}
	return path + "?device_id=" + url.QueryEscape(deviceID)
}
