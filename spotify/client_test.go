package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a client against two httptest servers, one playing the
// accounts token endpoint and one playing the Web API.
func newTestClient(t *testing.T, api http.HandlerFunc, userToken string) (*Client, *int) {
	t.Helper()

	tokenCalls := 0
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "id-123", user)
		assert.Equal(t, "secret-456", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-abc",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	c, err := NewClient("id-123", "secret-456", func(o *Options) {
		o.APIBase = apiSrv.URL
		o.TokenURL = tokenSrv.URL
		o.UserAccessToken = userToken
	})
	require.NoError(t, err)
	return c, &tokenCalls
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient("", "secret")
	assert.Error(t, err)
	_, err = NewClient("id", "")
	assert.Error(t, err)
}

func TestSearchTracks(t *testing.T) {
	c, tokenCalls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "instant crush", r.URL.Query().Get("q"))
		assert.Equal(t, "track", r.URL.Query().Get("type"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"tracks": map[string]any{
				"items": []map[string]any{{
					"id":   "t1",
					"name": "Instant Crush",
					"artists": []map[string]any{
						{"name": "Daft Punk"},
						{"name": "Julian Casablancas"},
					},
					"album": map[string]any{"name": "Random Access Memories"},
					"uri":   "spotify:track:t1",
				}},
			},
		})
	}, "")

	tracks, err := c.SearchTracks(context.Background(), "instant crush", 3)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Instant Crush", tracks[0].Name)
	assert.Equal(t, "Daft Punk", tracks[0].Artist)
	assert.Equal(t, "Random Access Memories", tracks[0].Album)
	assert.Equal(t, 1, *tokenCalls)
}

func TestTokenIsCachedAcrossCalls(t *testing.T) {
	c, tokenCalls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"tracks": map[string]any{"items": []any{}}})
	}, "")

	for i := 0; i < 3; i++ {
		_, err := c.SearchTracks(context.Background(), "anything", 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, *tokenCalls)
}

func TestAPIErrorSurfacesStatusAndBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"status": 404, "message": "non existing id"}}`, http.StatusNotFound)
	}, "")

	_, err := c.Track(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "non existing id")
}

func TestPlayerEndpointsRequireUserToken(t *testing.T) {
	c, tokenCalls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("api must not be reached without a user token")
	}, "")

	err := c.StartPlayback(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user access token is required")

	_, err = c.Devices(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, *tokenCalls)
}

func TestPlayerEndpointsUseUserToken(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotDevice string
	c, tokenCalls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDevice = r.URL.Query().Get("device_id")
		w.WriteHeader(http.StatusNoContent)
	}, "user-tok")

	require.NoError(t, c.PausePlayback(context.Background(), "dev-9"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/me/player/pause", gotPath)
	assert.Equal(t, "Bearer user-tok", gotAuth)
	assert.Equal(t, "dev-9", gotDevice)

	require.NoError(t, c.SkipToNext(context.Background(), ""))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/me/player/next", gotPath)

	// Player calls ride the user token, never the app token.
	assert.Equal(t, 0, *tokenCalls)
}

func TestRecommendationsCapsSeeds(t *testing.T) {
	var gotSeeds string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSeeds = r.URL.Query().Get("seed_tracks")
		json.NewEncoder(w).Encode(map[string]any{"tracks": []any{}})
	}, "")

	seeds := []string{"a", "b", "c", "d", "e", "f", "g"}
	_, err := c.Recommendations(context.Background(), seeds, 5)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c,d,e", gotSeeds)

	_, err = c.Recommendations(context.Background(), nil, 5)
	assert.Error(t, err)
}

func TestPlaylistCapsTracksAtTen(t *testing.T) {
	items := make([]map[string]any, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, map[string]any{
			"track": map[string]any{"id": "t", "name": "Song", "artists": []any{}, "album": map[string]any{}},
		})
	}
	// A withdrawn track arrives as null and must be skipped.
	items[3]["track"] = nil

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"name":        "Focus Mix",
			"description": "Deep work",
			"tracks":      map[string]any{"items": items},
		})
	}, "")

	pl, err := c.Playlist(context.Background(), "pl1")
	require.NoError(t, err)
	assert.Equal(t, "Focus Mix", pl.Name)
	assert.Len(t, pl.Tracks, 10)
}

func TestCheckAuth(t *testing.T) {
	c, tokenCalls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, "")
	require.NoError(t, c.CheckAuth(context.Background()))
	assert.Equal(t, 1, *tokenCalls)
}
