package spotify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tunecrew/tunecrew/tool"
)

// Toolkit constructors expose client capabilities as tools. Results are
// serialized as indented JSON so the model reads structured records rather
// than Go value dumps. Each call builds fresh tool instances: a tool is
// owned by exactly one agent's registry.

// CatalogTools returns the search, track, artist and recommendation tools.
func CatalogTools(c *Client) []tool.Tool {
	return []tool.Tool{
		tool.NewFunctionTool(
			"search_track",
			"Search for tracks on Spotify by query string",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search query (song name, artist, album, etc.)",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Number of results to return (default 5)",
					},
				},
				"required": []string{"query"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				tracks, err := c.SearchTracks(ctx, stringArg(args, "query"), intArg(args, "limit"))
				if err != nil {
					return "", err
				}
				return marshal(map[string]any{"tracks": tracks})
			},
		),
		tool.NewFunctionTool(
			"get_track_info",
			"Get detailed information about a specific track by ID",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"track_id": map[string]any{
						"type":        "string",
						"description": "Spotify track ID",
					},
				},
				"required": []string{"track_id"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				track, err := c.Track(ctx, stringArg(args, "track_id"))
				if err != nil {
					return "", err
				}
				return marshal(track)
			},
		),
		tool.NewFunctionTool(
			"get_artist_info",
			"Get detailed information about an artist by ID",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"artist_id": map[string]any{
						"type":        "string",
						"description": "Spotify artist ID",
					},
				},
				"required": []string{"artist_id"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				artist, err := c.Artist(ctx, stringArg(args, "artist_id"))
				if err != nil {
					return "", err
				}
				return marshal(artist)
			},
		),
		tool.NewFunctionTool(
			"get_recommendations",
			"Get track recommendations based on seed track IDs",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"seed_tracks": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "List of track IDs to base recommendations on (max 5)",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Number of recommendations to return (default 5)",
					},
				},
				"required": []string{"seed_tracks"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				tracks, err := c.Recommendations(ctx, stringSliceArg(args, "seed_tracks"), intArg(args, "limit"))
				if err != nil {
					return "", err
				}
				return marshal(map[string]any{"recommendations": tracks})
			},
		),
	}
}

// PlaylistTools returns the playlist lookup tool.
func PlaylistTools(c *Client) []tool.Tool {
	return []tool.Tool{
		tool.NewFunctionTool(
			"get_playlist",
			"Get playlist information and tracks by playlist ID",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"playlist_id": map[string]any{
						"type":        "string",
						"description": "Spotify playlist ID",
					},
				},
				"required": []string{"playlist_id"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				pl, err := c.Playlist(ctx, stringArg(args, "playlist_id"))
				if err != nil {
					return "", err
				}
				return marshal(pl)
			},
		),
	}
}

// PlaybackTools returns the device query and playback control tools.
func PlaybackTools(c *Client) []tool.Tool {
	return []tool.Tool{
		tool.NewFunctionTool(
			"list_devices",
			"List the user's available Spotify playback devices",
			map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				devices, err := c.Devices(ctx)
				if err != nil {
					return "", err
				}
				return marshal(map[string]any{"devices": devices})
			},
		),
		tool.NewFunctionTool(
			"control_playback",
			"Control playback: action is one of play, pause, next; device_id is optional",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"action": map[string]any{
						"type":        "string",
						"description": "Playback action: play, pause or next",
					},
					"device_id": map[string]any{
						"type":        "string",
						"description": "Target device ID (defaults to the active device)",
					},
				},
				"required": []string{"action"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				action := stringArg(args, "action")
				deviceID := stringArg(args, "device_id")
				var err error
				switch action {
				case "play":
					err = c.StartPlayback(ctx, deviceID)
				case "pause":
					err = c.PausePlayback(ctx, deviceID)
				case "next":
					err = c.SkipToNext(ctx, deviceID)
				default:
					return "", fmt.Errorf("unknown playback action %q (want play, pause or next)", action)
				}
				if err != nil {
					return "", err
				}
				return marshal(map[string]any{"ok": true, "action": action})
			},
		),
	}
}

// AllTools returns every Spotify tool: catalog, playlist and playback.
func AllTools(c *Client) []tool.Tool {
	tools := CatalogTools(c)
	tools = append(tools, PlaylistTools(c)...)
	tools = append(tools, PlaybackTools(c)...)
	return tools
}

func marshal(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize result: %w", err)
	}
	return string(b), nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func stringSliceArg(args map[string]any, key string) []string {
	raw, _ := args[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
