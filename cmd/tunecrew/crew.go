package main

import (
	"fmt"

	"github.com/tunecrew/tunecrew/agent"
	"github.com/tunecrew/tunecrew/config"
	"github.com/tunecrew/tunecrew/logging"
	"github.com/tunecrew/tunecrew/model"
	"github.com/tunecrew/tunecrew/model/anthropic"
	"github.com/tunecrew/tunecrew/model/ollama"
	"github.com/tunecrew/tunecrew/model/openai"
	"github.com/tunecrew/tunecrew/spotify"
	"github.com/tunecrew/tunecrew/tool"
)

const noToolSyntax = "Never emit raw tool-call syntax as a final answer; always reply in natural language."

// buildModel constructs the configured inference transport.
func buildModel(cfg *config.Config) (model.Model, error) {
	switch cfg.LLM.Provider {
	case "ollama":
		return ollama.NewModel(func(o *ollama.Options) {
			if cfg.LLM.BaseURL != "" {
				o.BaseURL = cfg.LLM.BaseURL
			}
			if cfg.LLM.Model != "" {
				o.Model = cfg.LLM.Model
			}
			o.Temperature = cfg.LLM.Temperature
		}), nil
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.LLM.BaseURL != "" {
				o.BaseURL = cfg.LLM.BaseURL
			}
			if cfg.LLM.Model != "" {
				o.Model = cfg.LLM.Model
			}
			if cfg.LLM.APIKey != "" {
				o.APIKey = cfg.LLM.APIKey
			}
			if cfg.LLM.Temperature != nil {
				o.Temperature = *cfg.LLM.Temperature
			}
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.LLM.Model != "" {
				o.Model = cfg.LLM.Model
			}
			if cfg.LLM.APIKey != "" {
				o.APIKey = cfg.LLM.APIKey
			}
			if cfg.LLM.Temperature != nil {
				o.Temperature = *cfg.LLM.Temperature
			}
		}), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
}

// buildCrew wires the reference agent graph: a coordinator delegating to a
// search agent, a playlist agent and a playback agent; the playback agent
// also delegates back to the search agent to resolve names into URIs.
func buildCrew(cfg *config.Config, llm model.Model, logger logging.Logger) (*agent.Agent, error) {
	client, err := spotify.NewClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, func(o *spotify.Options) {
		o.Logger = logger
		o.UserAccessToken = cfg.Spotify.UserAccessToken
	})
	if err != nil {
		return nil, err
	}

	bounds := []agent.Option{
		agent.WithMaxIterations(cfg.Agent.MaxIterations),
		agent.WithRetryAttempts(cfg.Agent.RetryAttempts),
		agent.WithLogger(logger),
	}

	search := agent.New(
		"Spotify Search Agent",
		"You are a Spotify search specialist. Help users find tracks, artists, and get recommendations. "+
			"Use the available tools to search Spotify and provide detailed information. "+noToolSyntax,
		llm,
		append(bounds, agent.WithTools(spotify.CatalogTools(client)...))...,
	)

	playlist := agent.New(
		"Playlist Agent",
		"You are a Spotify playlist specialist. Help users explore playlists and discover music collections. "+
			"Use the available tools to get playlist information. "+noToolSyntax,
		llm,
		append(bounds, agent.WithTools(spotify.PlaylistTools(client)...))...,
	)

	playback := agent.New(
		"Playback Agent",
		"You are a Spotify playback specialist. Help users control playback and inspect their devices. "+
			"When you need a track's identity, delegate to the search agent first. "+noToolSyntax,
		llm,
		append(bounds, agent.WithTools(spotify.PlaybackTools(client)...))...,
	)
	if err := playback.RegisterTool(tool.NewAgentTool(search)); err != nil {
		return nil, err
	}

	coordinator := agent.New(
		"Coordinator Agent",
		"You are a coordinator that helps users with Spotify-related tasks. You can delegate tasks to "+
			"specialized agents: the search agent (finding tracks, artists, recommendations), the playlist "+
			"agent (playlist information) and the playback agent (devices, playback control). Decide which "+
			"agent to use based on the user's request, or handle simple queries directly. "+noToolSyntax,
		llm,
		bounds...,
	)
	if err := coordinator.RegisterTools(
		tool.NewAgentTool(search),
		tool.NewAgentTool(playlist),
		tool.NewAgentTool(playback),
	); err != nil {
		return nil, err
	}

	return coordinator, nil
}
