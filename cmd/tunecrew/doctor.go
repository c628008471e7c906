package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tunecrew/tunecrew/config"
	"github.com/tunecrew/tunecrew/model/ollama"
	"github.com/tunecrew/tunecrew/spotify"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity to the inference endpoint and Spotify",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ctx := ctxOrBackground(cmd.Context())
			failed := false

			if cfg.LLM.Provider == "ollama" {
				m := ollama.NewModel(func(o *ollama.Options) {
					if cfg.LLM.BaseURL != "" {
						o.BaseURL = cfg.LLM.BaseURL
					}
					o.Timeout = 5 * time.Second
				})
				if err := m.Ping(ctx); err != nil {
					failed = true
					fmt.Fprintf(out, "✗ ollama: %v\n", err)
					fmt.Fprintln(out, "  Install Ollama from https://ollama.ai, pull a model and make sure it is running.")
				} else {
					fmt.Fprintln(out, "✓ ollama reachable")
				}
			} else {
				fmt.Fprintf(out, "- llm provider %s: no local health check, verify the API key\n", cfg.LLM.Provider)
			}

			if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
				failed = true
				fmt.Fprintln(out, "✗ spotify: credentials missing")
				fmt.Fprintln(out, "  Set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET (https://developer.spotify.com/dashboard).")
			} else {
				client, err := spotify.NewClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
				if err == nil {
					err = client.CheckAuth(ctx)
				}
				if err != nil {
					failed = true
					fmt.Fprintf(out, "✗ spotify: %v\n", err)
				} else {
					fmt.Fprintln(out, "✓ spotify credentials valid")
				}
			}

			if failed {
				return fmt.Errorf("one or more checks failed")
			}
			return nil
		},
	}
}
