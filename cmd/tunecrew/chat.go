package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tunecrew/tunecrew/config"
	"github.com/tunecrew/tunecrew/logging"
)

// exitTokens end the interactive session.
var exitTokens = map[string]bool{"quit": true, "exit": true, "q": true}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive session with the coordinator agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := logging.New(&logging.Config{
				Level:  logging.ParseLevel(cfg.Log.Level),
				Format: cfg.Log.Format,
				Output: os.Stderr,
			})

			llm, err := buildModel(cfg)
			if err != nil {
				return err
			}
			coordinator, err := buildCrew(cfg, llm, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tunecrew ready (model %s via %s). Type 'quit' to leave.\n",
				llm.Info().Name, llm.Info().Provider)

			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 64*1024), 64*1024)
			for {
				fmt.Fprint(out, "\nYou: ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if exitTokens[strings.ToLower(line)] {
					fmt.Fprintln(out, "Goodbye!")
					break
				}

				answer := coordinator.Execute(ctxOrBackground(cmd.Context()), line)
				fmt.Fprintf(out, "\n%s: %s\n", coordinator.Name(), answer)
			}
			return scanner.Err()
		},
	}
}

// ctxOrBackground guards against cobra commands run without a context.
func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
