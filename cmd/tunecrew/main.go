// Command tunecrew is the interactive shell for the Spotify agent
// orchestrator: a coordinator agent that delegates to specialized search,
// playlist and playback agents, all driven by a chat-completion endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "tunecrew",
		Short:         "Spotify-specialized conversational agent orchestrator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tunecrew.yaml", "path to config file")

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newDoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
