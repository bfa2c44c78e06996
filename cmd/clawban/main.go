package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "clawban",
		Short:        "Kanban-stage tracking over external issue trackers",
		Long:         `Clawban watches tracked work items on an issue tracker and turns successive observations into a canonical event stream: created, deleted, stage-changed, updated.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.clawban/config.yaml)")

	rootCmd.AddCommand(
		newTickCmd(),
		newPollCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show clawban version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clawban %s\n", version)
		},
	}
}
