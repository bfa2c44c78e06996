package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alekspetrov/clawban/internal/core"
	"github.com/alekspetrov/clawban/internal/logging"
	"github.com/alekspetrov/clawban/internal/snapshot"
)

func newTickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Run one full reconciliation pass (fetch, diff, emit)",
		Long:  `Fetch the complete current snapshot from the tracker, diff it against the previously persisted snapshot, print the canonical events, and persist the new snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			adapter, err := newAdapter(cfg)
			if err != nil {
				return err
			}

			store := snapshot.NewItemStore(cfg.GitHub.TickStatePath)
			previous, err := store.Load()
			if err != nil {
				return err
			}

			result, err := core.Tick(cmd.Context(), adapter, previous)
			if err != nil {
				return err
			}

			if err := store.Save(result.Snapshot); err != nil {
				return err
			}

			if jnl, err := openJournal(cfg); err != nil {
				return err
			} else if jnl != nil {
				defer jnl.Close()
				runID, err := jnl.RecordTick(result)
				if err != nil {
					return err
				}
				logging.WithRun(runID).Debug("Journaled tick events",
					slog.Int("events", len(result.Events)),
				)
			}

			logging.WithComponent("tick").Info("Tick complete",
				slog.String("adapter", result.AdapterName),
				slog.Int("items", len(result.Snapshot)),
				slog.Int("events", len(result.Events)),
			)

			renderEvents(cmd.OutOrStdout(), result.Events)
			if len(result.Events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			}
			return nil
		},
	}
}
