package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alekspetrov/clawban/internal/poll"
	"github.com/alekspetrov/clawban/internal/snapshot"
)

func newPollCmd() *cobra.Command {
	var sinceFlag string

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Run one incremental poll against the persisted snapshot",
		Long:  `Fetch only items updated since the given timestamp, reconcile them against the persisted poll snapshot, print the synthesized events, and rewrite the snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			adapter, err := newAdapter(cfg)
			if err != nil {
				return err
			}

			store := snapshot.NewStore(cfg.GitHub.SnapshotPath)
			since, err := resolveSince(sinceFlag, store)
			if err != nil {
				return err
			}

			reconciler := poll.NewReconciler(adapter, store, cfg.GitHub.Repo)
			events, err := reconciler.PollSince(cmd.Context(), since)
			if err != nil {
				return err
			}

			if jnl, err := openJournal(cfg); err != nil {
				return err
			} else if jnl != nil {
				defer jnl.Close()
				if _, err := jnl.RecordPoll(adapter.Name(), events); err != nil {
					return err
				}
			}

			renderPollEvents(cmd.OutOrStdout(), events)
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sinceFlag, "since", "", "poll for items updated at or after this time (RFC 3339 or YYYY-MM-DD; default: last poll time from the snapshot)")
	return cmd
}

// resolveSince parses --since, falling back to the last poll time
// recorded in the snapshot metadata.
func resolveSince(flag string, store *snapshot.Store) (time.Time, error) {
	if flag != "" {
		if t, err := time.Parse(time.RFC3339, flag); err == nil {
			return t, nil
		}
		t, err := time.Parse("2006-01-02", flag)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --since %q: use RFC 3339 or YYYY-MM-DD", flag)
		}
		return t, nil
	}

	snap, err := store.Load()
	if err != nil {
		return time.Time{}, err
	}
	if snap.Meta.LastPolledAt.IsZero() {
		return time.Time{}, fmt.Errorf("no previous poll recorded; provide --since for the first poll")
	}
	return snap.Meta.LastPolledAt.Time, nil
}
