package root

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/scheduler"
	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

func newReconcileCmd() *cobra.Command {
	var daemon bool
	var day string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run the nightly day-boundary reconciliation",
		Long: `Reconcile the day that just ended for every user: apply penalty damage,
purge stale quests, reset streaks and spawn penalty tasks where daily quests
were left unfinished.

With --daemon the process stays up and fires at the configured boundary hour.
Without it, one batch runs immediately (suitable for cron).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, db, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			nightly := scheduler.New(db, svc, cfg.Reconciler.BoundaryHour, log)

			if daemon {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				err := nightly.Run(ctx)
				if err == context.Canceled {
					return nil
				}
				return err
			}

			if day == "" {
				day = engine.PreviousDayKey(svc.Clock().Now())
			}
			stats, err := nightly.RunOnce(ctx, day)
			if err != nil {
				return err
			}
			if stats.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s already reconciled\n",
					ui.Muted.Render(ui.IconMoon), day)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d users processed, %d failed\n",
				ui.Good.Render(ui.IconMoon+" Reconciled"), day, stats.Processed, stats.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&daemon, "daemon", false, "Stay up and fire at the configured boundary hour")
	cmd.Flags().StringVar(&day, "day", "", "Day to reconcile (YYYY-MM-DD, defaults to yesterday)")

	return cmd
}
