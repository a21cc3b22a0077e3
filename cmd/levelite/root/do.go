package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := svc.CompleteTask(ctx, flagUser, id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n",
				ui.Good.Render(ui.IconDone+" Completed"), res.TaskID,
				ui.Muted.Render(fmt.Sprintf("(+%d XP)", res.XPAwarded)))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			if res.AllDailiesDone {
				fmt.Fprintf(cmd.OutOrStdout(), "%s all dailies done: +%d %s, streak %s %d\n",
					ui.Gold.Render(ui.IconSparkle), res.CoinsAwarded, ui.IconCoin, ui.IconFire, res.StreakAfter)
			}
			if res.PenaltyCleared {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Penalty zone cleared"))
			}
			return nil
		},
	}

	return cmd
}
