package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a completed task (undo completion)",
		Long: `Restore a task to pending status by undoing its last completion.

This will:
- Remove the completion record
- Deduct the XP that was awarded, deleveling if needed
- Reset the task status to pending

Use this to fix accidental completions.`,
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
			res, err := svc.RestoreTask(ctx, flagUser, id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n",
				ui.Warn.Render(ui.IconUndo+" Restored"), res.TaskID,
				ui.Muted.Render(fmt.Sprintf("(-%d XP)", res.XPDeducted)))
			if res.LevelDown {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					ui.Warn.Render(ui.IconWarn+" Level decreased"),
					ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			return nil
		},
	}

	return cmd
}
