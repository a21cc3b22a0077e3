package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

func newAddCmd() *cobra.Command {
	var intensity string
	var description string
	var recurrence string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task of your own",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			if _, err := svc.GetOrCreateUser(ctx, flagUser); err != nil {
				return err
			}

			res, err := svc.AddTask(ctx, flagUser, engine.TaskDraft{
				Title:       args[0],
				Description: description,
				Intensity:   engine.ParseIntensity(intensity),
				Type:        engine.TypeUserTask,
				Recurrence:  engine.Recurrence(recurrence),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				ui.Good.Render(ui.IconQuest+" Added"), res.TaskID, args[0],
				ui.Muted.Render(fmt.Sprintf("(+%d XP on completion)", res.XPReward)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&intensity, "intensity", "i", "medium", "Intensity (low|medium|high)")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&recurrence, "recurrence", "r", "one-time", "Recurrence (one-time|daily|weekly|monthly|custom)")

	return cmd
}
