package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/storage"
	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool
	var taskType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := svc.GetOrCreateUser(ctx, flagUser)
			if err != nil {
				return err
			}

			filter := storage.TaskFilter{Type: taskType}
			if !all {
				filter.AssignedDay = engine.DayKey(svc.Clock().Now())
			}
			tasks, err := svc.TaskRepo().ListByUser(ctx, u.ID, filter)
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No tasks. Try `levelite quests` or `levelite add`."))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconQuest, "Tasks"))
			for _, t := range tasks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s %s\n",
					ui.TypeIcon(t.Type), t.ID, t.Title,
					ui.Muted.Render(fmt.Sprintf("(+%d XP)", t.XPReward)),
					ui.StatusText(t.Status))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every task, not just today's")
	cmd.Flags().StringVarP(&taskType, "type", "t", "", "Filter by type (userTask|dailyQuests|classQuests|penaltyTask|aiTask)")

	return cmd
}
