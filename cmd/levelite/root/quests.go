package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	var class bool

	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Generate today's quest batch (once per day)",
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

			src := engine.StaticContentSource{}
			var res *engine.GenerateResult
			if class {
				res, err = svc.GenerateClassQuests(ctx, flagUser, src)
			} else {
				res, err = svc.GenerateDailyQuests(ctx, flagUser, src)
			}
			if err != nil {
				return err
			}

			if res.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Today's batch is already generated."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d quests for today\n",
				ui.Good.Render(ui.IconSparkle+" Generated"), res.Created)
			return nil
		},
	}

	cmd.Flags().BoolVar(&class, "class", false, "Generate class quests instead of daily quests")

	return cmd
}
