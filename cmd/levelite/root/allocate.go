package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/izumiishikawa/levelite-sub000/internal/engine"
	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

func newAllocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate <stat> <points>",
		Short: "Spend level-up points on an attribute",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("stat and points are required")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("points must be an integer")
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

			stat := engine.ParseStat(args[0])
			amount, _ := strconv.Atoi(args[1])
			if err := svc.AllocatePoints(ctx, flagUser, stat, amount); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d → %s\n",
				ui.Good.Render(ui.IconBolt+" Allocated"), amount, stat)
			return nil
		},
	}

	return cmd
}
