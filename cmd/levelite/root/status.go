package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player progression and today's standing",
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

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Status — "+u.Name))
			fmt.Fprintln(out, ui.LabelValue("Level", u.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d / %d (%d to next)", u.CurrentXP, u.XPForNextLevel, u.XPForNextLevel-u.CurrentXP)))
			fmt.Fprintln(out, ui.LabelValue("Total XP", u.TotalXP))
			fmt.Fprintln(out, ui.LabelValue("HP", ui.HealthBar(u.Health, u.MaxHealth)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFire, u.Streak)))
			fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%s %d", ui.IconCoin, u.Coins)))
			fmt.Fprintln(out, ui.LabelValue("Points", u.PointsToDistribute))
			if u.InPenaltyZone {
				fmt.Fprintln(out, ui.BadgePenalty)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Attributes"))
			fmt.Fprintf(out, "- 💪 STR: %d\n", u.Strength)
			fmt.Fprintf(out, "- 🧠 INT: %d\n", u.Intelligence)
			fmt.Fprintf(out, "- 🧘 DIS: %d\n", u.Discipline)
			fmt.Fprintf(out, "- ❤️ VIT: %d\n", u.Vitality)
			fmt.Fprintln(out, "")

			completed, err := svc.DayRepo().ListCompletedDays(ctx, u.ID)
			if err != nil {
				return err
			}
			penalized, err := svc.DayRepo().ListPenalizedDays(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render("🗓️ History"))
			fmt.Fprintf(out, "- %s %d full days\n", ui.Key.Render("Completed:"), len(completed))
			fmt.Fprintf(out, "- %s %d penalty strikes\n", ui.Key.Render("Penalized:"), len(penalized))
			return nil
		},
	}

	return cmd
}
