package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/izumiishikawa/levelite-sub000/internal/ui"
)

const Version = "0.1.0"

var (
	flagUser   string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:           "levelite",
	Short:         "Levelite — gamified habit tracker with a daily penalty loop",
	Long:          "Levelite turns daily habits into quests: complete them for XP, levels and streaks, or wake up in the penalty zone.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "main", "User profile name")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.toml (optional)")

	rootCmd.AddCommand(
		newAddCmd(),
		newQuestsCmd(),
		newDoCmd(),
		newRestoreCmd(),
		newRemoveCmd(),
		newListCmd(),
		newStatusCmd(),
		newAllocateCmd(),
		newReconcileCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
