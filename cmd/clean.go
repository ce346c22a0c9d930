package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agoda-com/muter/internal/domain"
	m "github.com/agoda-com/muter/internal/model"
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Recover from an interrupted mutation session",
		Long: `Replay the session journal left behind by an interrupted run, restoring
any source file whose pristine swap copy still exists, then remove the swap
directory.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Clean(cmd.Context(), domain.CleanArgs{
				SwapDir: m.Path(viper.GetString(swapDirConfigKey)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
