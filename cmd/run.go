package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agoda-com/muter/internal/domain"
	m "github.com/agoda-com/muter/internal/model"
)

var runParallelFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run mutation testing",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := workflow.Test(cmd.Context(), domain.TestArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Reports: m.Path(viper.GetString(outputFlagName)),
				SwapDir: m.Path(viper.GetString(swapDirConfigKey)),
				Threads: viper.GetInt(runParallelConfigKey),
			})

			return err
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers for mutation generation")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
}
