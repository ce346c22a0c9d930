package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agoda-com/muter/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and mutation counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Estimate(cmd.Context(), domain.EstimateArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
