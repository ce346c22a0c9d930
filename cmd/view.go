package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agoda-com/muter/internal/domain"
	m "github.com/agoda-com/muter/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View the previously generated mutation report",
		Long:  "View the previously generated mutation report from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
