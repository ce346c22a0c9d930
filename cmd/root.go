// Package cmd provides the root command and CLI setup for muter.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agoda-com/muter/internal/adapter"
	"github.com/agoda-com/muter/internal/controller"
	"github.com/agoda-com/muter/internal/domain"
	m "github.com/agoda-com/muter/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var goFileAdapter adapter.GoFileAdapter
var reportStore adapter.ReportStore
var mutagen domain.Mutagen
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// swapDirFlag overrides where pristine file copies are kept during a session.
var swapDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// logFileFlag and verboseFlag control the rotating log file.
var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	reportStore = adapter.NewYAMLReportStore()
	mutagen = domain.NewMutagen(goFileAdapter, fsAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		ui,
		mutagen,
		testRunnerFactory,
	)
}

// testRunnerFactory builds the test runner from the configured command line,
// rooted at the project directory resolved for the session.
func testRunnerFactory(projectRoot m.Path) adapter.TestRunnerAdapter {
	return adapter.NewLocalTestRunnerAdapter(
		viper.GetString(testExecutableKey),
		viper.GetStringSlice(testArgumentsKey),
		projectRoot,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

const rootLongDescription = `Muter is a mutation testing tool for Go that helps you assess the quality
of your test suite by introducing small changes (mutants) to your code and
verifying that your tests catch them. Each mutant is applied in place, the
configured test command is run, and the original file is restored before the
next mutant is tried.

` + pathPatternsHelp

const runLongDescription = `Run mutation testing for the given paths (default: current module).

` + pathPatternsHelp

const listLongDescription = `List source files and the number of applicable mutations.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "muter",
		Short: "Go mutation testing tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for mutation testing reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVar(&swapDirFlag, swapDirFlagName, viper.GetString(swapDirConfigKey), "directory for pristine file copies during a session")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(swapDirFlagName), swapDirConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "log file path (default .muter.log)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
