package cmd

import (
	"github.com/gnzdotmx/ytmanager/internal/actions"
	"github.com/gnzdotmx/ytmanager/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// verbosityLevel is the command-line flag for setting the log level
	verbosityLevel string
	verbose        bool
	historyFlag    bool
	libraryPath    string
	configPath     string
	prettyIndent   int
)

var registry = actions.DefaultRegistry()

var rootCmd = &cobra.Command{
	Use:   "ytmanager",
	Short: "Manage your YouTube live streams and their vertical clips",
	Long: `ytmanager updates the metadata of the current live broadcast, keeps a local
library of streams and their vertical clips, uploads the clips as shorts and
exposes every command through a local REST server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := utils.LogLevelFromString(verbosityLevel)
		if verbose && logLevel < utils.LevelVerbose {
			logLevel = utils.LevelVerbose
		}
		utils.SetLogLevel(logLevel)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&verbosityLevel, "log-level", "l", "normal",
		"Set the logging verbosity level: quiet, normal, verbose, debug")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Shortcut for --log-level verbose")
	flags.BoolVarP(&historyFlag, "history", "H", false, "Record the current stream in the library before running")
	flags.StringVar(&libraryPath, "library", "", "Path of the stream library file (overrides the config)")
	flags.StringVar(&configPath, "config", "", "Path of the config file (default ytmanager.yaml when present)")
	flags.IntVarP(&prettyIndent, "pretty", "p", 0, "Indent JSON output with this many spaces")

	for _, a := range registry.List() {
		rootCmd.AddCommand(newActionCommand(a))
	}
}
