package cmd

import (
	"fmt"

	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/gnzdotmx/ytmanager/internal/utils"
	"github.com/gnzdotmx/ytmanager/internal/validator"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate environment setup",
	Long:  `Check the configuration, the OAuth credentials and the paths stored in the stream library.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.LogInfo("Validating environment...")

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		utils.LogSuccess("Configuration: OK")

		if err := validator.ValidateCredentials(cfg); err != nil {
			return fmt.Errorf("credentials validation failed: %w", err)
		}
		utils.LogSuccess("Credentials: OK")

		lib := streamlib.Load(cfg.LibraryPath)
		if err := validator.ValidateLibrary(lib.Lib()); err != nil {
			return fmt.Errorf("library validation failed: %w", err)
		}
		utils.LogSuccess("Stream library: OK")

		utils.LogSuccess("Environment validation completed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
