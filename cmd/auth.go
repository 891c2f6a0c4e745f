package cmd

import (
	"github.com/gnzdotmx/ytmanager/internal/utils"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to your channel",
	Long: `Run the OAuth consent flow in the browser when no usable token is cached,
and store the token for the next commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if _, err := newClient(cmd.Context(), cfg); err != nil {
			return err
		}
		utils.LogSuccess("Authorized, token stored in %s", cfg.TokenPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
