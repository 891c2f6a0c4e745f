package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnzdotmx/ytmanager/internal/api"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST server",
	Long:  `Expose every command under /api on a local HTTP server.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		env, err := loadEnv(ctx, true)
		if err != nil {
			return err
		}

		server := env.Config.Server
		if cmd.Flags().Changed("host") {
			server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			server.Port = servePort
		}

		if err := api.ListenAndServe(ctx, server.Addr(), api.NewServer(registry, env, api.WithLibraryPath(env.Config.LibraryPath)).Router()); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on (overrides the config)")
	serveCmd.Flags().IntVar(&servePort, "port", 3001, "Port to listen on (overrides the config)")
	rootCmd.AddCommand(serveCmd)
}
