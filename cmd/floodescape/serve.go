package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flood-escape/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagVariant     string
	flagEnvFile     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Flood Escape SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own independent game. Runs are stored
per-server, so all players share the same records.

Settings can also come from the environment or a .env file:
  FLOOD_SSH_ADDR   - listen address
  FLOOD_HOST_KEY   - host key path
  FLOOD_DB         - records database path
  FLOOD_VARIANT    - force a variant for every player
Flags given on the command line win over the environment.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.floodescape/host_key

Examples:
  floodescape serve                           # Listen on :23234
  floodescape serve --ssh :2222               # Listen on port 2222
  floodescape serve --variant compact         # Same variant for everyone
  floodescape serve --env ./prod.env          # Load settings from a file

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagVariant, "variant", "", "Variant for every session (default: fit each terminal)")
	serveCmd.Flags().StringVar(&flagEnvFile, "env", ".env", "Optional environment file")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("floodescape-ssh")
	if err != nil {
		return err
	}

	if err := godotenv.Load(flagEnvFile); err != nil {
		if cmd.Flags().Changed("env") || !os.IsNotExist(err) {
			return fmt.Errorf("loading %s: %w", flagEnvFile, err)
		}
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = setting(cmd, "ssh", flagSSHAddr, "FLOOD_SSH_ADDR")
	cfg.HostKeyPath = setting(cmd, "host-key", flagHostKey, "FLOOD_HOST_KEY")
	cfg.DBPath = setting(cmd, "db", flagDBPath, "FLOOD_DB")
	cfg.Variant = setting(cmd, "variant", flagVariant, "FLOOD_VARIANT")
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logger.Debug("server config", "address", cfg.Address, "variant", cfg.Variant, "db", cfg.DBPath)
	logger.Info("press Ctrl+C to stop")

	return server.ListenAndServe()
}

// setting resolves a value: explicit flag, then environment, then flag default.
func setting(cmd *cobra.Command, flag, value, env string) string {
	if cmd.Flags().Changed(flag) {
		return value
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	return value
}
