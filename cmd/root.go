package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/qbitgate/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command. Running it without a subcommand serves the API.
var rootCmd = &cobra.Command{
	Use:   "qbitgate",
	Short: "A JSON gateway in front of the qBittorrent WebUI API",
	Long: `qbitgate exposes a small REST API over a qBittorrent instance.
Torrents, files, categories and preferences are returned as camelCase JSON,
and torrent actions are forwarded to the WebUI with the caller's session cookie.`,
	PersistentPreRunE: initializeApp,
	RunE:              runServe,
	SilenceUsage:      true,
}

// SetVersion records the build metadata injected by the linker
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)
	return nil
}
