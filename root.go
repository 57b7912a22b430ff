package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duttty/wallrotate/logging"
	"github.com/duttty/wallrotate/wallpaper"
)

var (
	configPath string
	logFlags   logging.Flags
)

var rootCmd = &cobra.Command{
	Use:          "wallrotate",
	Short:        "Rotate the desktop wallpaper with photos from Unsplash or Pixabay",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logFlags.Verbose && logFlags.Quiet {
			logFlags.Verbose = false
		}
		l := logging.NewLogger(os.Stderr)
		logging.Configure(l, logFlags)
		cmd.SetContext(logging.WithLogger(cmd.Context(), l))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (default "+wallpaper.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&logFlags.Verbose, "verbose", "v", false, "Log every tick in detail")
	rootCmd.PersistentFlags().BoolVarP(&logFlags.Quiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVar(&logFlags.NoColor, "no-color", false, "Disable colored logs")
	rootCmd.PersistentFlags().BoolVar(&logFlags.JSON, "log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(menuCmd)
}

func loadSettings() (wallpaper.Settings, error) {
	path := configPath
	if path == "" {
		path = wallpaper.DefaultConfigPath()
	}
	return wallpaper.LoadSettings(path)
}

// newEngine wires the ledger, the configured image source and the desktop
// applier into an engine.
func newEngine(ctx context.Context, s wallpaper.Settings) (*wallpaper.RotationEngine, error) {
	ledger, err := wallpaper.OpenLedger(s.UsagePath)
	if err != nil {
		return nil, err
	}
	fetcher, err := wallpaper.NewFetcher(s)
	if err != nil {
		return nil, fmt.Errorf("%w (set it in %s)", err, s.Path)
	}
	return wallpaper.NewRotationEngine(fetcher, wallpaper.NewApplier(), ledger,
		wallpaper.WithLogger(logging.FromContext(ctx))), nil
}
