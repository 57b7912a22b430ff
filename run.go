package main

import (
	"github.com/spf13/cobra"

	"github.com/duttty/wallrotate/logging"
	"github.com/duttty/wallrotate/wallpaper"
)

var (
	runCategories []string
	runInterval   int
	runSource     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rotate the wallpaper until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := logging.FromContext(ctx)

		s, err := loadSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("categories") {
			s.Keywords = runCategories
		}
		if cmd.Flags().Changed("interval") {
			s.Interval = runInterval
		}
		if cmd.Flags().Changed("source") {
			s.Type = runSource
		}
		if err := s.RotationConfig().Validate(); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			logger.Warn("settings not saved", "err", err)
		}

		engine, err := newEngine(ctx, s)
		if err != nil {
			return err
		}
		ack, err := engine.Start(s.RotationConfig())
		if err != nil {
			return err
		}
		logger.Debug("engine", "ack", ack)

		<-ctx.Done()
		logger.Debug("engine", "ack", engine.Stop())
		return nil
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&runCategories, "categories", nil, "Photo categories, e.g. nature,space")
	runCmd.Flags().IntVar(&runInterval, "interval", 0, "Seconds between wallpaper changes")
	runCmd.Flags().StringVar(&runSource, "source", "", "Image source: "+wallpaper.SourceUnsplash+" or "+wallpaper.SourcePixabay)
}
