package main

import (
	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Change the wallpaper once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd.Context(), s)
		if err != nil {
			return err
		}
		return engine.Next(cmd.Context(), s.RotationConfig())
	},
}
