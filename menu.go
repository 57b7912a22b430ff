package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/duttty/wallrotate/logging"
	"github.com/duttty/wallrotate/wallpaper"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Add a \"Next wallpaper\" entry to the desktop context menu (Windows)",
	RunE: func(cmd *cobra.Command, args []string) error {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		if err := wallpaper.RegisterMenu(exe); err != nil {
			return err
		}
		logging.FromContext(cmd.Context()).Info("desktop menu registered", "exe", exe)
		return nil
	},
}
