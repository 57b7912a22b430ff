//go:build windows

package wallpaper

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const menuKey = `Software\Classes\DesktopBackground\Shell\NextWallpaper`

// RegisterMenu adds a "Next wallpaper" entry to the desktop context menu
// that runs `<exe> next`. It is written under HKCU so no elevation is
// needed; an existing entry is overwritten with the current exe path.
func RegisterMenu(exe string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, menuKey, registry.ALL_ACCESS)
	if err != nil {
		return fmt.Errorf("creating menu key: %w", err)
	}
	defer k.Close()
	if err := k.SetStringValue("MUIVerb", "Next wallpaper"); err != nil {
		return fmt.Errorf("naming menu entry: %w", err)
	}

	cmd, _, err := registry.CreateKey(registry.CURRENT_USER, menuKey+`\command`, registry.ALL_ACCESS)
	if err != nil {
		return fmt.Errorf("creating menu command key: %w", err)
	}
	defer cmd.Close()
	if err := cmd.SetStringValue("", fmt.Sprintf(`"%s" next`, exe)); err != nil {
		return fmt.Errorf("setting menu command: %w", err)
	}
	return nil
}
