package wallpaper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DesktopApplier sets the background through the host OS.
type DesktopApplier struct{}

func NewApplier() DesktopApplier { return DesktopApplier{} }

func (DesktopApplier) Apply(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("wallpaper file: %w", err)
	}
	return setWallpaper(ctx, abs)
}
