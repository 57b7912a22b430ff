//go:build !windows && !linux && !darwin

package wallpaper

import (
	"context"
	"fmt"
	"runtime"
)

func setWallpaper(context.Context, string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}
