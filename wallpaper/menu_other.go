//go:build !windows

package wallpaper

import (
	"fmt"
	"runtime"
)

// RegisterMenu is only available on Windows.
func RegisterMenu(string) error {
	return fmt.Errorf("%w: desktop menu on %s", ErrUnsupportedPlatform, runtime.GOOS)
}
