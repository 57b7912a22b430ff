//go:build linux

package wallpaper

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
)

// setWallpaper prefers GNOME's gsettings and falls back to feh for bare
// X11 window managers.
func setWallpaper(ctx context.Context, path string) error {
	if _, err := exec.LookPath("gsettings"); err == nil {
		uri := (&url.URL{Scheme: "file", Path: path}).String()
		if err := run(ctx, "gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri); err != nil {
			return err
		}
		// Older GNOME has no dark variant.
		_ = run(ctx, "gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri)
		return nil
	}
	if _, err := exec.LookPath("feh"); err == nil {
		return run(ctx, "feh", "--bg-fill", path)
	}
	return fmt.Errorf("%w: neither gsettings nor feh found", ErrUnsupportedPlatform)
}

func run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
