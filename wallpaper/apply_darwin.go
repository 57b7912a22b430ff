//go:build darwin

package wallpaper

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

func setWallpaper(ctx context.Context, path string) error {
	quoted := `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(path) + `"`
	script := fmt.Sprintf(`tell application "System Events" to tell every desktop to set picture to %s`, quoted)
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
