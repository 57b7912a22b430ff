package wallpaper

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCap is how many times an item is applied before it is evicted.
const DefaultCap = 5

// RotationConfig is the immutable configuration of one engine run.
type RotationConfig struct {
	Categories  []string
	Interval    time.Duration
	CacheDir    string
	Cap         int
	Orientation string
}

// Validate reports whether the config can start a run.
func (c RotationConfig) Validate() error {
	_, err := c.normalize()
	return err
}

// normalize returns a trimmed, deduplicated copy that shares no memory
// with the caller's config.
func (c RotationConfig) normalize() (RotationConfig, error) {
	out := c
	out.Categories = nil
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		cat = strings.TrimSpace(cat)
		if cat == "" || seen[strings.ToLower(cat)] {
			continue
		}
		seen[strings.ToLower(cat)] = true
		out.Categories = append(out.Categories, cat)
	}
	out.CacheDir = strings.TrimSpace(c.CacheDir)
	if out.Orientation == "" {
		out.Orientation = "landscape"
	}

	switch {
	case len(out.Categories) == 0:
		return out, fmt.Errorf("%w: at least one category is required", ErrInvalidConfig)
	case out.Interval <= 0:
		return out, fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidConfig, c.Interval)
	case out.Cap < 1:
		return out, fmt.Errorf("%w: cap must be at least 1, got %d", ErrInvalidConfig, c.Cap)
	case out.CacheDir == "":
		return out, fmt.Errorf("%w: cache directory is required", ErrInvalidConfig)
	}
	return out, nil
}

func (c RotationConfig) query() Query {
	return Query{
		Categories:  append([]string(nil), c.Categories...),
		Orientation: c.Orientation,
	}
}

// maxAttempts bounds the fetch retries of one tick: cap consecutive
// candidates at or over the cap abort the tick.
func (c RotationConfig) maxAttempts() int {
	return c.Cap
}
