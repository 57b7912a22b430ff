package wallpaper

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")

	s, err := LoadSettings(path)
	require.NoError(t, err)

	want := DefaultSettings()
	want.Path = path
	assert.Equal(t, want, s)
}

func TestLoadSettings_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[wallpaper]
type        = pixabay
keywords    = Nature, Space
interval    = 300
imgSavePath = images
cap         = 3
orientation = portrait
timeout     = 20
pixabayAK   = pk
`), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, SourcePixabay, s.Type)
	assert.Equal(t, []string{"Nature", "Space"}, s.Keywords)
	assert.Equal(t, 300, s.Interval)
	assert.Equal(t, filepath.Join(dir, "images"), s.ImgSavePath)
	assert.Equal(t, 3, s.Cap)
	assert.Equal(t, "portrait", s.Orientation)
	assert.Equal(t, 20, s.Timeout)
	assert.Equal(t, "pk", s.PixabayAK)
}

func TestLoadSettings_OutOfRangeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[wallpaper]\ntype = flickr\ninterval = -5\ncap = 0\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, SourceUnsplash, s.Type)
	assert.Equal(t, 60, s.Interval)
	assert.Equal(t, DefaultCap, s.Cap)
}

func TestLoadSettings_EnvKeys(t *testing.T) {
	t.Setenv("WALLROTATE_UNSPLASH_KEY", "from-env")
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[wallpaper]\nunsplashAK = from-file\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.UnsplashAK)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.ini")
	s := DefaultSettings()
	s.Path = path
	s.Keywords = []string{"Animals", "Abstract"}
	s.Interval = 120
	s.ImgSavePath = filepath.Join(dir, "cache")
	s.UsagePath = filepath.Join(dir, "usage.json")

	require.NoError(t, s.Save())

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSettings_SaveKeepsKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[wallpaper]\nunsplashAK = keep-me\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	s.Interval = 30
	require.NoError(t, s.Save())

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "keep-me", got.UnsplashAK)
	assert.Equal(t, 30, got.Interval)
}

func TestSettings_RotationConfig(t *testing.T) {
	s := DefaultSettings()
	s.Keywords = []string{"Space"}
	s.Interval = 90
	s.ImgSavePath = "/tmp/images"

	cfg := s.RotationConfig()

	assert.Equal(t, []string{"Space"}, cfg.Categories)
	assert.Equal(t, 90*time.Second, cfg.Interval)
	assert.Equal(t, "/tmp/images", cfg.CacheDir)
	assert.Equal(t, DefaultCap, cfg.Cap)
	assert.NoError(t, cfg.Validate())
}

func TestNewFetcher(t *testing.T) {
	s := DefaultSettings()

	_, err := NewFetcher(s)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	s.UnsplashAK = "k"
	f, err := NewFetcher(s)
	require.NoError(t, err)
	assert.IsType(t, &Unsplash{}, f)

	s.Type = SourcePixabay
	_, err = NewFetcher(s)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	s.PixabayAK = "p"
	f, err = NewFetcher(s)
	require.NoError(t, err)
	assert.IsType(t, &Pixabay{}, f)

	s.Type = "flickr"
	_, err = NewFetcher(s)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
