package wallpaper

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/ini.v1"
)

const appName = "wallrotate"

const (
	SourceUnsplash = "unsplash"
	SourcePixabay  = "pixabay"
)

func DefaultConfigPath() string { return filepath.Join(xdg.ConfigHome, appName, "config.ini") }
func DefaultCacheDir() string   { return filepath.Join(xdg.CacheHome, appName, "images") }
func DefaultLedgerPath() string { return filepath.Join(xdg.DataHome, appName, "usage.json") }

func cachePath(dir, id, ext string) string {
	if ext == "" {
		ext = ".jpg"
	}
	return filepath.Join(dir, id+ext)
}

// Settings is the [wallpaper] section of config.ini.
type Settings struct {
	Path string

	Type        string
	Keywords    []string
	Interval    int // seconds
	ImgSavePath string
	UsagePath   string
	Cap         int
	Orientation string
	Timeout     int // seconds, 0 means no timeout

	UnsplashAK string
	PixabayAK  string
}

func DefaultSettings() Settings {
	return Settings{
		Type:        SourceUnsplash,
		Keywords:    []string{"Nature"},
		Interval:    60,
		ImgSavePath: DefaultCacheDir(),
		UsagePath:   DefaultLedgerPath(),
		Cap:         DefaultCap,
		Orientation: "landscape",
	}
}

// LoadSettings reads path, falling back to defaults for a missing file or
// missing keys. Relative paths in the file are resolved against the
// directory holding it.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	s.Path = path

	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return s, fmt.Errorf("loading settings %s: %w", path, err)
	}
	sec := cfg.Section("wallpaper")

	s.Type = sec.Key("type").In(SourceUnsplash, []string{SourceUnsplash, SourcePixabay})
	if sec.HasKey("keywords") {
		if kw := sec.Key("keywords").Strings(","); len(kw) > 0 {
			s.Keywords = kw
		}
	}
	s.Interval = sec.Key("interval").RangeInt(s.Interval, 1, 7*24*60*60)
	s.Cap = sec.Key("cap").RangeInt(s.Cap, 1, 1000)
	s.Orientation = sec.Key("orientation").In(s.Orientation, []string{"landscape", "portrait", "squarish"})
	s.Timeout = sec.Key("timeout").RangeInt(0, 0, 3600)
	s.UnsplashAK = sec.Key("unsplashAK").String()
	s.PixabayAK = sec.Key("pixabayAK").String()

	base := filepath.Dir(path)
	if p := sec.Key("imgSavePath").String(); p != "" {
		s.ImgSavePath = resolvePath(base, p)
	}
	if p := sec.Key("usagePath").String(); p != "" {
		s.UsagePath = resolvePath(base, p)
	}

	if v := os.Getenv("WALLROTATE_UNSPLASH_KEY"); v != "" {
		s.UnsplashAK = v
	}
	if v := os.Getenv("WALLROTATE_PIXABAY_KEY"); v != "" {
		s.PixabayAK = v
	}
	return s, nil
}

func resolvePath(base, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Save writes the rotation settings back to s.Path, keeping any other keys
// already in the file. API keys are never written.
func (s Settings) Save() error {
	cfg, err := ini.LooseLoad(s.Path)
	if err != nil {
		return fmt.Errorf("saving settings %s: %w", s.Path, err)
	}
	sec := cfg.Section("wallpaper")
	sec.Key("type").SetValue(s.Type)
	sec.Key("keywords").SetValue(strings.Join(s.Keywords, ","))
	sec.Key("interval").SetValue(fmt.Sprint(s.Interval))
	sec.Key("imgSavePath").SetValue(filepath.ToSlash(s.ImgSavePath))
	sec.Key("usagePath").SetValue(filepath.ToSlash(s.UsagePath))
	sec.Key("cap").SetValue(fmt.Sprint(s.Cap))
	sec.Key("orientation").SetValue(s.Orientation)
	sec.Key("timeout").SetValue(fmt.Sprint(s.Timeout))

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("saving settings %s: %w", s.Path, err)
	}
	if err := cfg.SaveTo(s.Path); err != nil {
		return fmt.Errorf("saving settings %s: %w", s.Path, err)
	}
	return nil
}

// RotationConfig converts the settings into the config of one engine run.
func (s Settings) RotationConfig() RotationConfig {
	return RotationConfig{
		Categories:  append([]string(nil), s.Keywords...),
		Interval:    time.Duration(s.Interval) * time.Second,
		CacheDir:    s.ImgSavePath,
		Cap:         s.Cap,
		Orientation: s.Orientation,
	}
}

// NewFetcher builds the image source selected by s.Type.
func NewFetcher(s Settings) (Fetcher, error) {
	client := &http.Client{Timeout: time.Duration(s.Timeout) * time.Second}
	switch s.Type {
	case SourcePixabay:
		if s.PixabayAK == "" {
			return nil, fmt.Errorf("%w: pixabayAK is not set", ErrInvalidConfig)
		}
		return &Pixabay{AK: s.PixabayAK, Client: client}, nil
	case SourceUnsplash, "":
		if s.UnsplashAK == "" {
			return nil, fmt.Errorf("%w: unsplashAK is not set", ErrInvalidConfig)
		}
		return &Unsplash{AK: s.UnsplashAK, Client: client}, nil
	}
	return nil, fmt.Errorf("%w: unknown image source %q", ErrInvalidConfig, s.Type)
}
