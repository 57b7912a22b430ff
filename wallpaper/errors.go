package wallpaper

import "errors"

var (
	// ErrNotFound is returned by a Fetcher when the source has no result
	// for the query.
	ErrNotFound = errors.New("no image found")
	// ErrFetchExhausted means no usable candidate was found for a tick:
	// the source had no result, or every attempt returned an item at the
	// usage cap.
	ErrFetchExhausted = errors.New("fetch exhausted")
	// ErrFetchTransient wraps network and service failures.
	ErrFetchTransient = errors.New("transient fetch error")
	// ErrCacheFailed means the image could not be written to the cache
	// directory.
	ErrCacheFailed = errors.New("caching image failed")
	// ErrApplyFailed wraps OS-level failures setting the background.
	ErrApplyFailed = errors.New("applying wallpaper failed")
	// ErrPersistenceFailed means the usage ledger could not be written.
	// The in-memory ledger still holds the mutation.
	ErrPersistenceFailed = errors.New("persisting usage ledger failed")
	ErrInvalidConfig     = errors.New("invalid rotation config")
	ErrEngineBusy        = errors.New("rotation engine is running")

	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
