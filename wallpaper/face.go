package wallpaper

import "context"

// Image is a candidate returned by a Fetcher. ID is stable across fetches
// of the same source image. The bytes come from Data when it is set, from
// Download otherwise; the engine only asks for them once the item is known
// to be below the cap and missing from the cache.
type Image struct {
	ID       string
	Ext      string
	Data     []byte
	Download func(ctx context.Context) ([]byte, error)
}

func (img *Image) bytes(ctx context.Context) ([]byte, error) {
	if len(img.Data) > 0 || img.Download == nil {
		return img.Data, nil
	}
	return img.Download(ctx)
}

// Query is what a Fetcher is asked for on every attempt.
type Query struct {
	Categories  []string
	Orientation string
}

// Fetcher returns one candidate image for the query. It may return the same
// ID on repeated calls; rejecting exhausted items is the engine's job.
// Failures wrap ErrNotFound or ErrFetchTransient.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) (*Image, error)
}

// Applier sets the desktop background to the image at an absolute path.
type Applier interface {
	Apply(ctx context.Context, path string) error
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, q Query) (*Image, error)

func (f FetcherFunc) Fetch(ctx context.Context, q Query) (*Image, error) { return f(ctx, q) }

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(ctx context.Context, path string) error

func (f ApplierFunc) Apply(ctx context.Context, path string) error { return f(ctx, path) }
