package wallpaper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
)

const (
	pixabayAPI     = "https://pixabay.com/api/"
	pixabayPerPage = 30
)

// Pixabay searches the Pixabay API and picks one of the hits per call.
type Pixabay struct {
	AK      string
	BaseURL string
	Client  *http.Client
	// Pick chooses a hit index in [0, n). Defaults to a random choice.
	Pick func(n int) int
}

type pixabayResult struct {
	Hits []struct {
		ID            int    `json:"id"`
		LargeImageURL string `json:"largeImageURL"`
	} `json:"hits"`
}

func (p *Pixabay) Fetch(ctx context.Context, q Query) (*Image, error) {
	base := p.BaseURL
	if base == "" {
		base = pixabayAPI
	}
	v := url.Values{}
	v.Set("key", p.AK)
	v.Set("q", strings.Join(q.Categories, " "))
	v.Set("image_type", "photo")
	v.Set("orientation", pixabayOrientation(q.Orientation))
	v.Set("per_page", strconv.Itoa(pixabayPerPage))

	client := orDefaultClient(p.Client)
	b, err := httpGet(ctx, client, base+"?"+v.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("pixabay: %w", err)
	}

	var res pixabayResult
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, fmt.Errorf("pixabay: %w: decoding hits: %w", ErrFetchTransient, err)
	}
	if len(res.Hits) == 0 {
		return nil, fmt.Errorf("pixabay: %w: no hits for %q", ErrNotFound, v.Get("q"))
	}

	pick := p.Pick
	if pick == nil {
		pick = rand.IntN
	}
	hit := res.Hits[pick(len(res.Hits))]
	if hit.LargeImageURL == "" {
		return nil, fmt.Errorf("pixabay: %w: hit %d without url", ErrFetchTransient, hit.ID)
	}

	src := hit.LargeImageURL
	return &Image{ID: strconv.Itoa(hit.ID), Ext: imageExt(src), Download: func(ctx context.Context) ([]byte, error) {
		data, err := download(ctx, client, src)
		if err != nil {
			return nil, fmt.Errorf("pixabay: %w", err)
		}
		return data, nil
	}}, nil
}

func pixabayOrientation(o string) string {
	switch o {
	case "landscape":
		return "horizontal"
	case "portrait":
		return "vertical"
	}
	return "all"
}

func imageExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	switch ext := strings.ToLower(path.Ext(u.Path)); ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	}
	return ".jpg"
}
