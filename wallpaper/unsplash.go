package wallpaper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const unsplashAPI = "https://api.unsplash.com"

// Unsplash fetches one random photo per call from the Unsplash API.
type Unsplash struct {
	AK      string
	BaseURL string
	Client  *http.Client
}

type unsplashPhoto struct {
	ID   string `json:"id"`
	Urls struct {
		Full    string `json:"full"`
		Regular string `json:"regular"`
	} `json:"urls"`
}

func (u *Unsplash) Fetch(ctx context.Context, q Query) (*Image, error) {
	base := u.BaseURL
	if base == "" {
		base = unsplashAPI
	}
	v := url.Values{}
	v.Set("query", strings.Join(q.Categories, ","))
	if q.Orientation != "" {
		v.Set("orientation", q.Orientation)
	}

	client := orDefaultClient(u.Client)
	b, err := httpGet(ctx, client, base+"/photos/random?"+v.Encode(), http.Header{
		"Authorization":  {"Client-ID " + u.AK},
		"Accept-Version": {"v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("unsplash: %w", err)
	}

	var p unsplashPhoto
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("unsplash: %w: decoding photo: %w", ErrFetchTransient, err)
	}
	src := p.Urls.Full
	if src == "" {
		src = p.Urls.Regular
	}
	if p.ID == "" || src == "" {
		return nil, fmt.Errorf("unsplash: %w: photo without id or url", ErrFetchTransient)
	}

	return &Image{ID: p.ID, Ext: ".jpg", Download: func(ctx context.Context) ([]byte, error) {
		data, err := download(ctx, client, src)
		if err != nil {
			return nil, fmt.Errorf("unsplash: %w", err)
		}
		return data, nil
	}}, nil
}
