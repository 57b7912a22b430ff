package wallpaper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixabay_Fetch(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/":
			q := r.URL.Query()
			assert.Equal(t, "secret", q.Get("key"))
			assert.Equal(t, "Nature Space", q.Get("q"))
			assert.Equal(t, "horizontal", q.Get("orientation"))
			assert.Equal(t, "photo", q.Get("image_type"))
			_, _ = w.Write([]byte(`{"hits":[
				{"id":1,"largeImageURL":"` + srv.URL + `/img/1.jpg"},
				{"id":2,"largeImageURL":"` + srv.URL + `/img/2.png"}]}`))
		case "/img/2.png":
			_, _ = w.Write([]byte("png bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := &Pixabay{
		AK:      "secret",
		BaseURL: srv.URL + "/api/",
		Client:  srv.Client(),
		Pick:    func(n int) int { return n - 1 },
	}
	img, err := p.Fetch(context.Background(), Query{Categories: []string{"Nature", "Space"}, Orientation: "landscape"})

	require.NoError(t, err)
	assert.Equal(t, "2", img.ID)
	assert.Equal(t, ".png", img.Ext)
	data, err := img.Download(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), data)
}

func TestPixabay_NoHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":0,"totalHits":0,"hits":[]}`))
	}))
	defer srv.Close()

	p := &Pixabay{AK: "k", BaseURL: srv.URL, Client: srv.Client()}
	_, err := p.Fetch(context.Background(), Query{Categories: []string{"nothing"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPixabay_BadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "[ERROR 400] Invalid or missing API key", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := &Pixabay{AK: "bad", BaseURL: srv.URL, Client: srv.Client()}
	_, err := p.Fetch(context.Background(), Query{Categories: []string{"Nature"}})
	assert.ErrorIs(t, err, ErrFetchTransient)
}

func TestPixabayOrientation(t *testing.T) {
	assert.Equal(t, "horizontal", pixabayOrientation("landscape"))
	assert.Equal(t, "vertical", pixabayOrientation("portrait"))
	assert.Equal(t, "all", pixabayOrientation("squarish"))
}

func TestImageExt(t *testing.T) {
	tests := map[string]string{
		"https://cdn.pixabay.com/photo/a_1280.jpg":  ".jpg",
		"https://cdn.pixabay.com/photo/a_1280.JPEG": ".jpeg",
		"https://cdn.pixabay.com/photo/a.png?x=1":   ".png",
		"https://cdn.pixabay.com/photo/a":           ".jpg",
		"https://cdn.pixabay.com/photo/a.gif":       ".jpg",
	}
	for in, want := range tests {
		assert.Equal(t, want, imageExt(in), in)
	}
}
