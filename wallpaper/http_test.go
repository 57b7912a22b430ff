package wallpaper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGet_ResponseLimit(t *testing.T) {
	defer func(n int64) { maxResponseBytes = n }(maxResponseBytes)
	maxResponseBytes = 8

	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{name: "under the limit", size: 7},
		{name: "at the limit", size: 8},
		{name: "one byte over", size: 9, wantErr: ErrFetchTransient},
		{name: "far over", size: 1 << 20, wantErr: ErrFetchTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write(make([]byte, tt.size))
			}))
			defer srv.Close()

			b, err := httpGet(context.Background(), srv.Client(), srv.URL, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Len(t, b, tt.size)
		})
	}
}
