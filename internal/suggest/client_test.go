package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	t.Run("returns upstream suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/suggest", r.URL.Path)

			var req suggestRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Summer 2024", req.Title)

			json.NewEncoder(w).Encode(suggestResponse{OK: true, Suggestion: "A letter from a warmer day."})
		}))
		defer srv.Close()

		got := New(srv.URL).Suggest(context.Background(), "Summer 2024", nil)
		assert.Equal(t, "A letter from a warmer day.", got)
	})

	t.Run("upstream error degrades to fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		assert.Equal(t, Fallback, New(srv.URL).Suggest(context.Background(), "Trip", nil))
	})

	t.Run("unreachable upstream degrades to fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		assert.Equal(t, Fallback, New(srv.URL).Suggest(context.Background(), "Trip", nil))
	})

	t.Run("unconfigured client always falls back", func(t *testing.T) {
		assert.Equal(t, Fallback, New("").Suggest(context.Background(), "Trip", nil))
	})

	t.Run("image payload is forwarded as base64", func(t *testing.T) {
		var gotImage string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req suggestRequest
			json.NewDecoder(r.Body).Decode(&req)
			gotImage = req.Image
			json.NewEncoder(w).Encode(suggestResponse{OK: true, Suggestion: "ok"})
		}))
		defer srv.Close()

		New(srv.URL).Suggest(context.Background(), "Trip", []byte{0x01, 0x02})
		assert.Equal(t, "AQI=", gotImage)
	})
}
