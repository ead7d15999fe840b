package prefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"storefront-backend/lib/configuration"
	"storefront-backend/lib/htmlutil"

	"github.com/stretchr/testify/require"
)

const productPage = `<!doctype html>
<html>
<body>
	<header><img src="/logo.png" alt="logo"></header>
	<main>
		<img src="/images/cabinet-screw.jpg" alt="Cabinet  Screw" loading="lazy">
		<img alt="broken, no src">
		<img src="/images/scabbard-hook.jpg" srcset="/images/scabbard-hook-2x.jpg 2x">
	</main>
</body>
</html>`

func TestImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/cabinet-screw" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(productPage))
	}))
	defer server.Close()

	service := NewService(Options{BaseUrl: server.URL})
	images := service.Images(context.Background(), "/products/cabinet-screw")

	require.Equal(t, []htmlutil.Image{
		{Src: "/images/cabinet-screw.jpg", Alt: "Cabinet Screw", Loading: "lazy"},
		{Src: "/images/scabbard-hook.jpg", Srcset: "/images/scabbard-hook-2x.jpg 2x"},
	}, images)
}

func TestImagesNotFoundPage(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	service := NewService(Options{BaseUrl: server.URL})
	images := service.Images(context.Background(), "/products/no-such")
	require.Equal(t, []htmlutil.Image{}, images)
}

func TestOptionsBindFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	err := os.WriteFile(path, []byte(`{base_url: "http://localhost:3000"}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	options, err := configuration.ReadConfig[Options](path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", options.BaseUrl)
}

func TestImagesFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	service := NewService(Options{BaseUrl: server.URL})
	images := service.Images(context.Background(), "/products/cabinet-screw")
	require.Equal(t, []htmlutil.Image{}, images)
}
