package main

import (
	"net/http"

	"storefront-backend/lib/htmlutil"
	"storefront-backend/services/prefetch"

	"github.com/go-chi/chi/v5"
)

type prefetchBody struct {
	Images []htmlutil.Image `json:"images"`
}

func InitPrefetch(router chi.Router, config Config) {
	service := prefetch.NewService(config.Prefetch)

	// failures on this path degrade to an empty image list, the
	// response shape is always success
	router.Get("/api/prefetch", func(w http.ResponseWriter, r *http.Request) {
		images := service.Images(r.Context(), r.URL.Query().Get("path"))
		writeJSON(w, http.StatusOK, prefetchBody{Images: images})
	})
}
