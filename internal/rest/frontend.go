package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the built single page application. Unknown paths
// fall back to the index file so client side routing keeps working.
type FrontendHandler struct {
	dir   string
	index string
}

func NewFrontendHandler(dir string, index string) *FrontendHandler {
	return &FrontendHandler{dir: dir, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))
	if !strings.HasPrefix(requested, filepath.Clean(h.dir)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(requested)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, h.index))
		return
	}
	http.ServeFile(w, r, requested)
}
