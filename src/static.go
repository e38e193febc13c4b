package game

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticFileServer serves the client bundle from a directory, falling back
// to index.html for paths the client-side router owns.
func StaticFileServer(dir string, fallbackPath string) http.Handler {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Fatalf("Static directory does not exist: %s", dir)
	}

	fs := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := filepath.Clean(r.URL.Path)
		if strings.Contains(clean, "..") {
			http.NotFound(w, r)
			return
		}

		if _, err := os.Stat(filepath.Join(dir, clean)); err == nil {
			fs.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, filepath.Join(dir, fallbackPath))
	})
}
