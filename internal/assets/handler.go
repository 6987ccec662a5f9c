package assets

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/modernist/Akkatecture-Documentation/internal/core"
)

// PublicHandler serves files from publicDir as-is, falling through to
// next for anything that is not a public file.
func PublicHandler(publicDir string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := strings.TrimPrefix(req.URL.Path, "/")
		if path == "" || !publicFileExists(publicDir, path) {
			next.ServeHTTP(w, req)
			return
		}
		servePublicFile(w, req, publicDir, path)
	})
}

func publicFileExists(publicDir, path string) bool {
	full, ok := securePublicPath(publicDir, path)
	if !ok {
		return false
	}
	info, err := os.Stat(full)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func servePublicFile(w http.ResponseWriter, req *http.Request, publicDir, path string) {
	full, ok := securePublicPath(publicDir, path)
	if !ok {
		http.NotFound(w, req)
		return
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		http.NotFound(w, req)
		return
	}

	file, err := os.Open(full)
	if err != nil {
		http.NotFound(w, req)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	w.Header().Set("Content-Type", core.GetContentType(path))
	http.ServeContent(w, req, info.Name(), info.ModTime(), file)
}

// securePublicPath keeps request paths inside the public dir.
func securePublicPath(publicDir, path string) (string, bool) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.Join(publicDir, cleaned), true
}
