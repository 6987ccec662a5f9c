package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func ValidateRoutePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with /")
	}

	if strings.Contains(path, "?") {
		return fmt.Errorf("path cannot contain query string")
	}

	if strings.Contains(path, "#") {
		return fmt.Errorf("path cannot contain fragment")
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("path cannot contain parent directory references")
	}

	return nil
}

// SlugForSource derives the URL slug for a content source file.
// "content/2-aggregates.md" becomes "aggregates"; a numeric ordinal
// prefix only orders lessons, it never appears in the URL.
func SlugForSource(sourcePath string) string {
	name := filepath.Base(filepath.ToSlash(sourcePath))
	name = strings.TrimSuffix(name, filepath.Ext(name))

	if i := strings.IndexAny(name, "-_"); i > 0 {
		if isAllDigits(name[:i]) {
			name = name[i+1:]
		}
	}

	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" {
		return "page"
	}
	return name
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
