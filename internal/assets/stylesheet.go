package assets

import (
	"os"

	"go.uber.org/zap"
)

// InlineStylesheet reads the production stylesheet so the build can
// inline it into every document head. An unreadable stylesheet is not
// fatal: the failure is logged and pages render without the inline
// style block.
func InlineStylesheet(path string, log *zap.Logger) string {
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("stylesheet unreadable, skipping inline css",
			zap.String("path", path),
			zap.Error(err))
		return ""
	}

	return string(data)
}
