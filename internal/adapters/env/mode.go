package env

import (
	"os"

	"github.com/modernist/Akkatecture-Documentation/internal/core"
)

func DetectMode() core.Mode {
	if os.Getenv("DOCSITE_DEV") == "1" {
		return core.ModeDev
	}
	return core.ModeProd
}
