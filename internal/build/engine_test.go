package build

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/modernist/Akkatecture-Documentation/internal/cli"
	"github.com/modernist/Akkatecture-Documentation/internal/config"
	"github.com/modernist/Akkatecture-Documentation/internal/core"
)

func setupProject(t *testing.T) *config.Settings {
	t.Helper()
	root := t.TempDir()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Content.Dir = filepath.Join(root, "content")
	cfg.Assets.PublicDir = filepath.Join(root, "public")
	cfg.Assets.Stylesheet = filepath.Join(root, "public", "styles", "styles.css")
	cfg.Output.Dir = filepath.Join(root, "public_html")

	require.NoError(t, os.MkdirAll(cfg.Content.Dir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "public", "styles"), 0o755))

	writeFile(t, filepath.Join(cfg.Content.Dir, "1-akkatecture.md"),
		"---\ntitle: Akkatecture\nlesson: 1\n---\n\n# Akkatecture\n")
	writeFile(t, filepath.Join(cfg.Content.Dir, "2-aggregates.md"),
		"---\ntitle: Aggregates\nlesson: 2\n---\n\n# Aggregates\n")
	writeFile(t, cfg.Assets.Stylesheet, "body { margin: 0 }")

	return cfg
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func newTestOutput() *cli.Output {
	out := cli.NewOutput()
	out.DisableColors()
	return out
}

func TestEngineRunProd(t *testing.T) {
	cfg := setupProject(t)
	engine := NewEngine(cfg, core.ModeProd, newTestOutput(), zap.NewNop())

	require.NoError(t, engine.Run(context.Background()))

	index := readFile(t, filepath.Join(cfg.Output.Dir, "index.html"))
	assert.Contains(t, index, `href="/aggregates"`)
	assert.Contains(t, index, "<style>body { margin: 0 }</style>")

	lesson := readFile(t, filepath.Join(cfg.Output.Dir, "aggregates", "index.html"))
	assert.Contains(t, lesson, "<h1")
	assert.Contains(t, lesson, "Aggregates")
	assert.Equal(t, 1, strings.Count(lesson, "<style>"))

	// Public assets copied through untouched.
	css := readFile(t, filepath.Join(cfg.Output.Dir, "styles", "styles.css"))
	assert.Equal(t, "body { margin: 0 }", css)
}

func TestEngineRunDevSkipsInlineCSS(t *testing.T) {
	cfg := setupProject(t)
	engine := NewEngine(cfg, core.ModeDev, newTestOutput(), zap.NewNop())

	require.NoError(t, engine.Run(context.Background()))

	index := readFile(t, filepath.Join(cfg.Output.Dir, "index.html"))
	assert.NotContains(t, index, "<style>")
}

func TestEngineRunProdUnreadableStylesheetStillBuilds(t *testing.T) {
	cfg := setupProject(t)
	require.NoError(t, os.Remove(cfg.Assets.Stylesheet))

	engine := NewEngine(cfg, core.ModeProd, newTestOutput(), zap.NewNop())
	require.NoError(t, engine.Run(context.Background()))

	index := readFile(t, filepath.Join(cfg.Output.Dir, "index.html"))
	assert.NotContains(t, index, "<style>")
}

func TestEngineRunBadContentFileIsWarning(t *testing.T) {
	cfg := setupProject(t)
	writeFile(t, filepath.Join(cfg.Content.Dir, "3-broken.md"), "# No front matter\n")

	engine := NewEngine(cfg, core.ModeProd, newTestOutput(), zap.NewNop())
	require.NoError(t, engine.Run(context.Background()))

	_, err := os.Stat(filepath.Join(cfg.Output.Dir, "broken", "index.html"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(cfg.Output.Dir, "aggregates", "index.html"))
	assert.NoError(t, err)
}

func TestEngineRunMissingContentDirFails(t *testing.T) {
	cfg := setupProject(t)
	require.NoError(t, os.RemoveAll(cfg.Content.Dir))

	engine := NewEngine(cfg, core.ModeProd, newTestOutput(), zap.NewNop())
	assert.Error(t, engine.Run(context.Background()))
}

func TestEngineRunCanceledContext(t *testing.T) {
	cfg := setupProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(cfg, core.ModeProd, newTestOutput(), zap.NewNop())
	assert.ErrorIs(t, engine.Run(ctx), context.Canceled)
}

func TestEngineRunCanceledContextPrintsSummary(t *testing.T) {
	cfg := setupProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = oldStderr }()

	engine := NewEngine(cfg, core.ModeProd, newTestOutput(), zap.NewNop())
	runErr := engine.Run(ctx)

	require.NoError(t, w.Close())
	os.Stderr = oldStderr
	captured, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.ErrorIs(t, runErr, context.Canceled)
	assert.Contains(t, string(captured), "render pages")
	assert.Contains(t, string(captured), "context canceled")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
