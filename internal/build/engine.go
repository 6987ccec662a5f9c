package build

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/modernist/Akkatecture-Documentation/internal/assets"
	"github.com/modernist/Akkatecture-Documentation/internal/cli"
	"github.com/modernist/Akkatecture-Documentation/internal/config"
	"github.com/modernist/Akkatecture-Documentation/internal/content"
	"github.com/modernist/Akkatecture-Documentation/internal/core"
)

// Engine runs one full static build: content in, finished site out.
type Engine struct {
	cfg  *config.Settings
	mode core.Mode
	out  *cli.Output
	log  *zap.Logger
}

func NewEngine(cfg *config.Settings, mode core.Mode, out *cli.Output, log *zap.Logger) *Engine {
	return &Engine{
		cfg:  cfg,
		mode: mode,
		out:  out,
		log:  log,
	}
}

func (e *Engine) Run(ctx context.Context) error {
	e.out.PrintHeader("Docsite Build")
	report := cli.NewBuildReport(e.out, e.cfg.Output.Dir)

	step := report.StartStep("load content")
	lessons, problems, err := content.LoadDir(e.cfg.Content.Dir)
	if err != nil {
		report.EndStep(step, false, err.Error())
		report.PrintSummary()
		return fmt.Errorf("loading content from %s: %w", e.cfg.Content.Dir, err)
	}
	for _, p := range problems {
		report.AddWarning(p.SourcePath, p.Err.Error())
		e.log.Warn("skipping content file", zap.String("path", p.SourcePath), zap.Error(p.Err))
	}
	report.EndStep(step, true, "")

	var inlineCSS string
	if e.mode == core.ModeProd {
		step = report.StartStep("read stylesheet")
		inlineCSS = assets.InlineStylesheet(e.cfg.Assets.Stylesheet, e.log)
		report.EndStep(step, true, "")
	}

	step = report.StartStep("render pages")
	if err := ctx.Err(); err != nil {
		report.EndStep(step, false, err.Error())
		report.PrintSummary()
		return err
	}
	pages, renderProblems := AssemblePages(lessons, e.cfg, e.mode, inlineCSS)
	for _, p := range renderProblems {
		report.AddWarning(p.Source, p.Err.Error())
		e.log.Warn("skipping page", zap.String("source", p.Source), zap.Error(p.Err))
	}
	report.SetPageCount(len(pages))
	report.EndStep(step, true, "")

	step = report.StartStep("write output")
	if err := e.writePages(ctx, pages); err != nil {
		report.EndStep(step, false, err.Error())
		report.PrintSummary()
		return err
	}
	report.EndStep(step, true, "")

	step = report.StartStep("copy public assets")
	copied, err := e.copyPublic(ctx)
	if err != nil {
		report.EndStep(step, false, err.Error())
		report.PrintSummary()
		return err
	}
	report.EndStep(step, true, "")
	if copied > 0 {
		e.out.PrintStep("copied %d public files", copied)
	}

	report.PrintSummary()
	return nil
}

func (e *Engine) writePages(ctx context.Context, pages []Page) error {
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}

		target := e.outputPathForRoute(page.Route)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating output dir for %s: %w", page.Route, err)
		}
		if err := atomic.WriteFile(target, bytes.NewReader([]byte(page.HTML))); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		e.out.PrintFile(target)
	}
	return nil
}

func (e *Engine) outputPathForRoute(route string) string {
	if route == "/" {
		return filepath.Join(e.cfg.Output.Dir, "index.html")
	}
	rel := strings.TrimPrefix(core.NormalizePath(route), "/")
	return filepath.Join(e.cfg.Output.Dir, filepath.FromSlash(rel), "index.html")
}

func (e *Engine) copyPublic(ctx context.Context) (int, error) {
	publicDir := e.cfg.Assets.PublicDir
	info, err := os.Stat(publicDir)
	if err != nil || !info.IsDir() {
		// No public dir is fine; nothing to carry over.
		return 0, nil
	}

	count := 0
	err = filepath.WalkDir(publicDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, rerr := filepath.Rel(publicDir, path)
		if rerr != nil {
			return rerr
		}

		target := filepath.Join(e.cfg.Output.Dir, rel)
		if merr := os.MkdirAll(filepath.Dir(target), 0o755); merr != nil {
			return merr
		}

		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return rerr
		}
		if werr := atomic.WriteFile(target, bytes.NewReader(data)); werr != nil {
			return werr
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("copying public assets: %w", err)
	}
	return count, nil
}
