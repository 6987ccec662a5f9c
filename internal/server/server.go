package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/modernist/Akkatecture-Documentation/internal/assets"
	"github.com/modernist/Akkatecture-Documentation/internal/build"
	"github.com/modernist/Akkatecture-Documentation/internal/config"
	"github.com/modernist/Akkatecture-Documentation/internal/content"
	"github.com/modernist/Akkatecture-Documentation/internal/core"
)

const devCacheTTL = 30 * time.Second

// Server serves the site over HTTP. In dev mode pages are assembled on
// demand from the content dir with live reload; in prod mode the site
// is assembled once and pinned in the cache.
type Server struct {
	cfg     *config.Settings
	mode    core.Mode
	log     *zap.Logger
	cache   *siteCache
	hub     *reloadHub
	watcher *fsnotify.Watcher
}

func New(cfg *config.Settings, mode core.Mode, log *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:  cfg,
		mode: mode,
		log:  log,
	}

	if mode == core.ModeDev {
		s.cache = newSiteCache(devCacheTTL)
		s.hub = newReloadHub()
		if err := s.startWatcher(cfg.Content.Dir, cfg.Assets.PublicDir); err != nil {
			// A broken watcher only loses live reload; keep serving.
			log.Warn("file watcher unavailable, live reload disabled", zap.Error(err))
		}
	} else {
		s.cache = newSiteCache(0)
	}

	return s, nil
}

func (s *Server) Stop() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// site returns the current route → document snapshot, assembling it if
// the cache is cold.
func (s *Server) site() (map[string]string, error) {
	if pages, ok := s.cache.get(); ok {
		return pages, nil
	}

	lessons, problems, err := content.LoadDir(s.cfg.Content.Dir)
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		s.log.Warn("skipping content file", zap.String("path", p.SourcePath), zap.Error(p.Err))
	}

	var inlineCSS string
	if s.mode == core.ModeProd {
		inlineCSS = assets.InlineStylesheet(s.cfg.Assets.Stylesheet, s.log)
	}

	pages, renderProblems := build.AssemblePages(lessons, s.cfg, s.mode, inlineCSS)
	for _, p := range renderProblems {
		s.log.Warn("skipping page", zap.String("source", p.Source), zap.Error(p.Err))
	}

	snapshot := make(map[string]string, len(pages))
	for _, page := range pages {
		snapshot[page.Route] = page.HTML
	}

	s.cache.set(snapshot)
	return snapshot, nil
}

func (s *Server) servePage(w http.ResponseWriter, req *http.Request, next http.Handler) {
	pages, err := s.site()
	if err != nil {
		s.serveError(w, err)
		return
	}

	route := core.NormalizePath(req.URL.Path)
	html, ok := pages[route]
	if !ok {
		next.ServeHTTP(w, req)
		return
	}

	html = appendReloadScript(html, s.mode == core.ModeDev)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (s *Server) serveError(w http.ResponseWriter, err error) {
	s.log.Error("page render failed", zap.Error(err))

	var buf bytes.Buffer
	terr := core.ErrorTemplate.Execute(&buf, core.ErrorData{
		Message: err.Error(),
		IsDev:   s.mode == core.ModeDev,
	})
	if terr != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}

// Wrap builds the full request chain: reload endpoint, public assets,
// pages, and finally next for anything that is not a site route.
func (s *Server) Wrap(next http.Handler) http.Handler {
	pageHandler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.servePage(w, req, next)
	})
	chain := assets.PublicHandler(s.cfg.Assets.PublicDir, pageHandler)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/__reload" {
			s.serveReloadSSE(w, req)
			return
		}
		chain.ServeHTTP(w, req)
	})
}

func (s *Server) Handler() http.Handler {
	return s.Wrap(http.NotFoundHandler())
}
