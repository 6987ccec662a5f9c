// Package docsite turns a directory of markdown lessons into a
// documentation website: a static build for deployment, or a live
// server for local iteration.
package docsite

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/modernist/Akkatecture-Documentation/internal/adapters/env"
	"github.com/modernist/Akkatecture-Documentation/internal/build"
	"github.com/modernist/Akkatecture-Documentation/internal/cli"
	"github.com/modernist/Akkatecture-Documentation/internal/config"
	"github.com/modernist/Akkatecture-Documentation/internal/core"
	"github.com/modernist/Akkatecture-Documentation/internal/server"
)

type Site struct {
	cfg    *config.Settings
	mode   core.Mode
	log    *zap.Logger
	out    *cli.Output
	server *server.Server
}

type Option func(*Site)

// WithLogger replaces the default no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Site) {
		s.log = log
	}
}

// WithMode overrides the mode detected from the environment.
func WithMode(mode core.Mode) Option {
	return func(s *Site) {
		s.mode = mode
	}
}

func New(configPath string, opts ...Option) (*Site, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	s := &Site{
		cfg:  cfg,
		mode: env.DetectMode(),
		log:  zap.NewNop(),
		out:  cli.NewOutput(),
	}
	for _, opt := range opts {
		opt(s)
	}

	srv, err := server.New(cfg, s.mode, s.log)
	if err != nil {
		return nil, err
	}
	s.server = srv

	return s, nil
}

// Build writes the whole site to the configured output directory.
func (s *Site) Build(ctx context.Context) error {
	engine := build.NewEngine(s.cfg, s.mode, s.out, s.log)
	return engine.Run(ctx)
}

// Wrap serves the site and falls through to api for everything that is
// not a page or public asset.
func (s *Site) Wrap(api http.Handler) http.Handler {
	if api == nil {
		panic("docsite: nil handler passed to Wrap; use site.Handler()")
	}
	return s.server.Wrap(api)
}

func (s *Site) Handler() http.Handler {
	return s.server.Handler()
}

func (s *Site) Addr() string {
	return s.cfg.Server.Addr
}

func (s *Site) Stop() error {
	return s.server.Stop()
}

func IsDev() bool {
	return env.DetectMode() == core.ModeDev
}

func IsProd() bool {
	return env.DetectMode() == core.ModeProd
}
