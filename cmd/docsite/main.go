package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	docsite "github.com/modernist/Akkatecture-Documentation"
	"github.com/modernist/Akkatecture-Documentation/internal/cli"
	"github.com/modernist/Akkatecture-Documentation/internal/config"
	"github.com/modernist/Akkatecture-Documentation/internal/scaffold"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Markdown documentation site builder and dev server",
	Long: `docsite builds a documentation website from a directory of markdown
lesson files: a static build for deployment, or a live-reloading dev
server for writing. Set DOCSITE_DEV=1 for development mode.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site into the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := docsite.New(configPath, docsite.WithLogger(logger))
		if err != nil {
			return err
		}
		defer func() { _ = site.Stop() }()

		return site.Build(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `Serves the site over HTTP. In development mode (DOCSITE_DEV=1) pages
are re-rendered from the content directory on change and connected
browsers reload automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := docsite.New(configPath, docsite.WithLogger(logger))
		if err != nil {
			return err
		}
		defer func() { _ = site.Stop() }()

		srv := &http.Server{
			Addr:    site.Addr(),
			Handler: site.Handler(),
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("serving site", zap.String("addr", srv.Addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new site in the given directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		return scaffold.InitProject(dir, cli.NewOutput())
	},
}

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Scaffold a new lesson file with front matter",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		title := strings.Join(args, " ")

		path, err := scaffold.NewLesson(cfg.Content.Dir, title, cli.NewOutput())
		if err != nil {
			return err
		}
		logger.Info("lesson created", zap.String("path", path))
		return nil
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [dir]",
	Short: "Verify the project layout and repair the output directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		return scaffold.Doctor(dir, cfg.Content.Dir, cfg.Output.Dir, cli.NewOutput())
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "site.yaml", "path to the site config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(buildCmd, serveCmd, initCmd, newCmd, doctorCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
