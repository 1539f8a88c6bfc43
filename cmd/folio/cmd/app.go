package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/content"
	"github.com/nikbrunner/folio/internal/indexer"
	"github.com/nikbrunner/folio/internal/logging"
	"github.com/nikbrunner/folio/internal/search"
	"github.com/nikbrunner/folio/internal/storage"
)

// app wires the configured content, index and search engine for a
// command invocation.
type app struct {
	config    *storage.Config
	logger    *slog.Logger
	library   *content.Library
	indexer   *indexer.Indexer
	engine    *search.Engine
	stateFile string
	cleanup   func()
}

type appKey struct{}

func setApp(cmd *cobra.Command, a *app) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appKey{}, a))
}

func getApp(cmd *cobra.Command) *app {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	a, _ := ctx.Value(appKey{}).(*app)
	return a
}

// close releases the log output. Safe to call more than once.
func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}

func newApp(opts globalOptions) (*app, error) {
	configPath := opts.configPath
	if configPath == "" {
		p, err := storage.DefaultConfigFilePath()
		if err != nil {
			return nil, fmt.Errorf("get config path: %w", err)
		}
		configPath = p
	}

	config, err := storage.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.locale != "" {
		config.Locale = opts.locale
	}
	if opts.contentDir != "" {
		config.ContentDir = opts.contentDir
	}

	logger, cleanup, err := logging.Setup(loggingConfig(config.LogLevel, config.LogFormat, opts.debug))
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	slog.SetDefault(logger)

	fsys, err := contentFS(config.ContentDir)
	if err != nil {
		cleanup()
		return nil, err
	}
	library := content.New(fsys, config.Locale)
	if library.Locale() != strings.ToLower(config.Locale) {
		logger.Debug("locale not available, falling back", "requested", config.Locale, "locale", library.Locale())
	}

	ix := indexer.New(logger, indexer.DefaultSources(library)...)

	searchOpts, err := config.SearchOptions()
	if err != nil {
		cleanup()
		return nil, err
	}
	searchOpts = append(searchOpts, search.WithLogger(logger))
	engine, err := search.New(ix, searchOpts...)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("create search engine: %w", err)
	}

	return &app{
		config:    config,
		logger:    logger,
		library:   library,
		indexer:   ix,
		engine:    engine,
		stateFile: opts.stateFile,
		cleanup:   cleanup,
	}, nil
}

// contentFS returns the embedded content, or dir when set.
func contentFS(dir string) (fs.FS, error) {
	if dir == "" {
		return content.Embedded(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// openStorage opens the filter state storage, honoring --state-file.
func (a *app) openStorage() (storage.Storage, func(), error) {
	noop := func() {}
	if a.stateFile == "" {
		s, err := storage.OpenStorage()
		if err != nil {
			return nil, noop, err
		}
		if db, ok := s.(*storage.SQLiteStorage); ok {
			return s, func() { _ = db.Close() }, nil
		}
		return s, noop, nil
	}

	if strings.EqualFold(filepath.Ext(a.stateFile), ".db") {
		db, err := storage.NewSQLiteStorage(a.stateFile)
		if err != nil {
			return nil, noop, err
		}
		return db, func() { _ = db.Close() }, nil
	}
	return storage.NewJSONStorage(a.stateFile), noop, nil
}
