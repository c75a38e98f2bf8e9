package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"modelscan/internal/config"
	"modelscan/internal/database"
	"modelscan/internal/scan"
)

// App is the application layer between the CLI and the scan service.
// It constructs all dependencies from config, exposes the scan operation,
// and manages the catalog connection lifecycle on Close.
type App struct {
	cfg     *config.Config
	catalog scan.Catalog
	service *scan.Service
	logger  *slog.Logger
	logFile io.Closer
	dryRun  bool
}

// NewApp creates a fully wired App. dbURI identifies the catalog
// database; when dryRun is set no connection is opened and the logging
// stand-in records intended writes instead. The caller must call Close
// when done.
func NewApp(cfg *config.Config, dbURI string, dryRun bool) (*App, error) {
	scanID := uuid.New().String()

	logger, logFile, err := newLogger(cfg.LogDir, scanID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	serviceLogger := &slogAdapter{l: logger}

	var cat scan.Catalog
	if dryRun {
		cat = database.NewDryRunCatalog(serviceLogger)
	} else {
		cat, err = database.NewCatalogFromURI(dbURI, cfg.Database, logger)
		if err != nil {
			logFile.Close()
			return nil, fmt.Errorf("opening catalog database: %w", err)
		}
	}

	svc := scan.NewService(cat, serviceLogger, scan.RealClock{}, scan.Options{
		Workers:           cfg.Scan.Workers,
		NestedCollections: cfg.Scan.NestedCollections,
		IgnorePatterns:    cfg.Scan.Ignore,
	})

	return &App{
		cfg:     cfg,
		catalog: cat,
		service: svc,
		logger:  logger,
		logFile: logFile,
		dryRun:  dryRun,
	}, nil
}

// Scan imports the library rooted at root, stamping every model row with
// libraryID.
func (a *App) Scan(root string, libraryID int64) (*scan.Summary, error) {
	a.logger.Info("scan starting", "root", root, "library_id", libraryID, "dry_run", a.dryRun)
	sum, err := a.service.Run(root, libraryID)
	if err != nil {
		a.logger.Error("scan aborted", "error", err)
		return sum, err
	}
	return sum, nil
}

// Close closes the catalog connection and the log file.
func (a *App) Close() error {
	var firstErr error

	if err := a.catalog.Close(); err != nil {
		firstErr = fmt.Errorf("closing catalog: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}
