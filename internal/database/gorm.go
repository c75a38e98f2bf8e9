package database

import (
	"errors"
	"fmt"
	"log/slog"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"modelscan/internal/catalog"
	"modelscan/internal/config"
	"modelscan/internal/scan"
)

// ErrSchemaMissing indicates the catalog schema has not been created.
// The schema is owned by the catalog application; this tool only checks
// that it is present and never migrates it.
var ErrSchemaMissing = errors.New("catalog schema missing")

// GormCatalog implements the catalog store against a relational database
// through GORM.
type GormCatalog struct {
	db *gorm.DB
}

type catalogOptions struct {
	gormLogger logger.Interface
}

// CatalogOption configures a GormCatalog.
type CatalogOption func(*catalogOptions)

// WithNopLogger silences GORM's query logging.
func WithNopLogger() CatalogOption {
	return func(o *catalogOptions) {
		o.gormLogger = logger.New(nil, logger.Config{})
	}
}

// WithGormLogger routes GORM's query logging into the given slog logger.
func WithGormLogger(l *slog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		o.gormLogger = slogGorm.New(
			slogGorm.WithHandler(l.Handler()),
			slogGorm.WithTraceAll(), // trace all statements
		)
	}
}

// NewGormCatalog opens a catalog database and verifies the four catalog
// tables exist.
func NewGormCatalog(dialector gorm.Dialector, cfg config.DatabaseConfig, options ...CatalogOption) (*GormCatalog, error) {
	opts := catalogOptions{}
	for _, option := range options {
		option(&opts)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: opts.gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	c := &GormCatalog{db: db}
	if err := c.checkSchema(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// NewGormCatalogFromDB wraps an existing GORM connection. The caller is
// responsible for the connection's configuration and schema.
func NewGormCatalogFromDB(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// checkSchema verifies every catalog table is present.
func (c *GormCatalog) checkSchema() error {
	for _, table := range []string{"creators", "collections", "models", "model_files"} {
		if !c.db.Migrator().HasTable(table) {
			return fmt.Errorf("table %q: %w", table, ErrSchemaMissing)
		}
	}
	return nil
}

// Creator operations

func (c *GormCatalog) FindCreatorByName(name string) (*catalog.Creator, error) {
	var creator catalog.Creator
	err := c.db.Where("name = ?", name).Take(&creator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding creator by name: %w", err)
	}
	return &creator, nil
}

func (c *GormCatalog) CreateCreator(creator *catalog.Creator) error {
	if err := c.db.Create(creator).Error; err != nil {
		return fmt.Errorf("creating creator: %w", err)
	}
	return nil
}

// Collection operations

func (c *GormCatalog) FindCollection(name string, parentID *int64) (*catalog.Collection, error) {
	// Struct-valued conditions skip zero fields in GORM, so the nil
	// parent has to be spelled out as IS NULL.
	query := c.db.Where("name = ?", name)
	if parentID == nil {
		query = query.Where("collection_id IS NULL")
	} else {
		query = query.Where("collection_id = ?", *parentID)
	}

	var collection catalog.Collection
	err := query.Take(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding collection: %w", err)
	}
	return &collection, nil
}

func (c *GormCatalog) CreateCollection(collection *catalog.Collection) error {
	if err := c.db.Create(collection).Error; err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}
	return nil
}

// Model operations

func (c *GormCatalog) CreateModel(model *catalog.Model) error {
	if err := c.db.Create(model).Error; err != nil {
		return fmt.Errorf("creating model: %w", err)
	}
	return nil
}

func (c *GormCatalog) CreateModelFile(file *catalog.ModelFile) error {
	if err := c.db.Create(file).Error; err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (c *GormCatalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Compile-time check that GormCatalog implements scan.Catalog
var _ scan.Catalog = (*GormCatalog)(nil)
