package database

import (
	"modelscan/internal/catalog"
	"modelscan/internal/scan"
)

// DryRunCatalog is the logging stand-in used for dry runs. No connection
// is opened: every Create logs the row it would insert, and every Find
// reports a miss. Because lookups never hit, a repeated creator or
// collection name is treated as new every time it is seen.
type DryRunCatalog struct {
	logger scan.Logger
}

// NewDryRunCatalog creates a DryRunCatalog logging through logger.
func NewDryRunCatalog(logger scan.Logger) *DryRunCatalog {
	return &DryRunCatalog{logger: logger}
}

// nullable renders an optional column for logging.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func (d *DryRunCatalog) FindCreatorByName(string) (*catalog.Creator, error) {
	return nil, nil
}

func (d *DryRunCatalog) CreateCreator(creator *catalog.Creator) error {
	d.logger.Info("would insert creator",
		"name", creator.Name,
		"created_at", creator.CreatedAt,
		"updated_at", creator.UpdatedAt,
		"notes", nullable(creator.Notes),
		"caption", nullable(creator.Caption),
		"slug", nullable(creator.Slug),
	)
	return nil
}

func (d *DryRunCatalog) FindCollection(string, *int64) (*catalog.Collection, error) {
	return nil, nil
}

func (d *DryRunCatalog) CreateCollection(collection *catalog.Collection) error {
	d.logger.Info("would insert collection",
		"name", collection.Name,
		"notes", nullable(collection.Notes),
		"caption", nullable(collection.Caption),
		"created_at", collection.CreatedAt,
		"updated_at", collection.UpdatedAt,
		"collection_id", nullable(collection.ParentID),
		"slug", nullable(collection.Slug),
	)
	return nil
}

func (d *DryRunCatalog) CreateModel(model *catalog.Model) error {
	d.logger.Info("would insert model",
		"name", model.Name,
		"path", model.Path,
		"library_id", model.LibraryID,
		"created_at", model.CreatedAt,
		"updated_at", model.UpdatedAt,
		"preview_file_id", nullable(model.PreviewFileID),
		"creator_id", nullable(model.CreatorID),
		"notes", nullable(model.Notes),
		"caption", nullable(model.Caption),
		"collection_id", nullable(model.CollectionID),
		"slug", nullable(model.Slug),
		"license", nullable(model.License),
	)
	return nil
}

func (d *DryRunCatalog) CreateModelFile(file *catalog.ModelFile) error {
	d.logger.Info("would insert model file",
		"filename", file.Filename,
		"model_id", file.ModelID,
		"created_at", file.CreatedAt,
		"updated_at", file.UpdatedAt,
		"presupported", file.Presupported,
		"y_up", file.YUp,
		"digest", file.Digest,
		"notes", file.Notes,
		"caption", file.Caption,
		"size", file.Size,
		"presupported_version_id", nullable(file.PresupportedVersionID),
	)
	return nil
}

func (d *DryRunCatalog) Close() error { return nil }

// Compile-time check that DryRunCatalog implements scan.Catalog
var _ scan.Catalog = (*DryRunCatalog)(nil)
