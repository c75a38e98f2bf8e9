package catalog

import "time"

// Creator represents an artist or publisher that models belong to.
// Name is the idempotent lookup key: the importer creates a Creator
// the first time a name is seen and never updates it afterwards.
type Creator struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:index_creators_on_name"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
	Notes     *string   `gorm:"column:notes"`
	Caption   *string   `gorm:"column:caption"`
	Slug      *string   `gorm:"column:slug;uniqueIndex:index_creators_on_slug"`
}

func (Creator) TableName() string { return "creators" }

// Collection groups models under a creator. ParentID is a self-reference
// supporting nested collections; a top-level collection has a nil parent.
// (Name, ParentID) is the idempotent lookup key.
type Collection struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex:index_collections_on_name_and_parent"`
	Notes     *string   `gorm:"column:notes"`
	Caption   *string   `gorm:"column:caption"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
	ParentID  *int64    `gorm:"column:collection_id;uniqueIndex:index_collections_on_name_and_parent"`
	Slug      *string   `gorm:"column:slug;uniqueIndex:index_collections_on_slug"`
}

func (Collection) TableName() string { return "collections" }

// Model represents one model directory. Name is the directory name with
// the trailing variant token stripped; Path is relative to the scanned
// root. Models have no lookup key, so re-importing the same tree inserts
// new rows.
type Model struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Path          string    `gorm:"column:path;not null"`
	LibraryID     int64     `gorm:"column:library_id;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
	PreviewFileID *int64    `gorm:"column:preview_file_id"`
	CreatorID     *int64    `gorm:"column:creator_id"`
	Notes         *string   `gorm:"column:notes"`
	Caption       *string   `gorm:"column:caption"`
	CollectionID  *int64    `gorm:"column:collection_id"`
	Slug          *string   `gorm:"column:slug"`
	License       *string   `gorm:"column:license"`
}

func (Model) TableName() string { return "models" }

// ModelFile represents one regular file found anywhere under a model
// directory. Digest is the SHA-512 of the file content as lowercase hex.
// PresupportedVersionID can point at another ModelFile but is never set
// by the importer.
type ModelFile struct {
	ID                    int64     `gorm:"column:id;primaryKey"`
	Filename              string    `gorm:"column:filename;uniqueIndex:index_model_files_on_filename_and_model_id"`
	ModelID               int64     `gorm:"column:model_id;not null;uniqueIndex:index_model_files_on_filename_and_model_id"`
	CreatedAt             time.Time `gorm:"column:created_at;not null"`
	UpdatedAt             time.Time `gorm:"column:updated_at;not null"`
	Presupported          bool      `gorm:"column:presupported;not null"`
	YUp                   bool      `gorm:"column:y_up;not null"`
	Digest                string    `gorm:"column:digest;index:index_model_files_on_digest"`
	Notes                 string    `gorm:"column:notes"`
	Caption               string    `gorm:"column:caption"`
	Size                  int64     `gorm:"column:size"`
	PresupportedVersionID *int64    `gorm:"column:presupported_version_id"`
}

func (ModelFile) TableName() string { return "model_files" }
