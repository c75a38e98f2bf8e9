package scan

import "modelscan/internal/catalog"

// Catalog provides access to the model catalog database.
// Find methods return (nil, nil) when no row matches; every Create is an
// immediate write-through (insert plus commit), never batched.
type Catalog interface {
	// Creator operations

	// FindCreatorByName returns the creator with an exact name match.
	FindCreatorByName(name string) (*catalog.Creator, error)

	// CreateCreator inserts a new creator row and populates its ID.
	CreateCreator(creator *catalog.Creator) error

	// Collection operations

	// FindCollection returns the collection with an exact name match under
	// the given parent. A nil parentID matches top-level collections only.
	FindCollection(name string, parentID *int64) (*catalog.Collection, error)

	// CreateCollection inserts a new collection row and populates its ID.
	CreateCollection(collection *catalog.Collection) error

	// Model operations

	// CreateModel inserts a new model row and populates its ID.
	// Models have no lookup key; repeated imports insert duplicates.
	CreateModel(model *catalog.Model) error

	// CreateModelFile inserts a new model file row and populates its ID.
	CreateModelFile(file *catalog.ModelFile) error

	// Close closes the underlying connection.
	Close() error
}
