package scan

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"modelscan/internal/catalog"
)

// Options configure optional scan behavior. The zero value runs a
// strictly sequential scan of the flat creator/collection/model layout
// with no ignore patterns.
type Options struct {
	// Workers sets how many model directories are imported concurrently.
	// Values below 2 keep the scan fully sequential.
	Workers int

	// NestedCollections treats separator-less directories at the model
	// level as nested collections instead of failing the name parse.
	NestedCollections bool

	// IgnorePatterns lists glob patterns for files to skip. Patterns
	// containing '/' match root-relative paths, others match basenames.
	IgnorePatterns []string
}

// Summary reports how many rows a scan created. Counts cover created rows
// only; creators and collections found by lookup are not counted again.
type Summary struct {
	Creators    int
	Collections int
	Models      int
	Files       int

	mu sync.Mutex
}

func (s *Summary) addCreator()    { s.mu.Lock(); s.Creators++; s.mu.Unlock() }
func (s *Summary) addCollection() { s.mu.Lock(); s.Collections++; s.mu.Unlock() }
func (s *Summary) addModel()      { s.mu.Lock(); s.Models++; s.mu.Unlock() }
func (s *Summary) addFile()       { s.mu.Lock(); s.Files++; s.mu.Unlock() }

// Service orchestrates an import: it walks the on-disk library, resolves
// creators and collections, and records model and file rows through the
// Catalog. A scan aborts on the first error of any kind; rows written
// before the failure stay in place.
type Service struct {
	catalog Catalog
	logger  Logger
	clock   Clock
	ignore  *IgnoreMatcher
	workers int
	nested  bool
}

// NewService creates a Service with the provided dependencies.
func NewService(catalog Catalog, logger Logger, clock Clock, opts Options) *Service {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Service{
		catalog: catalog,
		logger:  logger,
		clock:   clock,
		ignore:  NewIgnoreMatcher(opts.IgnorePatterns),
		workers: workers,
		nested:  opts.NestedCollections,
	}
}

// runner carries the state of a single scan run.
type runner struct {
	*Service
	root      string
	libraryID int64
	sum       *Summary
	g         *errgroup.Group
	ctx       context.Context
}

// Run imports the library rooted at root. Every model row is stamped with
// libraryID. The returned Summary is valid even on error and reflects the
// rows created before the scan aborted.
func (s *Service) Run(root string, libraryID int64) (*Summary, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("checking scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: %w", root, ErrNotDirectory)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(s.workers)

	r := &runner{
		Service:   s,
		root:      root,
		libraryID: libraryID,
		sum:       &Summary{},
		g:         g,
		ctx:       ctx,
	}

	walkErr := r.walkRoot()
	if err := g.Wait(); err != nil {
		return r.sum, err
	}
	if walkErr != nil {
		return r.sum, walkErr
	}

	s.logger.Info("scan complete",
		"creators", r.sum.Creators,
		"collections", r.sum.Collections,
		"models", r.sum.Models,
		"files", r.sum.Files,
	)
	return r.sum, nil
}

// dispatch runs task inline when the scan is sequential, otherwise hands
// it to the worker pool. Once a worker has failed, nothing new is
// scheduled.
func (r *runner) dispatch(task func() error) error {
	if r.workers <= 1 {
		return task()
	}
	if err := r.ctx.Err(); err != nil {
		return err
	}
	r.g.Go(task)
	return nil
}

// walkRoot iterates creator directories, then their collection
// directories. A stray file at either level fails the scan; only the
// model level skips non-directories.
func (r *runner) walkRoot() error {
	creators, err := os.ReadDir(r.root)
	if err != nil {
		return fmt.Errorf("reading root directory: %w", err)
	}

	for _, creator := range creators {
		r.logger.Info("processing creator", "name", creator.Name())
		creatorPath := filepath.Join(r.root, creator.Name())

		collections, err := os.ReadDir(creatorPath)
		if err != nil {
			return fmt.Errorf("reading creator directory: %w", err)
		}

		for _, coll := range collections {
			r.logger.Info("processing collection", "name", coll.Name())
			collPath := filepath.Join(creatorPath, coll.Name())

			if r.nested {
				if !coll.IsDir() {
					return fmt.Errorf("collection %s: %w", collPath, ErrNotDirectory)
				}
				parent, err := r.resolveCollection(coll.Name(), nil)
				if err != nil {
					return err
				}
				if err := r.walkCollection(collPath, creator.Name(), parent); err != nil {
					return err
				}
				continue
			}

			if err := r.walkModels(collPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkModels iterates the entries of a collection directory in the flat
// three-level layout. Creator and collection are resolved per model
// directory in the walking goroutine only; the worker pool never runs
// the non-atomic lookup-then-insert.
func (r *runner) walkModels(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading collection directory: %w", err)
	}

	for _, entry := range entries {
		modelPath := filepath.Join(dir, entry.Name())
		info, err := os.Stat(modelPath)
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", modelPath, err)
		}
		if !info.IsDir() {
			continue
		}

		r.logger.Info("processing model", "name", entry.Name())

		identity, err := ParseModelPath(modelPath)
		if err != nil {
			return err
		}
		r.logger.Debug("parsed model directory", "name", identity.Name, "variant", identity.Variant)

		creator, err := r.resolveCreator(identity.Creator)
		if err != nil {
			return err
		}
		collection, err := r.resolveCollection(identity.Collection, nil)
		if err != nil {
			return err
		}

		if err := r.dispatchModel(modelPath, identity.Name, creator.ID, collection.ID); err != nil {
			return err
		}
	}
	return nil
}

// walkCollection handles one collection directory in nested mode. A child
// directory with a variant separator is a model; one without is a nested
// collection and is descended into.
func (r *runner) walkCollection(dir, creatorName string, parent *catalog.Collection) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading collection directory: %w", err)
	}

	for _, entry := range entries {
		childPath := filepath.Join(dir, entry.Name())
		info, err := os.Stat(childPath)
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", childPath, err)
		}
		if !info.IsDir() {
			continue
		}

		if !strings.Contains(entry.Name(), "-") {
			r.logger.Info("processing collection", "name", entry.Name(), "parent", parent.Name)
			child, err := r.resolveCollection(entry.Name(), &parent.ID)
			if err != nil {
				return err
			}
			if err := r.walkCollection(childPath, creatorName, child); err != nil {
				return err
			}
			continue
		}

		r.logger.Info("processing model", "name", entry.Name())

		name, variant, err := SplitModelDirName(entry.Name())
		if err != nil {
			return err
		}
		r.logger.Debug("parsed model directory", "name", name, "variant", variant)

		creator, err := r.resolveCreator(creatorName)
		if err != nil {
			return err
		}

		if err := r.dispatchModel(childPath, name, creator.ID, parent.ID); err != nil {
			return err
		}
	}
	return nil
}

// dispatchModel relativizes the model path and schedules its import.
func (r *runner) dispatchModel(modelPath, name string, creatorID, collectionID int64) error {
	relPath, err := filepath.Rel(r.root, modelPath)
	if err != nil {
		return fmt.Errorf("relativizing %s: %w", modelPath, err)
	}
	relPath = filepath.ToSlash(relPath)

	return r.dispatch(func() error {
		return r.importModel(modelPath, relPath, name, creatorID, collectionID)
	})
}

// importModel records the model row, then every file beneath its
// directory.
func (r *runner) importModel(dir, relPath, name string, creatorID, collectionID int64) error {
	now := r.clock.Now()
	model := &catalog.Model{
		Name:         name,
		Path:         relPath,
		LibraryID:    r.libraryID,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatorID:    &creatorID,
		CollectionID: &collectionID,
	}
	if err := r.catalog.CreateModel(model); err != nil {
		return fmt.Errorf("creating model %q: %w", name, err)
	}
	r.sum.addModel()
	r.logger.Info("model created", "name", name, "path", relPath, "id", model.ID)

	return r.importModelFiles(model.ID, dir, relPath)
}

// importModelFiles creates a row for every regular file beneath dir,
// recursing into subdirectories. relDir is dir relative to the scan root.
func (r *runner) importModelFiles(modelID int64, dir, relDir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading model directory: %w", err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())
		relPath := path.Join(relDir, entry.Name())

		switch {
		case entry.IsDir():
			r.logger.Info("processing directory", "name", entry.Name())
			if err := r.importModelFiles(modelID, entryPath, relPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if r.ignore.Match(relPath) {
				r.logger.Debug("file ignored", "path", relPath)
				continue
			}
			if err := r.importFile(modelID, entryPath, entry); err != nil {
				return err
			}
		default:
			r.logger.Debug("skipping irregular entry", "path", relPath)
		}
	}
	return nil
}

// importFile digests one regular file and records its row.
func (r *runner) importFile(modelID int64, filePath string, entry os.DirEntry) error {
	r.logger.Info("processing file", "name", entry.Name())

	info, err := entry.Info()
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", filePath, err)
	}
	digest, err := FileDigest(filePath)
	if err != nil {
		return fmt.Errorf("digesting %s: %w", filePath, err)
	}

	now := r.clock.Now()
	file := &catalog.ModelFile{
		Filename:  entry.Name(),
		ModelID:   modelID,
		CreatedAt: now,
		UpdatedAt: now,
		Digest:    digest,
		Size:      info.Size(),
	}
	if err := r.catalog.CreateModelFile(file); err != nil {
		return fmt.Errorf("creating model file %q: %w", entry.Name(), err)
	}
	r.sum.addFile()
	return nil
}

// resolveCreator returns the creator with the given name, creating it on
// first encounter. The store is queried every time, with no in-run cache,
// so a dry-run store reports every creator as new.
func (r *runner) resolveCreator(name string) (*catalog.Creator, error) {
	existing, err := r.catalog.FindCreatorByName(name)
	if err != nil {
		return nil, fmt.Errorf("looking up creator %q: %w", name, err)
	}
	if existing != nil {
		return existing, nil
	}

	now := r.clock.Now()
	creator := &catalog.Creator{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := r.catalog.CreateCreator(creator); err != nil {
		return nil, fmt.Errorf("creating creator %q: %w", name, err)
	}
	r.sum.addCreator()
	r.logger.Info("creator created", "name", name, "id", creator.ID)
	return creator, nil
}

// resolveCollection is the collection counterpart of resolveCreator,
// scoped by the parent collection. A nil parentID is a top-level
// collection.
func (r *runner) resolveCollection(name string, parentID *int64) (*catalog.Collection, error) {
	existing, err := r.catalog.FindCollection(name, parentID)
	if err != nil {
		return nil, fmt.Errorf("looking up collection %q: %w", name, err)
	}
	if existing != nil {
		return existing, nil
	}

	now := r.clock.Now()
	collection := &catalog.Collection{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		ParentID:  parentID,
	}
	if err := r.catalog.CreateCollection(collection); err != nil {
		return nil, fmt.Errorf("creating collection %q: %w", name, err)
	}
	r.sum.addCollection()
	r.logger.Info("collection created", "name", name, "id", collection.ID)
	return collection, nil
}
