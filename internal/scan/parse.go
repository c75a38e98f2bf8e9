package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrModelDirFormat indicates a model directory name without a variant
// separator. The error is fatal: a malformed name aborts the whole scan.
var ErrModelDirFormat = errors.New("model directory name has no variant separator")

// ErrNotDirectory indicates a path that was expected to be a directory.
var ErrNotDirectory = errors.New("not a directory")

// Identity is the catalog identity derived from a model directory path.
type Identity struct {
	Creator    string
	Collection string
	Name       string // directory name with the variant token stripped
	Variant    string // trailing token after the last separator, usually a UUID
}

// SplitModelDirName splits a model directory name into its semantic name
// and trailing variant token. The split happens on the last "-", so
// separators inside the name itself are tolerated: "Dark-Tower-abc123"
// yields ("Dark-Tower", "abc123"). A name without any separator returns
// ErrModelDirFormat.
func SplitModelDirName(dir string) (name, variant string, err error) {
	i := strings.LastIndex(dir, "-")
	if i < 0 {
		return "", "", fmt.Errorf("%q: %w", dir, ErrModelDirFormat)
	}
	return dir[:i], dir[i+1:], nil
}

// ParseModelPath derives a model's catalog identity from its directory
// path. The last three path segments are read as creator, collection and
// model directory name.
func ParseModelPath(path string) (Identity, error) {
	segments := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	if len(segments) < 3 {
		return Identity{}, fmt.Errorf("model path %q has fewer than three segments", path)
	}

	dir := segments[len(segments)-1]
	name, variant, err := SplitModelDirName(dir)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		Creator:    segments[len(segments)-3],
		Collection: segments[len(segments)-2],
		Name:       name,
		Variant:    variant,
	}, nil
}
