package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMode is the permission of files created by Write.
const DefaultMode os.FileMode = 0o644

// ErrPathIsDirectory is returned when the path points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher interface for file-based configuration.
// It reads configuration data from a file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher reads the file at fpath and returns a Fetcher caching its contents.
// Returns an error if the file cannot be read or if the path points to a directory.
func NewFetcher(fpath string) (*Fetcher, error) {
	cleanPath := filepath.Clean(fpath)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return &Fetcher{
		filepath: cleanPath,
		data:     data,
	}, nil
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the cached configuration data that was read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Write replaces the file at fpath with data. The data goes to a temporary
// file in the same directory first, which is then renamed over fpath, so
// readers never observe a partially written file. An existing file keeps
// its permissions; new files get DefaultMode.
func Write(fpath string, data []byte) error {
	cleanPath := filepath.Clean(fpath)
	mode := DefaultMode

	stat, err := os.Stat(cleanPath)

	switch {
	case err == nil && stat.IsDir():
		return fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	case err == nil:
		mode = stat.Mode().Perm()
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(cleanPath), "."+filepath.Base(cleanPath)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file for %q: %w", cleanPath, err)
	}

	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(mode)
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("writing file %q: %w", cleanPath, err)
	}

	err = os.Rename(tmpName, cleanPath)
	if err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("replacing file %q: %w", cleanPath, err)
	}

	return nil
}
