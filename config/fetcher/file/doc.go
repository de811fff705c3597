// Package file reads and writes configuration files on the filesystem.
//
// Fetcher implements the config.DataFetcher interface. The file is read at
// construction time and cached, so subsequent calls to Fetch() return the
// same data without touching the filesystem again.
//
// Write stores encoded configuration through a temporary file and a rename.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/config.ini")
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
//	err = file.Write("/path/to/config.yaml", encoded)
//
// Error Handling:
//   - Construction returns error if file cannot be read or path is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
