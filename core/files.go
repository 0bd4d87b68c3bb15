package core

import "io"

// FileStorage is any service that can persist uploaded files.
type FileStorage interface {
	// Save writes src under the given (already sanitized) name and
	// returns the path the file was stored at.
	Save(name string, src io.Reader) (string, error)
}
