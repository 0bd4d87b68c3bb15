package filestore

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	unsafeRegex     = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
)

// SanitizeFilename flattens a client-provided filename into something safe to
// join to the upload directory: path separators and drive prefixes are dropped,
// whitespace becomes underscores and anything outside [A-Za-z0-9_.-] is removed.
// The result may be empty; callers must reject that.
func SanitizeFilename(name string) string {
	// normalize windows-style separators before taking the base
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.FromSlash(name))
	name = whitespaceRegex.ReplaceAllString(name, "_")
	name = unsafeRegex.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "." || name == ".." {
		return ""
	}
	return name
}

type localStorage struct {
	dir string
}

var _ core.FileStorage = (*localStorage)(nil)

// NewLocalStorage returns a FileStorage writing into dir, creating it if needed.
// All files share the one directory; saving an existing name overwrites it.
func NewLocalStorage(dir string) (core.FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload dir")
	}
	return &localStorage{dir: dir}, nil
}

func (s *localStorage) Save(name string, src io.Reader) (string, error) {
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "creating file")
	}
	defer func() { _ = dst.Close() }()

	if _, err = io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "writing file")
	}
	return path, nil
}
