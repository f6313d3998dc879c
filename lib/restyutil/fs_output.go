package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput drops one file per request/response exchange into
// a directory that is wiped clean on construction.
type FilesystemOutput struct {
	dir string
}

func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	if err := os.RemoveAll(dir); err != nil {
		return FilesystemOutput{}, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{dir: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	path := filepath.Join(o.dir, id+".txt")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		slog.Warn("failed to write request dump", "path", path, "err", err)
	}
}
