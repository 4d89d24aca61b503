package persist

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

type SaveRequest struct {
	Path string `json:"path"`
	Data []byte `json:"data"`
}

// SaveResult only ever crosses the boundary on success; Success is
// always true and failures travel as typed errors instead.
type SaveResult struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}

// Save writes the payload to the request path in a single synchronous
// step, truncating any existing file. Parent directories are never
// created. Each call owns its file handle; concurrent saves to the
// same path race at the filesystem level, last writer wins.
func Save(ctx context.Context, req SaveRequest) (SaveResult, error) {
	path, err := normalizePath(req.Path)
	if err != nil {
		return SaveResult{}, err
	}
	if err := writeFile(path, req.Data); err != nil {
		return SaveResult{}, classify(err)
	}
	slog.Debug("file written", "path", path, "bytes", len(req.Data))
	return SaveResult{Success: true, Path: path}, nil
}

func normalizePath(p string) (string, error) {
	if p == "" {
		return "", invalidPath(errors.New("path is empty"))
	}
	if strings.ContainsRune(p, 0) {
		return "", invalidPath(errors.New("path contains NUL byte"))
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", invalidPath(err)
	}
	return abs, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, werr := f.Write(data)
	return multierr.Append(werr, f.Close())
}
