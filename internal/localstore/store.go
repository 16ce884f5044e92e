// Package localstore persists tote's client-side snapshots.
// Snapshots are JSON files under ~/.local/share/tote.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultDataDir = "~/.local/share/tote"

// DefaultDataDir returns the default snapshot directory.
func DefaultDataDir() string {
	return defaultDataDir
}

// Dir is a snapshot directory. The zero value is not usable; construct one
// with NewDir.
type Dir struct {
	path string
}

// NewDir resolves dir (expanding a leading ~) and returns a Dir rooted there.
// An empty dir selects the default data directory.
func NewDir(dir string) (Dir, error) {
	resolved, err := resolvePath(dir)
	if err != nil {
		return Dir{}, err
	}
	return Dir{path: resolved}, nil
}

// Path returns the absolute path for the named snapshot file.
func (d Dir) Path(name string) string {
	return filepath.Join(d.path, name)
}

// Read loads the named snapshot into dest. A missing or unreadable file and a
// parse failure are all equivalent to "no data": dest is left untouched and
// Read reports false. It never returns an error.
func (d Dir) Read(name string, dest any) bool {
	bytes, err := os.ReadFile(d.Path(name))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(bytes, dest); err != nil {
		return false
	}
	return true
}

// Write persists v as the named snapshot, overwriting any prior value.
// Persistence is best effort: the returned error is for logging only and the
// caller's in-memory state must not depend on it.
func (d Dir) Write(name string, v any) error {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	bytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(d.Path(name), bytes, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Remove deletes the named snapshot. Missing files are not an error.
func (d Dir) Remove(name string) error {
	err := os.Remove(d.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultDataDir)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
