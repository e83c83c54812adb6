// Package backup manages the sidecar snapshots written beside the workbench
// file before it is patched. One snapshot exists per install session; an
// uninstall consumes it and then sweeps every snapshot in the directory.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
	"ctxmenu.dev/ctxmenu/internal/marker"
)

const (
	// Suffix marks a file as a recoverable backup artifact
	Suffix = ".bak-custom-css"
	// prefix is shared with the workbench file name
	prefix = "workbench."
)

// Info describes a backup file on disk
type Info struct {
	SessionID string
	Path      string
	Size      int64
	ModTime   time.Time
}

// Store reads and writes backups in a single directory
type Store struct {
	dir string
}

// New creates a store rooted at dir, which must be the workbench file's directory
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory holding the backups
func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the backup path for a session
func (s *Store) PathFor(sessionID string) string {
	return filepath.Join(s.dir, prefix+sessionID+Suffix)
}

// Save writes clean content as the backup for sessionID
func (s *Store) Save(sessionID, clean string) error {
	if !marker.ValidSessionID(sessionID) {
		return fmt.Errorf("%w: %q", cmerrors.ErrInvalidSessionID, sessionID)
	}
	path := s.PathFor(sessionID)
	if err := os.WriteFile(path, []byte(clean), 0644); err != nil { //nolint:gosec // mirrors the workbench file it snapshots
		return cmerrors.NewWriteError(path, err)
	}
	return nil
}

// Exists reports whether a backup for sessionID is present
func (s *Store) Exists(sessionID string) bool {
	if !marker.ValidSessionID(sessionID) {
		return false
	}
	info, err := os.Stat(s.PathFor(sessionID))
	return err == nil && info.Mode().IsRegular()
}

// Restore returns the content of the backup for sessionID. It does not touch
// the workbench file.
func (s *Store) Restore(sessionID string) (string, error) {
	if !marker.ValidSessionID(sessionID) {
		return "", fmt.Errorf("%w: %q", cmerrors.ErrInvalidSessionID, sessionID)
	}
	path := s.PathFor(sessionID)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", cmerrors.NewBackupNotFoundError(sessionID, path)
		}
		return "", cmerrors.NewReadError(path, err)
	}
	return string(data), nil
}

// List returns every backup in the directory, newest first
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, cmerrors.NewReadError(s.dir, err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		backups = append(backups, Info{
			SessionID: sessionFromName(entry.Name()),
			Path:      filepath.Join(s.dir, entry.Name()),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime.After(backups[j].ModTime)
	})
	return backups, nil
}

// PurgeAll deletes every file carrying the backup suffix, whatever session it
// belongs to, and returns how many were removed. Failures do not stop the
// sweep; they are joined into the returned error.
func (s *Store) PurgeAll() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, cmerrors.NewReadError(s.dir, err)
	}

	removed := 0
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, cmerrors.NewWriteError(path, err))
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// sessionFromName extracts the session id from workbench.<id>.bak-custom-css.
// Foreign names matching only the suffix yield an empty id.
func sessionFromName(name string) string {
	if !strings.HasPrefix(name, prefix) {
		return ""
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, prefix), Suffix)
	if !marker.ValidSessionID(id) {
		return ""
	}
	return id
}
