// Package patch is the only code that reads or writes the workbench file. It
// applies and removes the marked script block and drives the backup store.
package patch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"ctxmenu.dev/ctxmenu/internal/backup"
	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
	"ctxmenu.dev/ctxmenu/internal/marker"
	"ctxmenu.dev/ctxmenu/internal/markup"
	"ctxmenu.dev/ctxmenu/internal/payload"
)

// Renderer produces the markup placed between the start and end sentinels
type Renderer interface {
	Render() (string, error)
}

// Logger receives debug traces from the engine
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Engine patches a single workbench file
type Engine struct {
	target   string
	store    *backup.Store
	renderer Renderer
	log      Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithRenderer sets the payload renderer used by Install
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithLogger sets the engine's debug logger
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine for the workbench file at target. Backups are kept in
// the same directory.
func New(target string, opts ...Option) *Engine {
	target = absPath(filepath.Clean(target))
	e := &Engine{
		target: target,
		store:  backup.New(filepath.Dir(target)),
		renderer: payload.Renderer{
			Options: payload.Options{ShowGoTos: true, ShowClipboardItems: true},
		},
		log: nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Target returns the workbench file path
func (e *Engine) Target() string {
	return e.target
}

// Store returns the backup store beside the workbench file
func (e *Engine) Store() *backup.Store {
	return e.store
}

// InstallResult describes a completed install
type InstallResult struct {
	SessionID string
	// PreviousSessionID is set when the file was already patched
	PreviousSessionID string
	BackupPath        string
	RemovedCSP        bool
}

// Install injects the rendered payload under sessionID. Any existing patch is
// replaced rather than stacked, and the backup written for sessionID always
// holds the content as it was before any patch was applied.
func (e *Engine) Install(ctx context.Context, sessionID string) (InstallResult, error) {
	unlock := lockPath(e.target)
	defer unlock()

	if !marker.ValidSessionID(sessionID) {
		return InstallResult{}, fmt.Errorf("%w: %q", cmerrors.ErrInvalidSessionID, sessionID)
	}

	content, err := e.read()
	if err != nil {
		return InstallResult{}, err
	}

	script, err := e.renderer.Render()
	if err != nil {
		return InstallResult{}, err
	}

	result := InstallResult{SessionID: sessionID, BackupPath: e.store.PathFor(sessionID)}
	clean := marker.StripPatch(content)
	if prev, ok := marker.ExtractSessionID(content); ok {
		result.PreviousSessionID = prev
		// The previous session's backup still has what the first install removed
		if snapshot, err := e.store.Restore(prev); err == nil {
			e.log.Debug("reusing backup of session %s as the clean snapshot", prev)
			clean = marker.StripPatch(snapshot)
		}
	}

	if _, ok := markup.ClosingRootOffset(clean); !ok {
		return InstallResult{}, fmt.Errorf("%s: %w", e.target, cmerrors.ErrNoRootTag)
	}

	if err := ctx.Err(); err != nil {
		return InstallResult{}, err
	}
	if err := e.store.Save(sessionID, clean); err != nil {
		return InstallResult{}, err
	}
	e.log.Debug("saved backup %s", result.BackupPath)

	patched, removed := markup.RemoveCSP(clean)
	result.RemovedCSP = removed
	patched, _ = markup.InsertBeforeClosingRoot(patched, marker.Block(sessionID, script))

	if err := ctx.Err(); err != nil {
		return InstallResult{}, err
	}
	if err := e.write(patched); err != nil {
		return InstallResult{}, err
	}
	e.log.Debug("patched %s with session %s", e.target, sessionID)
	return result, nil
}

// UninstallResult describes the outcome of an uninstall
type UninstallResult struct {
	// SessionID is empty when there was nothing to remove
	SessionID string
	Restored  bool
	Purged    int
}

// Uninstall restores the backup recorded for the installed session and then
// deletes every backup in the directory. A missing workbench file or one
// without a session sentinel is not an error.
func (e *Engine) Uninstall(ctx context.Context) (UninstallResult, error) {
	unlock := lockPath(e.target)
	defer unlock()

	content, err := e.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.log.Debug("%s does not exist, nothing to uninstall", e.target)
			return UninstallResult{}, nil
		}
		return UninstallResult{}, err
	}

	sessionID, ok := marker.ExtractSessionID(content)
	if !ok {
		e.log.Debug("no session sentinel in %s", e.target)
		return UninstallResult{}, nil
	}
	result := UninstallResult{SessionID: sessionID}

	restored, err := e.store.Restore(sessionID)
	if err != nil {
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := e.write(restored); err != nil {
		return result, err
	}
	result.Restored = true
	e.log.Debug("restored %s from session %s", e.target, sessionID)

	purged, err := e.store.PurgeAll()
	result.Purged = purged
	if err != nil {
		return result, fmt.Errorf("workbench restored but backup cleanup failed: %w", err)
	}
	e.log.Debug("purged %d backup(s)", purged)
	return result, nil
}

// Status is a read-only view of the workbench file and its backups
type Status struct {
	Target        string
	Patched       bool
	SessionID     string
	BackupPresent bool
	Backups       []backup.Info
}

// Orphans returns backups that do not belong to the installed session
func (s Status) Orphans() []backup.Info {
	var orphans []backup.Info
	for _, b := range s.Backups {
		if !s.Patched || b.SessionID != s.SessionID {
			orphans = append(orphans, b)
		}
	}
	return orphans
}

// Status inspects the workbench file without modifying anything
func (e *Engine) Status(_ context.Context) (Status, error) {
	status := Status{Target: e.target}

	content, err := e.read()
	if err != nil {
		return status, err
	}

	if id, ok := marker.ExtractSessionID(content); ok {
		status.Patched = true
		status.SessionID = id
		status.BackupPresent = e.store.Exists(id)
	} else if _, ok := marker.FindBlock(content); ok {
		// A block without a session sentinel is still a patch, just not a restorable one
		status.Patched = true
	}

	backups, err := e.store.List()
	if err != nil {
		return status, err
	}
	status.Backups = backups
	return status, nil
}

func (e *Engine) read() (string, error) {
	data, err := os.ReadFile(e.target)
	if err != nil {
		return "", cmerrors.NewReadError(e.target, err)
	}
	return string(data), nil
}

// write replaces the workbench file through a temporary file and rename, so
// readers see either the old or the new content in full
func (e *Engine) write(content string) error {
	if err := checkWritable(e.target); err != nil {
		return cmerrors.NewWriteError(e.target, err)
	}
	if err := atomic.WriteFile(e.target, strings.NewReader(content)); err != nil {
		return cmerrors.NewWriteError(e.target, err)
	}
	return nil
}

// checkWritable fails with the underlying *fs.PathError when the target or its
// directory cannot be written. atomic.WriteFile flattens that cause into text.
func checkWritable(path string) error {
	if f, err := os.OpenFile(path, os.O_WRONLY, 0); err == nil {
		_ = f.Close()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
