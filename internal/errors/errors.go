// Package errors provides sentinel errors and custom error types for the ctxmenu application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrPathNotFound indicates that no candidate root contains a workbench markup file
	ErrPathNotFound = errors.New("workbench file not found")

	// ErrRead indicates that the workbench file or the script template could not be read
	ErrRead = errors.New("read failed")

	// ErrWrite indicates that the workbench file or a backup could not be written
	ErrWrite = errors.New("write failed")

	// ErrBackupNotFound indicates that no backup exists for the installed session
	ErrBackupNotFound = errors.New("backup not found")

	// ErrNoRootTag indicates that the workbench file has no closing </html> tag to anchor the patch
	ErrNoRootTag = errors.New("closing </html> tag not found")

	// ErrInvalidSessionID indicates a session identifier outside the [0-9a-fA-F-] token syntax
	ErrInvalidSessionID = errors.New("invalid session id")
)

// PathNotFoundError represents an error when none of the candidate roots resolve to a workbench file
type PathNotFoundError struct {
	Roots []string
}

func (e *PathNotFoundError) Error() string {
	if len(e.Roots) == 0 {
		return "unable to locate the VS Code installation path: no candidate directories"
	}
	return fmt.Sprintf("unable to locate the VS Code installation path (searched %s)", strings.Join(e.Roots, ", "))
}

// Is returns true if the target error is ErrPathNotFound
func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}

// NewPathNotFoundError creates a new PathNotFoundError
func NewPathNotFoundError(roots []string) *PathNotFoundError {
	return &PathNotFoundError{Roots: roots}
}

// ReadError represents a failure to read the workbench file or the script template
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

// Is returns true if the target error is ErrRead
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a new ReadError
func NewReadError(path string, err error) *ReadError {
	return &ReadError{Path: path, Err: err}
}

// WriteError represents a failure to write the workbench file or a backup
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Privileged() {
		return fmt.Sprintf("permission denied writing %s: run with elevated privileges or make the VS Code installation writable", e.Path)
	}
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

// Is returns true if the target error is ErrWrite
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Privileged reports whether the write failed because the location requires elevated privileges
func (e *WriteError) Privileged() bool {
	return errors.Is(e.Err, fs.ErrPermission)
}

// NewWriteError creates a new WriteError
func NewWriteError(path string, err error) *WriteError {
	return &WriteError{Path: path, Err: err}
}

// BackupNotFoundError represents an uninstall attempt without a backup for the installed session
type BackupNotFoundError struct {
	SessionID string
	Path      string
}

func (e *BackupNotFoundError) Error() string {
	return fmt.Sprintf("no backup for session %s (expected %s)", e.SessionID, e.Path)
}

// Is returns true if the target error is ErrBackupNotFound
func (e *BackupNotFoundError) Is(target error) bool {
	return target == ErrBackupNotFound
}

// NewBackupNotFoundError creates a new BackupNotFoundError
func NewBackupNotFoundError(sessionID, path string) *BackupNotFoundError {
	return &BackupNotFoundError{SessionID: sessionID, Path: path}
}
