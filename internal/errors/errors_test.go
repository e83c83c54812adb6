package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err      error
		sentinel error
	}{
		{NewPathNotFoundError([]string{"/a"}), ErrPathNotFound},
		{NewReadError("/a", fs.ErrNotExist), ErrRead},
		{NewWriteError("/a", fs.ErrPermission), ErrWrite},
		{NewBackupNotFoundError("abc", "/a"), ErrBackupNotFound},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("install: %w", tc.err)
		require.True(t, errors.Is(wrapped, tc.sentinel), "%v", tc.err)
	}

	require.False(t, errors.Is(NewReadError("/a", nil), ErrWrite))
}

func TestUnwrapKeepsCause(t *testing.T) {
	t.Parallel()

	require.True(t, errors.Is(NewReadError("/a", fs.ErrNotExist), fs.ErrNotExist))
	require.True(t, errors.Is(NewWriteError("/a", fs.ErrPermission), fs.ErrPermission))
}

func TestWriteErrorPrivileged(t *testing.T) {
	t.Parallel()

	require.True(t, NewWriteError("/a", fs.ErrPermission).Privileged())
	require.True(t, NewWriteError("/a", &fs.PathError{Op: "open", Path: "/a", Err: fs.ErrPermission}).Privileged())
	require.False(t, NewWriteError("/a", errors.New("open /a: permission denied")).Privileged())
	require.False(t, NewWriteError("/a", errors.New("disk full")).Privileged())
	require.False(t, NewWriteError("/a", nil).Privileged())

	require.Contains(t, NewWriteError("/a", fs.ErrPermission).Error(), "permission denied writing /a")
	require.Contains(t, NewWriteError("/a", errors.New("disk full")).Error(), "disk full")
}

func TestPathNotFoundMessage(t *testing.T) {
	t.Parallel()

	require.Contains(t, NewPathNotFoundError(nil).Error(), "no candidate directories")
	require.Contains(t, NewPathNotFoundError([]string{"/a", "/b"}).Error(), "/a, /b")
}
