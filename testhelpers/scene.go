// Package testhelpers provides testing utilities for the ctxmenu CLI,
// including a scene system that lays out a fake VS Code installation and
// custom assertions over its workbench file and backups.
package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// DefaultWorkbenchPath is where current VS Code builds keep the workbench file, relative to the app root
var DefaultWorkbenchPath = filepath.Join("vs", "code", "electron-sandbox", "workbench", "workbench.html")

// Workbench is a trimmed copy of a real workbench.html, including the
// Content-Security-Policy tag that install removes
const Workbench = `<!-- Copyright (C) Microsoft Corporation. All rights reserved. -->
<!DOCTYPE html>
<html>
	<head>
		<meta charset="utf-8" />
		<meta
			http-equiv="Content-Security-Policy"
			content="
				default-src
					'none'
				;
				script-src
					'self'
				;
			"
		/>
		<link rel="stylesheet" href="../../../workbench/workbench.desktop.main.css">
	</head>

	<body aria-label="">
	</body>

	<!-- Startup (do not modify order of script tags!) -->
	<script src="./workbench.js" type="module"></script>
</html>
`

// Scene represents a test scene with a temporary VS Code application root.
type Scene struct {
	// Root is the application root handed to the locator (the "out" directory)
	Root string
	// Workbench is the absolute path of the workbench file
	Workbench string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a scene whose workbench file sits at DefaultWorkbenchPath
// and holds Workbench. Cleanup is handled by t.TempDir.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()
	return NewSceneAt(t, DefaultWorkbenchPath, Workbench, setup)
}

// NewSceneAt creates a scene with the workbench file at rel holding content
func NewSceneAt(t *testing.T, rel, content string, setup SceneSetup) *Scene {
	t.Helper()

	root := t.TempDir()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	scene := &Scene{Root: root, Workbench: abs}
	if setup != nil {
		require.NoError(t, setup(scene), "setup failed")
	}
	return scene
}

// Dir returns the directory holding the workbench file and its backups
func (s *Scene) Dir() string {
	return filepath.Dir(s.Workbench)
}

// Read returns the current workbench content
func (s *Scene) Read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(s.Workbench)
	require.NoError(t, err)
	return string(data)
}

// Write replaces the workbench content
func (s *Scene) Write(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(s.Workbench, []byte(content), 0600))
}

// WriteBackup places a backup file for sessionID next to the workbench
func (s *Scene) WriteBackup(t *testing.T, sessionID, content string) string {
	t.Helper()
	path := filepath.Join(s.Dir(), "workbench."+sessionID+".bak-custom-css")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// Backups returns the names of backup files beside the workbench
func (s *Scene) Backups(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".bak-custom-css") {
			names = append(names, entry.Name())
		}
	}
	return names
}

// MakeReadOnly removes write permission from the workbench directory for the
// duration of the test. It skips the test when running as root, where
// permissions are not enforced.
func (s *Scene) MakeReadOnly(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	require.NoError(t, os.Chmod(s.Dir(), 0500))
	t.Cleanup(func() {
		_ = os.Chmod(s.Dir(), 0750)
	})
}
