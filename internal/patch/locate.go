package patch

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
)

// WorkbenchPaths lists the workbench locations probed under each root, most
// specific layout first. Newer VS Code builds use the electron-sandbox
// layouts; the plain vs/workbench variants cover older releases.
var WorkbenchPaths = []string{
	filepath.Join("vs", "code", "electron-sandbox", "workbench", "workbench.html"),
	filepath.Join("vs", "code", "electron-sandbox", "workbench", "workbench.esm.html"),
	filepath.Join("vs", "workbench", "electron-sandbox", "workbench.html"),
	filepath.Join("vs", "workbench", "electron-sandbox", "workbench.esm.html"),
	filepath.Join("vs", "workbench", "workbench.html"),
	filepath.Join("vs", "workbench", "workbench.esm.html"),
}

// Locate returns the first workbench file found, probing roots in order and
// WorkbenchPaths in order within each root. Callers put an explicit override
// ahead of auto-detected roots.
func Locate(roots []string) (string, error) {
	searched := make([]string, 0, len(roots))
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		searched = append(searched, root)
		for _, rel := range WorkbenchPaths {
			candidate := filepath.Join(root, rel)
			if isFile(candidate) {
				return absPath(candidate), nil
			}
		}
	}
	return "", cmerrors.NewPathNotFoundError(searched)
}

// LocateAll returns every workbench file found under roots, in probe order,
// without duplicates
func LocateAll(roots []string) []string {
	seen := make(map[string]bool)
	var found []string
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		for _, rel := range WorkbenchPaths {
			candidate := filepath.Join(root, rel)
			if !isFile(candidate) {
				continue
			}
			candidate = absPath(candidate)
			if !seen[candidate] {
				seen[candidate] = true
				found = append(found, candidate)
			}
		}
	}
	return found
}

// RootOf returns the application root a workbench path was found under
func RootOf(workbench string) (string, bool) {
	for _, rel := range WorkbenchPaths {
		if strings.HasSuffix(workbench, string(filepath.Separator)+rel) {
			return strings.TrimSuffix(workbench, string(filepath.Separator)+rel), true
		}
	}
	return "", false
}

// DefaultRoots returns the application directories of common VS Code
// installations for the current platform
func DefaultRoots() []string {
	return defaultRoots(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func defaultRoots(goos string, getenv func(string) string, home func() (string, error)) []string {
	var roots []string
	switch goos {
	case "windows":
		// User installs live under LOCALAPPDATA\Programs, system installs under ProgramFiles
		if local := getenv("LOCALAPPDATA"); local != "" {
			roots = append(roots, filepath.Join(local, "Programs", "Microsoft VS Code", "resources", "app", "out"))
		}
		if programFiles := getenv("ProgramFiles"); programFiles != "" {
			roots = append(roots, filepath.Join(programFiles, "Microsoft VS Code", "resources", "app", "out"))
		}
	case "darwin":
		roots = append(roots, "/Applications/Visual Studio Code.app/Contents/Resources/app/out")
		if h, err := home(); err == nil {
			roots = append(roots, filepath.Join(h, "Applications", "Visual Studio Code.app", "Contents", "Resources", "app", "out"))
		}
	default:
		roots = append(roots,
			"/usr/share/code/resources/app/out",
			"/opt/visual-studio-code/resources/app/out",
			"/snap/code/current/usr/share/code/resources/app/out",
			"/usr/lib/code/out",
		)
	}
	return roots
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
