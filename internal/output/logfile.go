package output

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If CTXMENU_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.ctxmenu/logs/ctxmenu.log
func GetLogFilePath() string {
	if customPath := os.Getenv("CTXMENU_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "ctxmenu.log"
	}

	return filepath.Join(homeDir, ".ctxmenu", "logs", "ctxmenu.log")
}
