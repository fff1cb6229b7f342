package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FindLatestExport locates the newest portal export in dir: a .csv file
// whose name starts with prefix, picked by modification time.
func FindLatestExport(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read download dir %s: %w", dir, err)
	}

	var (
		newest     string
		newestTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = name
			newestTime = info.ModTime()
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no export matching %q found in %s", prefix+"*.csv", dir)
	}
	return filepath.Join(dir, newest), nil
}

// DefaultDownloadDir returns the OS download folder for the current user.
func DefaultDownloadDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}
