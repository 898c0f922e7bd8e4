// Package appdata resolves the per-user local data directory of the application.
package appdata

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// LocalDataDir returns <local data root>/<appID>:
//
//	windows: %LOCALAPPDATA%
//	darwin:  ~/Library/Application Support
//	other:   $XDG_DATA_HOME, else ~/.local/share
func LocalDataDir(appID string) (string, error) {
	return localDataDir(runtime.GOOS, os.Getenv, os.UserHomeDir, appID)
}

func localDataDir(goos string, getenv func(string) string, home func() (string, error), appID string) (string, error) {
	if appID == "" {
		return "", errors.New("appdata: empty application id")
	}

	var root string
	switch goos {
	case "windows":
		root = getenv("LOCALAPPDATA")
		if root == "" {
			return "", errors.New("appdata: %LOCALAPPDATA% is not defined")
		}
	case "darwin", "ios":
		h, err := home()
		if err != nil {
			return "", err
		}
		root = filepath.Join(h, "Library", "Application Support")
	default:
		root = getenv("XDG_DATA_HOME")
		if root == "" || !filepath.IsAbs(root) {
			h, err := home()
			if err != nil {
				return "", err
			}
			root = filepath.Join(h, ".local", "share")
		}
	}
	return filepath.Join(root, appID), nil
}

// EnsureDir creates dir and its parents; an existing directory is not an error.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
