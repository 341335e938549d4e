package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "oce-gallery"

// AppDir holds the application's managed directories: the download cache,
// chart exports, and the config file location.
type AppDir struct {
	RootPath    string
	CachePath   string
	ExportsPath string
	ConfigPath  string
}

// New resolves the application directories following the XDG Base Directory
// specification on Unix, with an AppData fallback on Windows
func New() (*AppDir, error) {
	root, err := dataRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to determine data directory: %w", err)
	}

	config, err := configFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	return &AppDir{
		RootPath:    root,
		CachePath:   filepath.Join(root, "cache"),
		ExportsPath: filepath.Join(root, "exports"),
		ConfigPath:  config,
	}, nil
}

// NewAt builds an AppDir rooted at an explicit directory, for tests and for
// the --data-dir override
func NewAt(root string) *AppDir {
	return &AppDir{
		RootPath:    root,
		CachePath:   filepath.Join(root, "cache"),
		ExportsPath: filepath.Join(root, "exports"),
		ConfigPath:  filepath.Join(root, "config.yaml"),
	}
}

// Initialize creates the directory tree if it doesn't exist
func (d *AppDir) Initialize() error {
	for _, dir := range []string{d.RootPath, d.CachePath, d.ExportsPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists checks whether the root directory has been created
func (d *AppDir) Exists() bool {
	info, err := os.Stat(d.RootPath)
	return err == nil && info.IsDir()
}

func dataRoot() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	return filepath.Join(home, ".local", "share", appName), nil
}

func configFile() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.yaml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName, "config.yaml"), nil
	}

	return filepath.Join(home, ".config", appName, "config.yaml"), nil
}
