package cli

// This file contains world discovery: finding the world directory inside
// the configured input directory by the presence of its level.dat marker.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ATOMIC09/chunky-timelapse/levelmeta"
)

// locateWorld resolves the world to convert. An explicit world name is used
// verbatim; otherwise the immediate child directories of the input
// directory are scanned in lexical order for a level.dat marker and the
// first match wins. A world whose files sit directly in the input directory
// is reported as the empty name.
func (a *App) locateWorld(cfg *Config) (string, error) {
	info, err := os.Stat(cfg.InputDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("input directory not found: %s", cfg.InputDir)
	}

	if cfg.WorldName != "" {
		return cfg.WorldName, nil
	}

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return "", fmt.Errorf("failed to read input directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		marker := filepath.Join(cfg.InputDir, entry.Name(), levelmeta.MarkerFile)
		if _, err := os.Stat(marker); err == nil {
			return entry.Name(), nil
		}
	}

	// World files may sit directly in the input directory
	if _, err := os.Stat(filepath.Join(cfg.InputDir, levelmeta.MarkerFile)); err == nil {
		return "", nil
	}

	return "", fmt.Errorf("could not find any world in %s", cfg.InputDir)
}
