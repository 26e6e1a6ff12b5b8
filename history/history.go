package history

// This file contains shared history utilities for loading and parsing
// snapshot run history.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ATOMIC09/chunky-timelapse/model"
	"github.com/rs/zerolog"
)

type Entry struct {
	History  model.History
	FullPath string
}

// Root returns the history directory under the Chunky home directory.
func Root(chunkyHome string) string {
	return filepath.Join(chunkyHome, ".timelapse", "history")
}

// LoadEntries loads all history entries from the history root.
func LoadEntries(logger zerolog.Logger, root string) ([]Entry, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, fmt.Errorf("no runs recorded in %s", root)
	}

	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			runPath := filepath.Join(path, "run.json")
			if _, err := os.Stat(runPath); err == nil {
				history, err := parseRunJSON(runPath)
				if err != nil {
					logger.Warn().Err(err).Str("path", runPath).Msg("Failed to parse run.json")
					return nil
				}

				entries = append(entries, Entry{
					History:  history,
					FullPath: path,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk history directory: %w", err)
	}

	return entries, nil
}

// parseRunJSON parses a run.json file.
func parseRunJSON(runPath string) (model.History, error) {
	data, err := os.ReadFile(runPath)
	if err != nil {
		return model.History{}, err
	}

	var history model.History
	if err := json.Unmarshal(data, &history); err != nil {
		return model.History{}, err
	}

	return history, nil
}
