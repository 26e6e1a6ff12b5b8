package cli

// This file contains run recording functionality for saving snapshot run
// metadata and artifacts to the history directory.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ATOMIC09/chunky-timelapse/history"
	"github.com/ATOMIC09/chunky-timelapse/model"
)

// prepareHistoryDir creates the run directory for a snapshot run:
// <chunky-home>/.timelapse/history/<timestamp>-<id>
func (a *App) prepareHistoryDir(cfg *Config, hist *model.History) (string, error) {
	shortID := hist.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	runName := fmt.Sprintf("%s-%s", hist.Timestamp.Format("20060102-150405"), shortID)
	runDir := filepath.Join(history.Root(cfg.ChunkyHome), runName)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}

	return runDir, nil
}

// recordHistory writes the run metadata and copies the run's artifacts
// (snapshot image, level.dat dump, captured tool output) into the run
// directory.
func (a *App) recordHistory(hist *model.History, runDir, snapshotPath, dumpPath, stdoutContent, stderrContent string) error {
	if stdoutContent != "" {
		if err := a.saveArtifact(hist, runDir, "stdout.txt", []byte(stdoutContent), model.ArtifactTypeStdout); err != nil {
			return err
		}
	}
	if stderrContent != "" {
		if err := a.saveArtifact(hist, runDir, "stderr.txt", []byte(stderrContent), model.ArtifactTypeStderr); err != nil {
			return err
		}
	}

	if snapshotPath != "" {
		if err := a.copyArtifact(hist, runDir, snapshotPath, model.ArtifactTypeSnapshot); err != nil {
			a.logger.Warn().Err(err).Str("file", snapshotPath).Msg("Failed to save snapshot artifact")
		}
	}
	if dumpPath != "" {
		if err := a.copyArtifact(hist, runDir, dumpPath, model.ArtifactTypeMetadataDump); err != nil {
			a.logger.Warn().Err(err).Str("file", dumpPath).Msg("Failed to save metadata dump artifact")
		}
	}

	metadataPath := filepath.Join(runDir, "run.json")
	metadataJSON, err := json.MarshalIndent(hist, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run metadata: %w", err)
	}
	if err := os.WriteFile(metadataPath, metadataJSON, 0644); err != nil {
		return fmt.Errorf("failed to write run metadata: %w", err)
	}

	a.logger.Debug().Str("dir", runDir).Str("id", hist.ID).Msg("Recorded run")
	return nil
}

func (a *App) saveArtifact(hist *model.History, runDir, name string, data []byte, artifactType model.ArtifactType) error {
	if err := os.WriteFile(filepath.Join(runDir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	hist.Artifacts = append(hist.Artifacts, model.Artifact{
		Type: artifactType,
		Size: uint64(len(data)),
		File: name,
	})
	return nil
}

func (a *App) copyArtifact(hist *model.History, runDir, src string, artifactType model.ArtifactType) error {
	name := filepath.Base(src)
	dest := filepath.Join(runDir, name)
	if err := copyFile(src, dest); err != nil {
		return err
	}

	info, err := os.Stat(dest)
	if err != nil {
		return err
	}
	hist.Artifacts = append(hist.Artifacts, model.Artifact{
		Type: artifactType,
		Size: uint64(info.Size()),
		File: name,
	})
	return nil
}
