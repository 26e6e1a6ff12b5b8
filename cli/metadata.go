package cli

// This file contains the world metadata extraction step: dumping the
// converted world's level.dat to JSON via an external helper and decoding
// the fields shown in the notification summary.

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ATOMIC09/chunky-timelapse/cli/fetch"
	"github.com/ATOMIC09/chunky-timelapse/levelmeta"
	"github.com/ATOMIC09/chunky-timelapse/model"
)

// extractWorldMetadata produces the world summary for the notification.
// The whole step is best effort: a missing marker file or a failing dump
// degrades to a placeholder or empty summary. Only a missing dump helper
// that also fails to download aborts the run.
func (a *App) extractWorldMetadata(cfg *Config) (*model.WorldMetadata, string, string, error) {
	markerPath := filepath.Join(cfg.OutputDir, levelmeta.MarkerFile)
	if _, err := os.Stat(markerPath); err != nil {
		a.logger.Warn().Str("marker", markerPath).Msg("World marker file not found, skipping metadata extraction")
		return nil, levelmeta.PlaceholderSummary, "", nil
	}

	helperJar := filepath.Join(cfg.ChunkyHome, "nbt-dump.jar")
	if _, err := os.Stat(helperJar); err != nil {
		a.logger.Info().Str("jar", helperJar).Msg("NBT dump helper not found, downloading")
		if err := fetch.Download(a.logger, nbtDumpHelperURL, helperJar); err != nil {
			return nil, "", "", fmt.Errorf("NBT dump helper missing and download failed: %w", err)
		}
	}

	dumpPath := markerPath + ".json"
	if err := a.dumpLevelDat(helperJar, markerPath, dumpPath); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to dump level.dat, world information will be unavailable")
		return nil, levelmeta.PlaceholderSummary, "", nil
	}

	dumpFile, err := os.Open(dumpPath)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Failed to open level.dat dump")
		return nil, levelmeta.PlaceholderSummary, "", nil
	}
	defer dumpFile.Close()

	md, err := levelmeta.New().Extract(dumpFile)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Failed to parse level.dat dump")
		return nil, levelmeta.PlaceholderSummary, dumpPath, nil
	}

	return md, levelmeta.Summary(md), dumpPath, nil
}

// dumpLevelDat runs the NBT dump helper against the marker file, writing
// its JSON output to dumpPath.
func (a *App) dumpLevelDat(helperJar, markerPath, dumpPath string) error {
	dumpFile, err := os.Create(dumpPath)
	if err != nil {
		return fmt.Errorf("failed to create dump file: %w", err)
	}
	defer dumpFile.Close()

	cmd := exec.Command("java", "-jar", helperJar, markerPath)
	cmd.Stdout = dumpFile
	cmd.Stderr = os.Stderr

	a.logger.Debug().
		Str("command", cmd.String()).
		Str("dump", dumpPath).
		Msg("Dumping level.dat to JSON")

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("NBT dump helper failed: %w", err)
	}

	return nil
}
