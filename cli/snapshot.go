package cli

// This file contains the snapshot pipeline driver. The pipeline is a fixed
// sequence of named steps executed strictly in order; the first failing
// step aborts the run and its name is surfaced in the error. No step is
// retried.

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ATOMIC09/chunky-timelapse/cli/chunky"
	"github.com/ATOMIC09/chunky-timelapse/cli/fetch"
	"github.com/ATOMIC09/chunky-timelapse/model"
	"github.com/urfave/cli/v2"
)

type pipelineStep struct {
	name string
	run  func() error
}

func (a *App) snapshot(ctx *cli.Context) error {
	startTime := time.Now()
	cfg := configFromContext(ctx)

	// Generate random 16-byte run ID
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return fmt.Errorf("failed to generate run ID: %w", err)
	}
	runID := hex.EncodeToString(idBytes)

	history := &model.History{
		ID:        runID,
		Type:      model.HistoryTypeSnapshot,
		Timestamp: startTime,
		Args:      os.Args,
		Conversion: &model.Conversion{
			Skipped:   !cfg.DoConversion,
			InputDir:  cfg.InputDir,
			OutputDir: cfg.OutputDir,
			Format:    cfg.Format,
		},
	}

	// Create the history directory early so artifacts can be written
	// directly to it. Recording is best effort and never fails a run.
	runDir, err := a.prepareHistoryDir(cfg, history)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Failed to prepare history directory, run will not be recorded")
		runDir = ""
	}

	// State threaded through the pipeline steps
	var (
		worldName        string
		sceneFile        string
		sppTarget        int
		metadataSummary  string
		metadataDumpPath string
		snapshotPath     string
	)
	var stdoutContent, stderrContent string

	var finalErr error
	defer func() {
		history.Duration = time.Since(startTime)
		if finalErr != nil {
			var exitErr *exec.ExitError
			if errors.As(finalErr, &exitErr) {
				history.ExitCode = exitErr.ExitCode()
			} else {
				history.ExitCode = 1
			}
		}

		if runDir != "" {
			if err := a.recordHistory(history, runDir, snapshotPath, metadataDumpPath, stdoutContent, stderrContent); err != nil {
				a.logger.Warn().Err(err).Msg("Failed to record history")
			}
		}
	}()

	steps := []pipelineStep{
		{"locate world", func() error {
			name, err := a.locateWorld(cfg)
			if err != nil {
				return err
			}
			worldName = name
			history.World = name
			if name == "" {
				a.logger.Info().Str("dir", cfg.InputDir).Msg("Using input directory as world root")
			} else {
				a.logger.Info().Str("world", name).Msg("Located world")
			}
			return nil
		}},
		{"resolve renderer", func() error {
			if !cfg.DoSnapshot {
				return nil
			}
			file, spp, err := a.resolveRenderer(cfg)
			if err != nil {
				return err
			}
			sceneFile = file
			sppTarget = spp
			history.Render = &model.Render{
				SceneName:        cfg.SceneName,
				SceneDir:         cfg.SceneDir,
				SppTarget:        spp,
				MinecraftVersion: cfg.MinecraftVersion,
			}
			return nil
		}},
		{"convert world", func() error {
			return a.convertWorld(cfg, worldName, &stdoutContent, &stderrContent)
		}},
		{"extract metadata", func() error {
			md, summary, dumpPath, err := a.extractWorldMetadata(cfg)
			if err != nil {
				return err
			}
			history.Metadata = md
			metadataSummary = summary
			metadataDumpPath = dumpPath
			if summary != "" {
				a.logger.Info().Msg("World information:\n" + summary)
			}
			return nil
		}},
		{"render scene", func() error {
			if !cfg.DoSnapshot {
				a.logger.Debug().Msg("Snapshot rendering disabled, skipping render")
				return nil
			}
			if err := a.renderScene(cfg, sceneFile, &stdoutContent, &stderrContent); err != nil {
				return err
			}
			path, ok := chunky.LatestSnapshot(filepath.Dir(sceneFile), cfg.SceneName, sppTarget)
			if !ok {
				a.logger.Warn().
					Str("scene", cfg.SceneName).
					Int("spp", sppTarget).
					Msg("No snapshot artifact found after rendering")
				return nil
			}
			snapshotPath = path
			a.logger.Info().Str("snapshot", path).Msg("Snapshot rendered")
			return nil
		}},
		{"notify webhook", func() error {
			history.Notification = a.notify(cfg, metadataSummary, snapshotPath)
			return nil
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			a.logger.Error().Err(err).Str("step", step.name).Msg("Run failed")
			finalErr = fmt.Errorf("%s: %w", step.name, err)
			return finalErr
		}
	}

	return nil
}

// resolveRenderer validates the render preconditions up front: the launcher
// jar (downloading it when absent) and the scene definition. It returns the
// scene definition path and the target sample count the snapshot filename
// is derived from.
func (a *App) resolveRenderer(cfg *Config) (string, int, error) {
	if cfg.SceneName == "" {
		return "", 0, fmt.Errorf("no scene name specified (use -n)")
	}

	if _, err := os.Stat(cfg.LauncherJar); err != nil {
		a.logger.Info().Str("jar", cfg.LauncherJar).Msg("ChunkyLauncher not found, downloading")
		if err := fetch.Download(a.logger, chunkyLauncherURL, cfg.LauncherJar); err != nil {
			return "", 0, fmt.Errorf("ChunkyLauncher missing and download failed: %w", err)
		}
	}

	if info, err := os.Stat(cfg.SceneDir); err != nil || !info.IsDir() {
		return "", 0, fmt.Errorf("scene directory not found: %s", cfg.SceneDir)
	}

	sceneFile, err := chunky.FindSceneFile(cfg.SceneDir, cfg.SceneName)
	if err != nil {
		return "", 0, err
	}

	info, err := chunky.ReadInfo(sceneFile)
	if err != nil {
		return "", 0, err
	}

	a.logger.Debug().
		Str("scene", cfg.SceneName).
		Str("file", sceneFile).
		Int("spp", info.SppTarget).
		Msg("Resolved scene definition")

	return sceneFile, info.SppTarget, nil
}

// outputWorldPath returns the absolute path of the converted world, the
// value written into the scene definition before rendering.
func outputWorldPath(cfg *Config) (string, error) {
	abs, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}
	return abs, nil
}
