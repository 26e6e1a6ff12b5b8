package cli

// This file contains the scene render step: pointing the scene definition
// at the converted world, invalidating stale scene caches and invoking
// ChunkyLauncher. Renderer failure always fails the run.

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ATOMIC09/chunky-timelapse/cli/chunky"
)

func (a *App) renderScene(cfg *Config, sceneFile string, stdout, stderr *string) error {
	worldPath, err := outputWorldPath(cfg)
	if err != nil {
		return err
	}
	if err := chunky.SetWorldPath(sceneFile, worldPath); err != nil {
		return err
	}
	a.logger.Debug().Str("scene", sceneFile).Str("world", worldPath).Msg("Scene world path updated")

	// Texture resources are best effort: Chunky falls back to its bundled
	// defaults when the download fails.
	texturePath := chunky.TexturePath(cfg.ChunkyHome)
	if _, err := os.Stat(texturePath); err != nil {
		a.logger.Info().
			Str("version", cfg.MinecraftVersion).
			Str("texture", texturePath).
			Msg("Minecraft textures not found, downloading")
		textureArgs := chunky.BuildTextureArgs(cfg.LauncherJar, cfg.MinecraftVersion)
		if err := a.runExternal("java", textureArgs, stdout, stderr); err != nil {
			a.logger.Warn().Err(err).Msg("Texture download failed, rendering may use degraded textures")
		}
	}

	// Cache and snapshot files live next to the scene definition, which for
	// a nested scene is <sceneDir>/<name>/, not the scene directory itself.
	sceneBase := filepath.Dir(sceneFile)

	// Stale caches would resume the render from a previous world snapshot
	removed, err := chunky.ResetSceneCache(sceneBase, cfg.SceneName)
	if err != nil {
		return err
	}
	if len(removed) > 0 {
		a.logger.Debug().Strs("files", removed).Msg("Removed stale scene cache files")
	}

	if err := os.MkdirAll(chunky.SnapshotsDir(sceneBase), 0755); err != nil {
		return fmt.Errorf("failed to create snapshots directory: %w", err)
	}

	opts := chunky.RenderOptions{
		Jar:       cfg.LauncherJar,
		SceneDir:  cfg.SceneDir,
		SceneName: cfg.SceneName,
	}

	a.logger.Info().
		Str("scene", cfg.SceneName).
		Str("command", chunky.RenderCommand(opts)).
		Msg("Rendering scene")

	if err := a.runExternal("java", chunky.BuildRenderArgs(opts), stdout, stderr); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("renderer failed with exit code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to execute renderer: %w", err)
	}

	return nil
}
