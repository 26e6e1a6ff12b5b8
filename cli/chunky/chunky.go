package chunky

// chunky.go contains utilities for building ChunkyLauncher invocations and
// working with the renderer's on-disk scene layout.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/urfave/cli/v2"
)

// DefaultMinecraftVersion is the texture resource version downloaded when
// none is configured.
const DefaultMinecraftVersion = "1.21.4"

// sceneCacheSuffixes are the renderer-internal cached acceleration
// structures tied to a specific world snapshot. They must be removed
// between renders of distinct snapshots sharing a scene name, otherwise
// Chunky resumes from stale state.
var sceneCacheSuffixes = []string{".octree2", ".dump", ".emittergrid"}

// RenderOptions contains options for a scene render.
type RenderOptions struct {
	Jar       string // Path to ChunkyLauncher.jar
	SceneDir  string // Directory holding scene definitions
	SceneName string // Scene to render
}

// BuildRenderArgs builds the java argument list for a forced scene render.
func BuildRenderArgs(opts RenderOptions) []string {
	return []string{
		"-jar", opts.Jar,
		"-scene-dir", opts.SceneDir,
		"-render", opts.SceneName,
		"-f",
	}
}

// RenderCommand builds the full render command string for diagnostics.
func RenderCommand(opts RenderOptions) string {
	return joinCommand(BuildRenderArgs(opts))
}

// BuildTextureArgs builds the java argument list that makes ChunkyLauncher
// download and cache the Minecraft texture resources for a version.
func BuildTextureArgs(jar, version string) []string {
	if version == "" {
		version = DefaultMinecraftVersion
	}
	return []string{"-jar", jar, "-download-mc", version}
}

// TextureCommand builds the full texture download command string for
// diagnostics.
func TextureCommand(jar, version string) string {
	return joinCommand(BuildTextureArgs(jar, version))
}

func joinCommand(args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "java")
	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}

// TexturePath returns the texture resource file Chunky renders with.
func TexturePath(chunkyHome string) string {
	return filepath.Join(chunkyHome, "resources", "minecraft.jar")
}

// SceneFile returns the scene definition path for a scene name.
func SceneFile(sceneDir, sceneName string) string {
	return filepath.Join(sceneDir, sceneName+".json")
}

// SnapshotsDir returns the directory the renderer writes snapshots to.
func SnapshotsDir(sceneDir string) string {
	return filepath.Join(sceneDir, "snapshots")
}

// ResetSceneCache removes the cached spatial-index and dump files for a
// scene so the next render starts from the current world snapshot.
// sceneDir is the directory holding the scene definition; for a nested
// scene that is the scene's own subdirectory. Returns the files that were
// removed.
func ResetSceneCache(sceneDir, sceneName string) ([]string, error) {
	var removed []string
	for _, suffix := range sceneCacheSuffixes {
		path := filepath.Join(sceneDir, sceneName+suffix)
		err := os.Remove(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("failed to remove scene cache file %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// LatestSnapshot returns the most recently modified snapshot file matching
// the scene name and target sample count. sceneDir is the directory holding
// the scene definition. The second return value is false when no matching
// snapshot exists.
func LatestSnapshot(sceneDir, sceneName string, sppTarget int) (string, bool) {
	snapshotsDir := SnapshotsDir(sceneDir)
	wantName := fmt.Sprintf("%s-%d.png", sceneName, sppTarget)

	entries, err := os.ReadDir(snapshotsDir)
	if err != nil {
		return "", false
	}

	var latest string
	var latestMod int64
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() != wantName {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = filepath.Join(snapshotsDir, entry.Name())
			latestMod = info.ModTime().UnixNano()
		}
	}

	return latest, latest != ""
}

// LauncherFlag returns the ChunkyLauncher jar path flag.
func LauncherFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "launcher-jar",
		Aliases: []string{"c"},
		Usage:   "Path to ChunkyLauncher.jar (downloaded automatically when missing)",
		Value:   "ChunkyLauncher.jar",
	}
}

// SceneFlag returns the scene name flag.
func SceneFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "scene",
		Aliases: []string{"n"},
		Usage:   "Scene name to render (definition must exist in the scene directory)",
	}
}

// MinecraftVersionFlag returns the texture resource version flag.
func MinecraftVersionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "mc-version",
		Aliases: []string{"m"},
		Usage:   "Minecraft version used to download texture resources",
		Value:   DefaultMinecraftVersion,
	}
}
