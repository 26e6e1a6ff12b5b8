package chunky

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRenderArgs(t *testing.T) {
	args := BuildRenderArgs(RenderOptions{
		Jar:       "ChunkyLauncher.jar",
		SceneDir:  "/home/render/.chunky/scenes",
		SceneName: "timelapse",
	})

	require.Equal(t, []string{
		"-jar", "ChunkyLauncher.jar",
		"-scene-dir", "/home/render/.chunky/scenes",
		"-render", "timelapse",
		"-f",
	}, args)
}

func TestBuildTextureArgs(t *testing.T) {
	require.Equal(t,
		[]string{"-jar", "ChunkyLauncher.jar", "-download-mc", "1.20.1"},
		BuildTextureArgs("ChunkyLauncher.jar", "1.20.1"))

	// Empty version falls back to the default
	require.Contains(t, BuildTextureArgs("ChunkyLauncher.jar", ""), DefaultMinecraftVersion)
}

func TestRenderCommand_Escaping(t *testing.T) {
	cmd := RenderCommand(RenderOptions{
		Jar:       "ChunkyLauncher.jar",
		SceneDir:  "/home/render/my scenes",
		SceneName: "timelapse",
	})

	require.Contains(t, cmd, "java -jar ChunkyLauncher.jar")
	require.Contains(t, cmd, "'/home/render/my scenes'")
}

func TestResetSceneCache(t *testing.T) {
	sceneDir := t.TempDir()

	for _, name := range []string{"timelapse.octree2", "timelapse.dump", "timelapse.emittergrid", "timelapse.json", "other.dump"} {
		require.NoError(t, os.WriteFile(filepath.Join(sceneDir, name), []byte("x"), 0644))
	}

	removed, err := ResetSceneCache(sceneDir, "timelapse")
	require.NoError(t, err)
	require.Len(t, removed, 3)

	// The definition and unrelated scenes are untouched
	require.FileExists(t, filepath.Join(sceneDir, "timelapse.json"))
	require.FileExists(t, filepath.Join(sceneDir, "other.dump"))
	require.NoFileExists(t, filepath.Join(sceneDir, "timelapse.dump"))
}

func TestResetSceneCache_NothingCached(t *testing.T) {
	removed, err := ResetSceneCache(t.TempDir(), "timelapse")
	require.NoError(t, err)
	require.Empty(t, removed)
}

func TestLatestSnapshot(t *testing.T) {
	sceneDir := t.TempDir()
	snapshots := SnapshotsDir(sceneDir)
	require.NoError(t, os.MkdirAll(snapshots, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(snapshots, "timelapse-100.png"), []byte("png"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(snapshots, "timelapse-200.png"), []byte("png"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(snapshots, "other-100.png"), []byte("png"), 0644))

	path, ok := LatestSnapshot(sceneDir, "timelapse", 100)
	require.True(t, ok)
	require.Equal(t, filepath.Join(snapshots, "timelapse-100.png"), path)

	_, ok = LatestSnapshot(sceneDir, "timelapse", 500)
	require.False(t, ok)
}

func TestLatestSnapshot_NoSnapshotsDir(t *testing.T) {
	_, ok := LatestSnapshot(t.TempDir(), "timelapse", 100)
	require.False(t, ok)
}

func TestReadInfo(t *testing.T) {
	sceneDir := t.TempDir()
	sceneFile := filepath.Join(sceneDir, "timelapse.json")
	scene := `{
		"name": "timelapse",
		"width": 1920,
		"height": 1080,
		"sppTarget": 256,
		"world": {"path": "/worlds/old", "dimension": 0},
		"camera": {"position": {"x": 12.5, "y": 80.0, "z": -3.25}},
		"sky": {"mode": "simulated"}
	}`
	require.NoError(t, os.WriteFile(sceneFile, []byte(scene), 0644))

	info, err := ReadInfo(sceneFile)
	require.NoError(t, err)
	require.Equal(t, "timelapse", info.Name)
	require.Equal(t, 1920, info.Width)
	require.Equal(t, 1080, info.Height)
	require.Equal(t, 256, info.SppTarget)
	require.Equal(t, "/worlds/old", info.World.Path)
	require.NotNil(t, info.Camera)
	require.Equal(t, 12.5, info.Camera.Position.X)
}

func TestSetWorldPath_PreservesUnknownFields(t *testing.T) {
	sceneDir := t.TempDir()
	sceneFile := filepath.Join(sceneDir, "timelapse.json")
	scene := `{
		"name": "timelapse",
		"sppTarget": 256,
		"world": {"path": "/worlds/old", "dimension": 0},
		"sky": {"mode": "simulated"}
	}`
	require.NoError(t, os.WriteFile(sceneFile, []byte(scene), 0644))

	require.NoError(t, SetWorldPath(sceneFile, "/worlds/converted"))

	info, err := ReadInfo(sceneFile)
	require.NoError(t, err)
	require.Equal(t, "/worlds/converted", info.World.Path)
	require.Equal(t, 0, info.World.Dimension)

	data, err := os.ReadFile(sceneFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "simulated")
}

func TestListScenes(t *testing.T) {
	sceneDir := t.TempDir()

	// Flat definition
	require.NoError(t, os.WriteFile(filepath.Join(sceneDir, "flat.json"), []byte("{}"), 0644))
	// Nested definition
	require.NoError(t, os.MkdirAll(filepath.Join(sceneDir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sceneDir, "nested", "nested.json"), []byte("{}"), 0644))
	// Directory without a matching definition
	require.NoError(t, os.MkdirAll(filepath.Join(sceneDir, "snapshots"), 0755))

	scenes, err := ListScenes(sceneDir)
	require.NoError(t, err)
	require.Equal(t, []string{"flat", "nested"}, scenes)
}

func TestNestedSceneCacheAndSnapshot(t *testing.T) {
	sceneDir := t.TempDir()
	nested := filepath.Join(sceneDir, "timelapse")
	require.NoError(t, os.MkdirAll(filepath.Join(nested, "snapshots"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "timelapse.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "timelapse.octree2"), []byte("stale"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "snapshots", "timelapse-256.png"), []byte("png"), 0644))

	sceneFile, err := FindSceneFile(sceneDir, "timelapse")
	require.NoError(t, err)

	// Cache reset and snapshot lookup operate on the resolved definition's
	// directory, so the nested layout behaves like the flat one
	base := filepath.Dir(sceneFile)
	removed, err := ResetSceneCache(base, "timelapse")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	require.NoFileExists(t, filepath.Join(nested, "timelapse.octree2"))

	path, ok := LatestSnapshot(base, "timelapse", 256)
	require.True(t, ok)
	require.Equal(t, filepath.Join(nested, "snapshots", "timelapse-256.png"), path)
}

func TestFindSceneFile(t *testing.T) {
	sceneDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sceneDir, "flat.json"), []byte("{}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(sceneDir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sceneDir, "nested", "nested.json"), []byte("{}"), 0644))

	flat, err := FindSceneFile(sceneDir, "flat")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(sceneDir, "flat.json"), flat)

	nested, err := FindSceneFile(sceneDir, "nested")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(sceneDir, "nested", "nested.json"), nested)

	_, err = FindSceneFile(sceneDir, "missing")
	require.Error(t, err)
}
