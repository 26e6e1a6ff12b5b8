package chunky

// scene.go contains helpers for reading and updating Chunky scene
// definitions. Scene definitions are JSON documents the renderer owns;
// only the handful of fields shown to the user and the world path are
// touched here, everything else is preserved as-is.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo holds the scene definition fields surfaced to the user.
type SceneInfo struct {
	Name      string  `json:"name"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	SppTarget int     `json:"sppTarget"`
	World     World   `json:"world"`
	Camera    *Camera `json:"camera,omitempty"`
}

// World describes the world a scene renders.
type World struct {
	Path      string `json:"path"`
	Dimension int    `json:"dimension"`
}

// Camera describes the scene camera.
type Camera struct {
	Position Position `json:"position"`
}

// Position is a point in world coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ReadInfo loads the user-facing fields of a scene definition.
func ReadInfo(sceneFile string) (*SceneInfo, error) {
	data, err := os.ReadFile(sceneFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene definition: %w", err)
	}

	var info SceneInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse scene definition %s: %w", sceneFile, err)
	}

	return &info, nil
}

// SetWorldPath rewrites the world.path of a scene definition so the next
// render picks up the freshly converted world. Unknown fields in the
// definition are preserved.
func SetWorldPath(sceneFile, worldPath string) error {
	data, err := os.ReadFile(sceneFile)
	if err != nil {
		return fmt.Errorf("failed to read scene definition: %w", err)
	}

	var scene map[string]any
	if err := json.Unmarshal(data, &scene); err != nil {
		return fmt.Errorf("failed to parse scene definition %s: %w", sceneFile, err)
	}

	world, ok := scene["world"].(map[string]any)
	if !ok {
		world = make(map[string]any)
		scene["world"] = world
	}
	world["path"] = worldPath

	updated, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scene definition: %w", err)
	}

	if err := os.WriteFile(sceneFile, updated, 0644); err != nil {
		return fmt.Errorf("failed to write scene definition: %w", err)
	}

	return nil
}

// ListScenes returns the scene names found in a scene directory, sorted.
// A scene is a <name>.json definition, either directly in the directory or
// nested as <name>/<name>.json the way the Chunky UI stores them.
func ListScenes(sceneDir string) ([]string, error) {
	entries, err := os.ReadDir(sceneDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene directory: %w", err)
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if _, err := os.Stat(filepath.Join(sceneDir, name, name+".json")); err == nil {
				seen[name] = true
			}
			continue
		}
		if strings.HasSuffix(name, ".json") {
			seen[strings.TrimSuffix(name, ".json")] = true
		}
	}

	scenes := make([]string, 0, len(seen))
	for name := range seen {
		scenes = append(scenes, name)
	}
	sort.Strings(scenes)

	return scenes, nil
}

// FindSceneFile resolves a scene name to its definition path, checking the
// flat layout first and the nested layout second.
func FindSceneFile(sceneDir, sceneName string) (string, error) {
	flat := SceneFile(sceneDir, sceneName)
	if _, err := os.Stat(flat); err == nil {
		return flat, nil
	}

	nested := filepath.Join(sceneDir, sceneName, sceneName+".json")
	if _, err := os.Stat(nested); err == nil {
		return nested, nil
	}

	return "", fmt.Errorf("scene not found: no %s.json in %s", sceneName, sceneDir)
}
