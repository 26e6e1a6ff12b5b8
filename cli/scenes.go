package cli

// This file contains the scenes command for listing the Chunky scenes a
// snapshot run can render.

import (
	"fmt"
	"path/filepath"

	"github.com/ATOMIC09/chunky-timelapse/cli/chunky"
	"github.com/urfave/cli/v2"
)

func (a *App) scenes(ctx *cli.Context) error {
	chunkyHome := ctx.String("chunky-home")
	if chunkyHome == "" {
		chunkyHome = defaultChunkyHome()
	}
	sceneDir := ctx.String("scene-dir")
	if sceneDir == "" {
		sceneDir = filepath.Join(chunkyHome, "scenes")
	}

	names, err := chunky.ListScenes(sceneDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Printf("No scenes found in %s\n", sceneDir)
		return nil
	}

	fmt.Printf("\n=== Scenes in %s ===\n\n", sceneDir)

	for _, name := range names {
		sceneFile, err := chunky.FindSceneFile(sceneDir, name)
		if err != nil {
			continue
		}
		info, err := chunky.ReadInfo(sceneFile)
		if err != nil {
			a.logger.Warn().Err(err).Str("scene", name).Msg("Failed to read scene definition")
			continue
		}

		fmt.Printf("%s\n", name)
		fmt.Printf("   Resolution: %dx%d\n", info.Width, info.Height)
		fmt.Printf("   SPP Target: %d\n", info.SppTarget)
		if info.World.Path != "" {
			fmt.Printf("   World: %s (dimension %d)\n", info.World.Path, info.World.Dimension)
		}
		if info.Camera != nil {
			pos := info.Camera.Position
			fmt.Printf("   Camera: x=%.2f y=%.2f z=%.2f\n", pos.X, pos.Y, pos.Z)
		}
		fmt.Println()
	}

	return nil
}
