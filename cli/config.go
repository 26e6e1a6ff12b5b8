package cli

// This file builds the immutable run configuration from CLI flags.
// Only light normalization happens here; each pipeline step validates the
// existence of the specific resources it needs.

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

// Config is the resolved configuration for a single snapshot run. It is
// built once from flag values and never mutated afterwards.
type Config struct {
	// ConverterJar is the chunker-cli jar path
	ConverterJar string
	// LauncherJar is the ChunkyLauncher jar path
	LauncherJar string
	// InputDir holds the source world (or a parent of world directories)
	InputDir string
	// OutputDir receives the converted world
	OutputDir string
	// Format is the target world format identifier
	Format string
	// WorldName is the explicit world subdirectory ("" = discover)
	WorldName string
	// SceneName is the Chunky scene to render
	SceneName string
	// SceneDir holds the scene definitions
	SceneDir string
	// ChunkyHome is the renderer's home directory
	ChunkyHome string
	// MinecraftVersion selects the texture resources to download
	MinecraftVersion string
	// WebhookURL is the notification endpoint ("" = no notification)
	WebhookURL string
	// WebhookUsername is the display name for notifications
	WebhookUsername string
	// WebhookAvatarURL is the avatar for notifications
	WebhookAvatarURL string
	// DoConversion controls the world conversion step
	DoConversion bool
	// DoSnapshot controls the scene render step
	DoSnapshot bool
}

func configFromContext(ctx *cli.Context) *Config {
	chunkyHome := ctx.String("chunky-home")
	if chunkyHome == "" {
		chunkyHome = defaultChunkyHome()
	}
	chunkyHome = trimPathSep(chunkyHome)

	sceneDir := ctx.String("scene-dir")
	if sceneDir == "" {
		sceneDir = filepath.Join(chunkyHome, "scenes")
	}

	return &Config{
		ConverterJar:     trimPathSep(ctx.String("converter-jar")),
		LauncherJar:      trimPathSep(ctx.String("launcher-jar")),
		InputDir:         trimPathSep(ctx.String("input")),
		OutputDir:        trimPathSep(ctx.String("output")),
		Format:           ctx.String("format"),
		WorldName:        ctx.String("world"),
		SceneName:        ctx.String("scene"),
		SceneDir:         trimPathSep(sceneDir),
		ChunkyHome:       chunkyHome,
		MinecraftVersion: ctx.String("mc-version"),
		WebhookURL:       ctx.String("webhook-url"),
		WebhookUsername:  ctx.String("webhook-username"),
		WebhookAvatarURL: ctx.String("webhook-avatar"),
		DoConversion:     !ctx.Bool("skip-conversion"),
		DoSnapshot:       ctx.Bool("render"),
	}
}

// trimPathSep strips a single trailing path separator, if present.
func trimPathSep(path string) string {
	if len(path) > 1 && (strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator))) {
		return path[:len(path)-1]
	}
	return path
}

func defaultChunkyHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chunky"
	}
	return filepath.Join(home, ".chunky")
}
