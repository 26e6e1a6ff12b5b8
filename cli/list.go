package cli

// This file contains the list command for displaying previous snapshot runs.

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ATOMIC09/chunky-timelapse/history"
	"github.com/ATOMIC09/chunky-timelapse/model"
	"github.com/urfave/cli/v2"
)

func (a *App) list(ctx *cli.Context) error {
	sceneFilter := ctx.String("scene")
	limit := ctx.Int("limit")

	chunkyHome := ctx.String("chunky-home")
	if chunkyHome == "" {
		chunkyHome = defaultChunkyHome()
	}
	root := history.Root(chunkyHome)

	entries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		fmt.Println("No runs found")
		fmt.Printf("Runs are saved to %s/<timestamp>-<id>/\n", root)
		return nil
	}

	// Apply scene filter if specified
	if sceneFilter != "" {
		filtered := entries[:0]
		for _, entry := range entries {
			if entry.History.Render != nil && strings.Contains(entry.History.Render.SceneName, sceneFilter) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	if len(entries) == 0 {
		if sceneFilter != "" {
			fmt.Printf("No runs found matching scene: %s\n", sceneFilter)
		} else {
			fmt.Println("No runs found")
		}
		return nil
	}

	// Sort by timestamp (newest first)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].History.Timestamp.After(entries[j].History.Timestamp)
	})

	// Apply limit
	displayEntries := entries
	if limit > 0 && limit < len(displayEntries) {
		displayEntries = displayEntries[:limit]
	}

	fmt.Printf("\n=== Snapshot Runs (%d total) ===\n\n", len(entries))

	for _, entry := range displayEntries {
		h := entry.History
		timestamp := h.Timestamp.Format("2006-01-02 15:04:05")
		duration := h.Duration.Round(time.Millisecond)

		status := "✓"
		if h.ExitCode != 0 {
			status = "✗"
		}

		shortID := h.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		fmt.Printf("%s  %s  [%s]  exit=%d  id=%s\n", status, timestamp, duration, h.ExitCode, shortID)
		if h.World != "" {
			fmt.Printf("   World: %s\n", h.World)
		}
		if h.Metadata != nil && h.Metadata.LevelName != "" {
			fmt.Printf("   Level: %s\n", h.Metadata.LevelName)
		}
		if h.Conversion != nil && !h.Conversion.Skipped {
			fmt.Printf("   Converted: %s -> %s (%s)\n", h.Conversion.InputDir, h.Conversion.OutputDir, h.Conversion.Format)
		}
		if h.Render != nil {
			fmt.Printf("   Scene: %s (spp=%d)\n", h.Render.SceneName, h.Render.SppTarget)
		}
		if h.Notification != nil {
			sent := "skipped"
			if h.Notification.Sent {
				sent = "sent"
			}
			fmt.Printf("   Notification: %s\n", sent)
		}
		for _, artifact := range h.Artifacts {
			fmt.Printf("   %s: %s (%.1f KB)\n", artifactTypeName(artifact.Type), artifact.File, float64(artifact.Size)/1024)
		}
		fmt.Printf("   %s\n", entry.FullPath)
		fmt.Println()
	}

	return nil
}

// artifactTypeName maps an artifact type to its display label.
func artifactTypeName(t model.ArtifactType) string {
	switch t {
	case model.ArtifactTypeSnapshot:
		return "snapshot"
	case model.ArtifactTypeMetadataDump:
		return "metadata"
	case model.ArtifactTypeStdout:
		return "stdout"
	case model.ArtifactTypeStderr:
		return "stderr"
	default:
		return "artifact"
	}
}
