package cli

// This file contains the view command for displaying a snapshot run from
// history.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ATOMIC09/chunky-timelapse/history"
	"github.com/ATOMIC09/chunky-timelapse/levelmeta"
	"github.com/urfave/cli/v2"
)

// viewArgs extracts the optional -d/--chunky-home value and the ID/index
// argument from the raw args. Flag parsing is skipped for this command so
// negative indexes are not mistaken for flags; the home flag is picked out
// by hand instead. No ID/index argument means the most recent run.
func viewArgs(args []string) (home, arg string) {
	arg = "0"
	seen := false
	for i := 0; i < len(args); i++ {
		if args[i] == "-d" || args[i] == "--chunky-home" {
			if i+1 < len(args) {
				home = args[i+1]
				i++
			}
			continue
		}
		if !seen {
			arg = args[i]
			seen = true
		}
	}
	return home, arg
}

func (a *App) view(ctx *cli.Context) error {
	chunkyHome, arg := viewArgs(ctx.Args().Slice())
	if chunkyHome == "" {
		chunkyHome = defaultChunkyHome()
	}

	root := history.Root(chunkyHome)
	entries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no history entries found")
	}

	// Sort by timestamp (newest first)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].History.Timestamp.After(entries[j].History.Timestamp)
	})

	var target *history.Entry
	if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if parsed > 0 {
			return fmt.Errorf("invalid index: %s (use 0 for last, -1 for second-to-last, -2 for third-to-last, etc.)", arg)
		}
		index := int(-parsed)
		if index >= len(entries) {
			return fmt.Errorf("index %s out of range (only %d history entries)", arg, len(entries))
		}
		target = &entries[index]
	} else {
		hexID := strings.ToLower(arg)
		for i := range entries {
			if strings.HasPrefix(strings.ToLower(entries[i].History.ID), hexID) {
				target = &entries[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("no history entry found matching ID: %s", arg)
		}
	}

	return a.displayHistoryEntry(target)
}

func (a *App) displayHistoryEntry(entry *history.Entry) error {
	h := entry.History

	fmt.Printf("=== Snapshot Run: %s ===\n", h.ID[:8])
	fmt.Printf("Time: %s\n", h.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration: %s\n", h.Duration.Round(time.Millisecond))
	fmt.Printf("Exit Code: %d\n", h.ExitCode)
	if h.World != "" {
		fmt.Printf("World: %s\n", h.World)
	}
	if h.Conversion != nil {
		if h.Conversion.Skipped {
			fmt.Printf("Conversion: skipped (reused %s)\n", h.Conversion.OutputDir)
		} else {
			fmt.Printf("Conversion: %s -> %s (%s)\n", h.Conversion.InputDir, h.Conversion.OutputDir, h.Conversion.Format)
		}
	}
	if h.Render != nil {
		fmt.Printf("Scene: %s (dir=%s, spp=%d)\n", h.Render.SceneName, h.Render.SceneDir, h.Render.SppTarget)
	}
	if h.Notification != nil {
		sent := "skipped"
		if h.Notification.Sent {
			sent = "sent"
		}
		fmt.Printf("Notification: %s (%s)\n", sent, h.Notification.WebhookURL)
	}

	if h.Metadata != nil {
		fmt.Println()
		fmt.Println(levelmeta.Summary(h.Metadata))
	}

	if len(h.Artifacts) > 0 {
		fmt.Println()
		fmt.Println("Artifacts:")
		for _, artifact := range h.Artifacts {
			fmt.Printf("  %s: %s (%.1f KB)\n", artifactTypeName(artifact.Type), artifact.File, float64(artifact.Size)/1024)
		}
	}

	fmt.Println()
	fmt.Printf("Run directory: %s\n", entry.FullPath)

	return nil
}
