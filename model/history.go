package model

import "time"

// HistoryType represents the type of history entry
type HistoryType string

const (
	HistoryTypeSnapshot HistoryType = "snapshot"
)

// History represents a single chunky-timelapse run.
type History struct {
	// Unique ID for this run (16 random bytes, hex encoded)
	ID string `json:"id"`
	// Type of run
	Type HistoryType `json:"type"`
	// Timestamp when the run started
	Timestamp time.Time `json:"timestamp"`
	// Command-line arguments (including command name)
	Args []string `json:"args"`
	// Exit code of the run
	ExitCode int `json:"exit_code"`
	// Duration of the run
	Duration time.Duration `json:"duration"`
	// Name of the world subdirectory that was located ("" = input root)
	World string `json:"world,omitempty"`
	// Conversion options used (if any)
	Conversion *Conversion `json:"conversion,omitempty"`
	// Render options used (if any)
	Render *Render `json:"render,omitempty"`
	// Notification outcome (if a webhook was configured)
	Notification *Notification `json:"notification,omitempty"`
	// World metadata extracted from level.dat (best effort)
	Metadata *WorldMetadata `json:"metadata,omitempty"`
	// Artifacts generated during this run
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// Conversion records the world conversion step of a run.
type Conversion struct {
	// Whether the conversion step was skipped (-b)
	Skipped bool `json:"skipped,omitempty"`
	// Input directory the world was read from
	InputDir string `json:"input_dir,omitempty"`
	// Output directory the converted world was written to
	OutputDir string `json:"output_dir,omitempty"`
	// Target world format passed to the converter
	Format string `json:"format,omitempty"`
}

// Render records the scene render step of a run.
type Render struct {
	// Scene name that was rendered
	SceneName string `json:"scene_name,omitempty"`
	// Scene directory the definition was loaded from
	SceneDir string `json:"scene_dir,omitempty"`
	// Target samples per pixel read from the scene definition
	SppTarget int `json:"spp_target,omitempty"`
	// Minecraft version used for texture resources
	MinecraftVersion string `json:"minecraft_version,omitempty"`
}

// Notification records the webhook notification outcome of a run.
type Notification struct {
	// Webhook endpoint the snapshot was posted to
	WebhookURL string `json:"webhook_url,omitempty"`
	// Whether the notification was actually sent
	Sent bool `json:"sent"`
}

// WorldMetadata holds fields extracted from the world's level.dat dump.
// All fields are best effort: a field that could not be extracted stays
// at its zero value (nil for the tick counters).
type WorldMetadata struct {
	// World age in ticks, decoded from the Time tag
	TimeTicks *int64 `json:"time_ticks,omitempty"`
	// In-game day number (TimeTicks / 24000)
	DayNumber int64 `json:"day_number,omitempty"`
	// Hour of day formatted as "HH:00"
	TimeOfDay string `json:"time_of_day,omitempty"`
	// True when the hour of day falls within [6,18)
	Daytime bool `json:"daytime,omitempty"`
	// World name from the LevelName tag
	LevelName string `json:"level_name,omitempty"`
	// Time of day in ticks, decoded from the DayTime tag
	DayTimeTicks *int64 `json:"day_time_ticks,omitempty"`
	// Difficulty name mapped from the Difficulty tag
	Difficulty string `json:"difficulty,omitempty"`
}

// ArtifactType identifies the type of artifact
type ArtifactType uint8

const (
	ArtifactTypeSnapshot ArtifactType = iota
	ArtifactTypeMetadataDump
	ArtifactTypeStdout
	ArtifactTypeStderr
)

// Artifact represents a file generated during a run
type Artifact struct {
	Type ArtifactType `json:"type"`
	Size uint64       `json:"size"`
	File string       `json:"file"` // relative to run dir
}
