package levelmeta

// Package levelmeta extracts world information from the JSON dump of a
// Minecraft level.dat file. The dump serializes every NBT tag as an object
// with "Tag", "Label" and "Payload" keys; compound tags nest further tag
// objects inside their payload. Extraction walks the decoded JSON tree and
// looks fields up by label rather than pattern matching the serialized text.

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ATOMIC09/chunky-timelapse/model"
)

// MarkerFile is the descriptor file whose presence identifies a directory
// as a Minecraft world root.
const MarkerFile = "level.dat"

// PlaceholderSummary is reported when no world marker file is available.
const PlaceholderSummary = "World information not available"

// TicksPerDay is the length of a Minecraft day in game ticks.
const TicksPerDay = 24000

// Extractor extracts world metadata from a level.dat JSON dump.
type Extractor struct{}

// New creates a new extractor instance
func New() *Extractor {
	return &Extractor{}
}

// Extract decodes the level.dat JSON dump from reader and returns the world
// metadata. Individual fields are best effort: a field whose tag cannot be
// found or decoded is left unset. Only a malformed document is an error.
func (e *Extractor) Extract(reader io.Reader) (*model.WorldMetadata, error) {
	var root any
	dec := json.NewDecoder(reader)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode level.dat dump: %w", err)
	}

	md := &model.WorldMetadata{}

	// Time requires a full tag object; fall back to a loose Label/Payload
	// match when the dump omits the Tag key.
	payload, ok := findPayload(root, "Time", true)
	if !ok {
		payload, ok = findPayload(root, "Time", false)
	}
	if ok {
		if ticks, err := payloadTicks(payload); err == nil {
			md.TimeTicks = &ticks
			md.DayNumber = ticks / TicksPerDay
			hour := (ticks % TicksPerDay) / 1000
			md.TimeOfDay = fmt.Sprintf("%02d:00", hour)
			md.Daytime = hour >= 6 && hour < 18
		}
	}

	if payload, ok := findPayload(root, "LevelName", true); ok {
		if name, ok := payload.(string); ok {
			md.LevelName = name
		}
	}

	if payload, ok := findPayload(root, "DayTime", true); ok {
		if ticks, err := payloadTicks(payload); err == nil {
			md.DayTimeTicks = &ticks
		}
	}

	if payload, ok := findPayload(root, "Difficulty", true); ok {
		if value, err := payloadTicks(payload); err == nil {
			md.Difficulty = DifficultyName(value)
		}
	}

	return md, nil
}

// findPayload walks the decoded JSON tree looking for a tag object whose
// Label matches the requested name and returns its Payload. In strict mode
// the object must carry all three tag keys; in loose mode a Label/Payload
// pair is enough. The first match in traversal order wins.
func findPayload(node any, label string, strict bool) (any, bool) {
	switch v := node.(type) {
	case map[string]any:
		if l, ok := v["Label"].(string); ok && l == label {
			if payload, ok := v["Payload"]; ok {
				if !strict {
					return payload, true
				}
				if _, ok := v["Tag"]; ok {
					return payload, true
				}
			}
		}
		for _, child := range v {
			if payload, ok := findPayload(child, label, strict); ok {
				return payload, true
			}
		}
	case []any:
		for _, child := range v {
			if payload, ok := findPayload(child, label, strict); ok {
				return payload, true
			}
		}
	}
	return nil, false
}

// payloadTicks interprets a numeric tag payload. The dump emits integral
// tags as zero-padded hex strings; plain JSON numbers are accepted too.
func payloadTicks(payload any) (int64, error) {
	switch v := payload.(type) {
	case string:
		return ParseHexPayload(v)
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unsupported payload type %T", payload)
	}
}

// ParseHexPayload converts a zero-padded hex payload to a decimal value.
// Leading zeros are stripped first; an all-zero or empty payload is zero.
func ParseHexPayload(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hex payload %q: %w", s, err)
	}
	return value, nil
}

// DifficultyName maps the numeric Difficulty tag to its display name.
func DifficultyName(value int64) string {
	switch value {
	case 0:
		return "Peaceful"
	case 1:
		return "Easy"
	case 2:
		return "Normal"
	case 3:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Summary renders the extracted metadata as the multi-line text posted to
// the webhook. Fields are emitted in a fixed order; a field that could not
// be extracted is omitted entirely.
func Summary(md *model.WorldMetadata) string {
	if md == nil {
		return PlaceholderSummary
	}

	var lines []string
	if md.TimeTicks != nil {
		phase := "Night"
		if md.Daytime {
			phase = "Daytime"
		}
		lines = append(lines, fmt.Sprintf("Time: Day %d, %s (%s)", md.DayNumber, md.TimeOfDay, phase))
	}
	if md.LevelName != "" {
		lines = append(lines, fmt.Sprintf("World: %s", md.LevelName))
	}
	if md.DayTimeTicks != nil {
		lines = append(lines, fmt.Sprintf("Day time: %d ticks", *md.DayTimeTicks))
	}
	if md.Difficulty != "" {
		lines = append(lines, fmt.Sprintf("Difficulty: %s", md.Difficulty))
	}

	return strings.Join(lines, "\n")
}
