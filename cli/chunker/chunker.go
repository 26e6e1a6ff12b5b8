package chunker

// chunker.go contains utilities for building chunker-cli invocations.
// chunker-cli is the external Java tool that converts Minecraft worlds
// between Bedrock and Java formats.

import (
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/urfave/cli/v2"
)

// DefaultFormat is the world format produced when none is configured.
const DefaultFormat = "JAVA_1_21_4"

// ConvertOptions contains options for a world conversion.
type ConvertOptions struct {
	Jar       string // Path to the chunker-cli jar
	InputDir  string // Directory holding the staged source world
	OutputDir string // Directory the converted world is written to
	Format    string // Target world format identifier
}

// BuildConvertArgs builds the java argument list for a conversion.
func BuildConvertArgs(opts ConvertOptions) []string {
	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}

	return []string{
		"-jar", opts.Jar,
		"--inputDirectory", opts.InputDir,
		"--outputDirectory", opts.OutputDir,
		"--outputFormat", format,
	}
}

// Command builds the full conversion command string for diagnostics.
func Command(opts ConvertOptions) string {
	args := BuildConvertArgs(opts)

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "java")
	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}

	return strings.Join(parts, " ")
}

// JarFlag returns the converter jar path flag.
func JarFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "converter-jar",
		Aliases: []string{"j"},
		Usage:   "Path to the chunker-cli jar used for world conversion",
		Value:   "chunker-cli.jar",
	}
}

// FormatFlag returns the target world format flag.
func FormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Target world format identifier passed to chunker-cli",
		Value:   DefaultFormat,
	}
}
