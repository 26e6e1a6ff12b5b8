package cli

// This file contains the world conversion step: staging the source world
// into a scratch directory and invoking chunker-cli against it. Staging
// keeps the external tool away from the original world files.

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ATOMIC09/chunky-timelapse/cli/chunker"
)

// convertWorld converts the located world into the output directory. The
// output directory is deleted and rebuilt, never merged into, so repeated
// runs produce equivalent output. With conversion disabled the output
// directory must already exist from a prior run.
func (a *App) convertWorld(cfg *Config, worldName string, stdout, stderr *string) error {
	if !cfg.DoConversion {
		info, err := os.Stat(cfg.OutputDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("conversion skipped but output directory missing: %s", cfg.OutputDir)
		}
		a.logger.Info().Str("output", cfg.OutputDir).Msg("Conversion skipped, using existing output directory")
		return nil
	}

	if _, err := os.Stat(cfg.ConverterJar); err != nil {
		return fmt.Errorf("converter jar not found: %s", cfg.ConverterJar)
	}

	worldDir := filepath.Join(cfg.InputDir, worldName)
	if info, err := os.Stat(worldDir); err != nil || !info.IsDir() {
		return fmt.Errorf("world directory not found: %s", worldDir)
	}

	// Rebuild the output directory from scratch
	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return fmt.Errorf("failed to clear output directory: %w", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Stage the world so the converter never touches the original
	scratchDir, err := os.MkdirTemp("", "chunky-timelapse-world-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	a.logger.Debug().Str("world", worldDir).Str("staging", scratchDir).Msg("Staging world")
	if err := copyDir(worldDir, scratchDir); err != nil {
		os.RemoveAll(scratchDir)
		return fmt.Errorf("failed to stage world: %w", err)
	}

	opts := chunker.ConvertOptions{
		Jar:       cfg.ConverterJar,
		InputDir:  scratchDir,
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
	}

	a.logger.Info().
		Str("world", worldDir).
		Str("format", opts.Format).
		Str("command", chunker.Command(opts)).
		Msg("Converting world")

	if err := a.runExternal("java", chunker.BuildConvertArgs(opts), stdout, stderr); err != nil {
		os.RemoveAll(scratchDir)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("conversion failed with exit code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to execute converter: %w", err)
	}

	if err := os.RemoveAll(scratchDir); err != nil {
		a.logger.Warn().Err(err).Str("staging", scratchDir).Msg("Failed to clean up staging directory")
	}

	a.logger.Info().Str("output", cfg.OutputDir).Msg("World converted")
	return nil
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	// Copy file permissions
	sourceInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, sourceInfo.Mode())
}
