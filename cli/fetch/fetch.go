package fetch

// fetch.go downloads external tool jars and helpers over HTTP when they
// are not present locally.

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Download fetches url into dest. The body is written to a temporary file
// next to dest and renamed into place, so a failed download never leaves a
// truncated file behind.
func Download(logger zerolog.Logger, url, dest string) error {
	logger.Info().Str("url", url).Str("dest", dest).Msg("Downloading")

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create download directory: %w", err)
		}
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()

	written, err := io.Copy(tempFile, resp.Body)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	if err := os.Rename(tempPath, dest); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to move download into place: %w", err)
	}

	logger.Debug().Int64("size_bytes", written).Str("dest", dest).Msg("Download complete")
	return nil
}
