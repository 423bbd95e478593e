package exporter

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// archiveLogEntry is the fixed name of the run log inside every archive.
const archiveLogEntry = "export_operation.log"

// SanitizeFilename replaces characters that are unsafe as archive entry
// names: spaces and path separators become underscores.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return replacer.Replace(name)
}

// packageResults downloads every export blob and assembles the output
// archive, plus the full run log as a fixed-name entry.
//
// Collision policy: the first occurrence of a sanitized filename wins;
// later results with the same name are dropped and recorded as warnings
// naming both element IDs. Nothing is silently overwritten or auto-renamed;
// the operator is expected to fix the export rules upstream.
//
// An empty result list produces no archive.
func (w *Workflow) packageResults(results []ExportResult, logEntries []string) (archivePath string, collisionWarnings []string, err error) {
	if len(results) == 0 {
		w.logger.Infof("No files to package")
		return "", nil, nil
	}

	w.logger.Infof("Downloading %d files...", len(results))

	archivePath = filepath.Join(w.OutputDir, fmt.Sprintf("onshape_export_%d.zip", time.Now().Unix()))

	f, err := os.Create(archivePath)
	if err != nil {
		return "", nil, fmt.Errorf("create archive %s: %w", archivePath, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	// seen maps sanitized filename to the element whose content actually
	// made it into the archive. A failed download leaves the name
	// unclaimed, so a later result with the same name still gets packaged.
	seen := make(map[string]string)
	for _, result := range results {
		safeName := SanitizeFilename(result.Filename)

		if firstID, exists := seen[safeName]; exists {
			warning := fmt.Sprintf("Filename collision: '%s' - kept element %s, skipped element %s",
				safeName, firstID, result.ElementID)
			collisionWarnings = append(collisionWarnings, warning)
			w.logger.Warnf("%s", warning)
			continue
		}

		content, err := w.api.DownloadBlob(w.ctx, result.ElementID)
		if err != nil {
			w.logger.Errorf("Failed to download %s, skipping: %v", result.ElementID, err)
			continue
		}

		entry, err := zw.Create(safeName)
		if err != nil {
			zw.Close()
			return "", nil, fmt.Errorf("add archive entry %s: %w", safeName, err)
		}
		if _, err := entry.Write(content); err != nil {
			zw.Close()
			return "", nil, fmt.Errorf("write archive entry %s: %w", safeName, err)
		}
		seen[safeName] = result.ElementID
	}

	logWriter, err := zw.Create(archiveLogEntry)
	if err != nil {
		zw.Close()
		return "", nil, fmt.Errorf("add log entry to archive: %w", err)
	}
	if _, err := logWriter.Write([]byte(strings.Join(logEntries, "\n"))); err != nil {
		zw.Close()
		return "", nil, fmt.Errorf("write log entry to archive: %w", err)
	}

	if err := zw.Close(); err != nil {
		return "", nil, fmt.Errorf("finalize archive %s: %w", archivePath, err)
	}

	w.logger.Infof("Created archive: %s", archivePath)
	return archivePath, collisionWarnings, nil
}
