// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// FilenameTimeLayout is the timestamp suffix of exported report files.
const FilenameTimeLayout = "20060102_150405"

// ExportJSON writes data as indented JSON to filename, creating parent
// directories as needed.
func ExportJSON(filename string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	body = append(body, '\n')

	// Rename into place so a partial report is never visible.
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// TimestampedFilename returns baseDir/name_YYYYMMDD_HHMMSS.json.
func TimestampedFilename(baseDir, name string, now time.Time) string {
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s.json", name, now.UTC().Format(FilenameTimeLayout)))
}
