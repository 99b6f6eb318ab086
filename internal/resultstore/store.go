// Package resultstore persists ResponseRecord collections as JSON documents.
// Writes are atomic (temp file + fsync + rename) so an interrupted run never
// leaves a truncated result file behind.
package resultstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidbz/promptbench/internal/domain"
)

// Save writes the full record collection to path as an indented JSON array.
func Save(path string, records []domain.ResponseRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result file %s: %w", path, err)
	}

	return nil
}

// Load reads a record collection from path.
func Load(path string) ([]domain.ResponseRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file %s: %w", path, err)
	}

	var records []domain.ResponseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse result file %s: %w", path, err)
	}

	return records, nil
}

// Index maps records by prompt ID. When duplicates exist the first record
// wins, matching the append-only single-writer contract.
func Index(records []domain.ResponseRecord) map[string]domain.ResponseRecord {
	index := make(map[string]domain.ResponseRecord, len(records))
	for _, record := range records {
		if _, exists := index[record.PromptID]; !exists {
			index[record.PromptID] = record
		}
	}
	return index
}

// atomicWriteFile writes data to path via a temp file in the same directory,
// syncs it, and renames it over the target. The rename is atomic on the same
// filesystem, so readers see either the old file or the complete new one.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := f.Name()

	success := false
	defer func() {
		if !success {
			f.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync data to disk: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tempPath, perm); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
