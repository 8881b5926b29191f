// Package storage writes refresh reports to the results directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Storage struct {
	baseDir string
}

// NewStorage ensures baseDir exists.
func NewStorage(baseDir string) (*Storage, error) {
	if baseDir == "" {
		baseDir = "statboard-results"
	}
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &Storage{baseDir: baseDir}, nil
}

// ReportPath builds a timestamped report filename for one refresh cycle.
func (s *Storage) ReportPath(cycleID int64, now time.Time) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("cycle-%d-%s.yaml", cycleID, now.Format("2006-01-02")))
}

// SaveReport writes a rendered report file.
func (s *Storage) SaveReport(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("error saving report: %w", err)
	}
	return nil
}

// ReadReport reads a previously written report. Takes the stored path as-is,
// so reports survive the results directory moving between refreshes.
func ReadReport(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading report: %w", err)
	}
	return data, nil
}
