// Package project handles the workspace side effects around a pipeline run:
// writing generated code to disk, scaffolding project layouts, and producing
// commit messages, CI configs, and test reports.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SaveCode writes code to filename. When backup is true and the file already
// exists, the previous version is renamed to a timestamped .backup file first.
func SaveCode(code, filename string, backup bool) error {
	if backup {
		if _, err := os.Stat(filename); err == nil {
			backupName := fmt.Sprintf("%s.backup.%s", filename, time.Now().Format("20060102_150405"))
			if err := os.Rename(filename, backupName); err != nil {
				return fmt.Errorf("backup %s: %w", filename, err)
			}
		}
	}
	if err := os.WriteFile(filename, []byte(code), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}

// LoadCode reads a source file.
func LoadCode(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return string(data), nil
}

// CreateStructure lays out the standard src/tests/docs/config directories
// under base and returns a purpose-to-path map.
func CreateStructure(base string) (map[string]string, error) {
	structure := map[string]string{
		"src":    filepath.Join(base, "src"),
		"tests":  filepath.Join(base, "tests"),
		"docs":   filepath.Join(base, "docs"),
		"config": filepath.Join(base, "config"),
	}
	for _, path := range structure {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
	}
	return structure, nil
}

// WriteRequirements writes a sorted, de-duplicated dependency list, one per
// line.
func WriteRequirements(dependencies []string, filename string) error {
	seen := map[string]struct{}{}
	unique := make([]string, 0, len(dependencies))
	for _, dep := range dependencies {
		if _, ok := seen[dep]; ok {
			continue
		}
		seen[dep] = struct{}{}
		unique = append(unique, dep)
	}
	sort.Strings(unique)
	var sb strings.Builder
	for _, dep := range unique {
		sb.WriteString(dep)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(filename, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
