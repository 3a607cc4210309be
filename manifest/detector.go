package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultName is the manifest file name the detector looks for
const DefaultName = "typeclone.yaml"

// Detector locates the manifest governing a source file by walking up the
// directory tree
type Detector struct {
	// Project root marker files/directories
	markers []string
}

// NewDetector creates a new manifest detector instance
func NewDetector() *Detector {
	return &Detector{
		markers: []string{
			DefaultName,
			".git", // Generic VCS marker
		},
	}
}

// Detect returns the path of the manifest governing the given file, walking up
// from the file's directory to the project root
func (d *Detector) Detect(filePath string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", err
	}

	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	current := startDir
	for {
		candidate := filepath.Join(current, DefaultName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		if d.isRoot(current) {
			break
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", fmt.Errorf("no %v found above %v", DefaultName, startDir)
}

// isRoot reports whether the directory carries a project root marker
func (d *Detector) isRoot(dir string) bool {
	for _, marker := range d.markers {
		if marker == DefaultName {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
