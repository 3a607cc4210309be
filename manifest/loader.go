package manifest

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedSchema is the manifest schema major version this library understands
const SupportedSchema = "v1"

// Loader reads clone manifests from any afs-supported location
type Loader struct {
	fs afs.Service
}

// NewLoader creates a manifest loader
func NewLoader() *Loader {
	return &Loader{fs: afs.New()}
}

// Load downloads and decodes a manifest, rejecting unsupported schema versions
func (l *Loader) Load(ctx context.Context, URL string) (*Manifest, error) {
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest %v: %w", URL, err)
	}
	manifest := &Manifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %v: %w", URL, err)
	}
	if manifest.Schema == "" {
		manifest.Schema = SupportedSchema
	}
	if !semver.IsValid(manifest.Schema) {
		return nil, fmt.Errorf("manifest %v: invalid schema version: %v", URL, manifest.Schema)
	}
	if semver.Major(manifest.Schema) != SupportedSchema {
		return nil, fmt.Errorf("manifest %v: unsupported schema version: %v", URL, manifest.Schema)
	}
	return manifest, nil
}
