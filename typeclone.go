// Package typeclone implements member-set merging for a type-clone construct:
// duplicating an existing type's members into a new, nominally distinct type.
package typeclone

import (
	"context"

	"github.com/viant/typeclone/inspector"
	"github.com/viant/typeclone/manifest"
	"github.com/viant/typeclone/merger"
	"github.com/viant/typeclone/model"
	"github.com/viant/typeclone/registry"
)

// Service ties the manifest loader, the source front ends and the registry together
type Service struct {
	loader  *manifest.Loader
	factory *inspector.Factory
	policy  *merger.Policy
}

// New creates a service merging with the given policy, nil selects the default rule set
func New(policy *merger.Policy) *Service {
	return &Service{
		loader:  manifest.NewLoader(),
		factory: inspector.NewFactory(nil),
		policy:  policy,
	}
}

// Process loads a manifest, registers everything it declares and resolves all
// clone declarations, returning the populated registry
func (s *Service) Process(ctx context.Context, URL string) (*registry.Registry, error) {
	loaded, err := s.loader.Load(ctx, URL)
	if err != nil {
		return nil, err
	}
	result := registry.New(s.policy)
	if err = loaded.Apply(result); err != nil {
		return nil, err
	}
	if err = result.Resolve(); err != nil {
		return nil, err
	}
	return result, nil
}

// RegisterSources extracts type bases from source files and registers them
func (s *Service) RegisterSources(dest *registry.Registry, filenames ...string) error {
	for _, filename := range filenames {
		bases, err := s.factory.InspectFile(filename)
		if err != nil {
			return err
		}
		for _, base := range bases {
			if err = dest.RegisterBase(base); err != nil {
				return err
			}
		}
	}
	return nil
}

// InspectSource extracts type bases from in-memory source using the front end
// matching the given filename
func (s *Service) InspectSource(filename string, src []byte) ([]*model.TypeBase, error) {
	aInspector, err := s.factory.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return aInspector.InspectSource(src)
}
