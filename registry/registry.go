package registry

import (
	"fmt"

	"github.com/viant/typeclone/merger"
	"github.com/viant/typeclone/model"
)

// Registry is the symbol table of a translation unit: type bases, clone
// declarations and derivation edges. Clone declarations are merged lazily in
// Resolve so a cross-reference directive can point at a clone declared later
// in the unit.
type Registry struct {
	merger    *merger.Merger
	bases     map[string]*model.TypeBase
	specs     []*model.CloneSpec
	specMap   map[string]int
	merged    map[string]*model.MergedSet
	derived   map[string][]string // type -> conventionally derived-from parents
	callables []*Callable
}

// New creates a registry merging with the given policy
func New(policy *merger.Policy) *Registry {
	return &Registry{
		merger:  merger.New(policy),
		bases:   make(map[string]*model.TypeBase),
		specMap: make(map[string]int),
		merged:  make(map[string]*model.MergedSet),
		derived: make(map[string][]string),
	}
}

// RegisterBase records an existing type definition clones can be made from
func (r *Registry) RegisterBase(base *model.TypeBase) error {
	if base == nil || base.Name == "" {
		return fmt.Errorf("base had no name")
	}
	if _, ok := r.bases[base.Name]; ok {
		return fmt.Errorf("base %v already registered", base.Name)
	}
	r.bases[base.Name] = base
	return nil
}

// Declare records a clone declaration; merging is deferred until Resolve
func (r *Registry) Declare(spec *model.CloneSpec) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf("clone had no name")
	}
	if _, ok := r.specMap[spec.Name]; ok {
		return fmt.Errorf("clone %v already declared", spec.Name)
	}
	if _, ok := r.bases[spec.Name]; ok {
		return fmt.Errorf("clone %v collides with a registered base", spec.Name)
	}
	r.specMap[spec.Name] = len(r.specs)
	r.specs = append(r.specs, spec)
	return nil
}

// RegisterDerivation records that child is conventionally derived from parent,
// feeding the transitive trait query
func (r *Registry) RegisterDerivation(child, parent string) {
	r.derived[child] = append(r.derived[child], parent)
}

// Resolve validates every cross-reference directive against the full set of
// declared clones, then merges clone declarations in declaration order
func (r *Registry) Resolve() error {
	for _, spec := range r.specs {
		if err := r.validateCrossRefs(spec); err != nil {
			return err
		}
	}
	for _, spec := range r.specs {
		bases, err := r.lookupBases(spec)
		if err != nil {
			return err
		}
		merged, err := r.merger.Merge(spec, bases)
		if err != nil {
			return err
		}
		r.merged[spec.Name] = merged
	}
	return nil
}

// Merged returns the merged declaration set of a resolved clone
func (r *Registry) Merged(name string) *model.MergedSet {
	return r.merged[name]
}

// Base returns a registered type base by name
func (r *Registry) Base(name string) *model.TypeBase {
	return r.bases[name]
}

// IsDirectClone answers whether x was declared as a clone with y among its bases
func (r *Registry) IsDirectClone(x, y string) bool {
	idx, ok := r.specMap[x]
	if !ok {
		return false
	}
	for _, base := range r.specs[idx].Bases {
		if base == y {
			return true
		}
	}
	return false
}

// IsCloneOf answers whether x is a clone of y, directly, through a chain of
// clones, or through conventional derivation from a clone of y
func (r *Registry) IsCloneOf(x, y string) bool {
	return r.isCloneOf(x, y, map[string]bool{})
}

func (r *Registry) isCloneOf(x, y string, visited map[string]bool) bool {
	if visited[x] {
		return false
	}
	visited[x] = true
	if idx, ok := r.specMap[x]; ok {
		for _, base := range r.specs[idx].Bases {
			if base == y || r.isCloneOf(base, y, visited) {
				return true
			}
		}
	}
	for _, parent := range r.derived[x] {
		if r.isCloneOf(parent, y, visited) {
			return true
		}
	}
	return false
}

// validateCrossRefs checks that every directive's right-hand side is an
// established clone of the stated original
func (r *Registry) validateCrossRefs(spec *model.CloneSpec) error {
	for _, crossRef := range spec.CrossRefs {
		idx, ok := r.specMap[crossRef.Target]
		if !ok {
			return &merger.InvalidCrossReferenceError{
				Clone:    spec.Name,
				Original: crossRef.Original,
				Target:   crossRef.Target,
				Reason:   "target is not a declared clone",
			}
		}
		if !hasBase(r.specs[idx], crossRef.Original) {
			return &merger.InvalidCrossReferenceError{
				Clone:    spec.Name,
				Original: crossRef.Original,
				Target:   crossRef.Target,
				Reason:   fmt.Sprintf("target is not a clone of %v", crossRef.Original),
			}
		}
	}
	return nil
}

// lookupBases resolves a spec's base names to type bases; a previously merged
// clone can itself serve as a base
func (r *Registry) lookupBases(spec *model.CloneSpec) ([]*model.TypeBase, error) {
	bases := make([]*model.TypeBase, 0, len(spec.Bases))
	for _, name := range spec.Bases {
		if base, ok := r.bases[name]; ok {
			bases = append(bases, base)
			continue
		}
		if merged, ok := r.merged[name]; ok {
			bases = append(bases, asBase(merged))
			continue
		}
		return nil, fmt.Errorf("clone %v: unknown base %v", spec.Name, name)
	}
	return bases, nil
}

func hasBase(spec *model.CloneSpec, name string) bool {
	for _, base := range spec.Bases {
		if base == name {
			return true
		}
	}
	return false
}

// asBase converts a merged clone into a type base so further clones can be
// made from it
func asBase(merged *model.MergedSet) *model.TypeBase {
	base := &model.TypeBase{
		Name:      merged.Name,
		Ancestors: make([]string, len(merged.Ancestors)),
	}
	copy(base.Ancestors, merged.Ancestors)
	for _, decl := range merged.Declarations {
		base.AddDeclaration(decl)
	}
	return base
}
