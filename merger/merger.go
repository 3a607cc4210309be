package merger

import (
	"fmt"

	"github.com/viant/typeclone/model"
)

// Merger computes the merged declaration set of a clone declaration. The merge
// is a single-pass transformation: any failure aborts the whole clone with no
// partial result.
type Merger struct {
	policy *Policy
}

// New creates a merger with the given policy, falling back to the default rule set
func New(policy *Policy) *Merger {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Merger{policy: policy}
}

// Policy returns the merger's rule set
func (m *Merger) Policy() *Policy {
	return m.policy
}

// Merge produces the merged declaration set for the clone spec given its
// resolved type bases, supplied in spec.Bases order
func (m *Merger) Merge(spec *model.CloneSpec, bases []*model.TypeBase) (*model.MergedSet, error) {
	if err := m.validate(spec, bases); err != nil {
		return nil, err
	}

	ren := newRenamer(renameTable(spec, bases))

	merged := &model.MergedSet{
		Name:      spec.Name,
		Bases:     baseNames(bases),
		Ancestors: mergeAncestors(bases),
	}

	templated := templatedBase(bases)
	if templated >= 0 && len(spec.Args) > 0 {
		// A parameterized clone merges the single best matching specialization
		selected := selectSpecialization(bases[templated], spec.Args)
		override := map[int][]*model.Declaration{}
		if selected != nil {
			override[templated] = selected.Declarations
		}
		declarations, err := m.mergeOnce(spec, bases, override, ren)
		if err != nil {
			return nil, err
		}
		for _, decl := range declarations {
			merged.AddDeclaration(decl)
		}
		return merged, nil
	}

	declarations, err := m.mergeOnce(spec, bases, nil, ren)
	if err != nil {
		return nil, err
	}
	for _, decl := range declarations {
		merged.AddDeclaration(decl)
	}

	// An unparameterized clone of a templated base echoes the base's
	// specialization family
	if templated >= 0 {
		for _, specialization := range bases[templated].Specializations {
			override := map[int][]*model.Declaration{templated: specialization.Declarations}
			specialized, err := m.mergeOnce(spec, bases, override, ren)
			if err != nil {
				return nil, err
			}
			patterns := make([]string, len(specialization.Patterns))
			copy(patterns, specialization.Patterns)
			merged.Specialized = append(merged.Specialized, &model.MergedSpecialization{
				Patterns:     patterns,
				Declarations: specialized,
			})
		}
	}
	return merged, nil
}

// mergeOnce runs the concatenate, rename, collision, attribute, nested-type and
// friend steps over one selection of base declarations
func (m *Merger) mergeOnce(spec *model.CloneSpec, bases []*model.TypeBase, override map[int][]*model.Declaration, ren *renamer) ([]*model.Declaration, error) {
	var declarations []*model.Declaration
	for i, base := range bases {
		source := base.Declarations
		if selected, ok := override[i]; ok {
			source = selected
		}
		if base.IsPrimitive {
			continue // admitted per policy, contributes no members
		}
		for _, decl := range source {
			copied := decl.Clone()
			copied.Origin = base.Name
			ren.rewriteDeclaration(copied)
			declarations = append(declarations, copied)
		}
	}
	for _, decl := range spec.Additional {
		copied := decl.Clone()
		copied.Origin = ""
		ren.rewriteDeclaration(copied)
		declarations = append(declarations, copied)
	}

	declarations, err := m.detectCollisions(spec, declarations)
	if err != nil {
		return nil, err
	}
	declarations, err = m.mergeAttributes(spec, bases, declarations)
	if err != nil {
		return nil, err
	}
	declarations, err = m.mergeNested(spec, declarations)
	if err != nil {
		return nil, err
	}
	return m.applyFriendPolicy(declarations), nil
}

// validate enforces the structural preconditions of the merge
func (m *Merger) validate(spec *model.CloneSpec, bases []*model.TypeBase) error {
	if len(bases) == 0 {
		return fmt.Errorf("clone %v: no type bases", spec.Name)
	}
	if len(bases) != len(spec.Bases) {
		return fmt.Errorf("clone %v: expected %v bases, had %v", spec.Name, len(spec.Bases), len(bases))
	}
	if m.policy.SingleBaseOnly && len(bases) > 1 {
		return fmt.Errorf("clone %v: multiple bases are not allowed by the active policy", spec.Name)
	}

	var initializers []string
	for _, base := range bases {
		if base.IsPrimitive && !m.policy.AllowPrimitiveBase {
			return &PrimitiveBaseError{Clone: spec.Name, Base: base.Name}
		}
		if base.HasUserInitialization() {
			initializers = append(initializers, base.Name)
		}
	}
	if len(initializers) > 1 {
		return &ConflictingInitializationError{Clone: spec.Name, Bases: initializers}
	}
	return nil
}

// detectCollisions fails on identical callable signatures; under the
// substitution policy an additional declaration replaces a base declaration in
// the base declaration's position
func (m *Merger) detectCollisions(spec *model.CloneSpec, declarations []*model.Declaration) ([]*model.Declaration, error) {
	seen := map[model.Signature]int{}
	var result []*model.Declaration
	for _, decl := range declarations {
		if !decl.IsCallable() {
			result = append(result, decl)
			continue
		}
		signature := decl.Signature()
		idx, ok := seen[signature]
		if !ok {
			seen[signature] = len(result)
			result = append(result, decl)
			continue
		}
		previous := result[idx]
		if m.policy.AllowSubstitution && previous.Origin != "" && decl.Origin == "" {
			result[idx] = decl // additional declaration substitutes the base member
			continue
		}
		return nil, &SignatureCollisionError{
			Clone:     spec.Name,
			Signature: signature,
			First:     previous.Origin,
			Second:    decl.Origin,
		}
	}
	return result, nil
}

// mergeAttributes unifies attributes that are structurally identical across all
// bases into a single slot; any partial alignment is a conflict
func (m *Merger) mergeAttributes(spec *model.CloneSpec, bases []*model.TypeBase, declarations []*model.Declaration) ([]*model.Declaration, error) {
	if len(bases) < 2 {
		return declarations, nil
	}

	// position of each base-origin attribute within its own base
	position := map[string]map[string]int{}
	byBase := map[string]map[string]*model.Declaration{}
	for _, decl := range declarations {
		if decl.Kind != model.KindAttribute || decl.Origin == "" {
			continue
		}
		if position[decl.Origin] == nil {
			position[decl.Origin] = map[string]int{}
			byBase[decl.Origin] = map[string]*model.Declaration{}
		}
		position[decl.Origin][decl.Name] = len(position[decl.Origin])
		byBase[decl.Origin][decl.Name] = decl
	}

	unified := map[string]bool{}
	for _, decl := range declarations {
		if decl.Kind != model.KindAttribute || decl.Origin == "" || unified[decl.Name] {
			continue
		}
		var owners []string
		for _, base := range bases {
			if _, ok := byBase[base.Name][decl.Name]; ok {
				owners = append(owners, base.Name)
			}
		}
		if len(owners) < 2 {
			continue // disjoint attribute, concatenated as-is
		}
		if !m.policy.MergeAttributes || len(owners) != len(bases) {
			return nil, &AttributeMismatchError{Clone: spec.Name, Attribute: decl.Name, Bases: owners}
		}
		for _, owner := range owners {
			candidate := byBase[owner][decl.Name]
			if candidate.Type != decl.Type || candidate.Visibility != decl.Visibility ||
				position[owner][decl.Name] != position[decl.Origin][decl.Name] {
				return nil, &AttributeMismatchError{Clone: spec.Name, Attribute: decl.Name, Bases: owners}
			}
		}
		unified[decl.Name] = true
	}

	if len(unified) == 0 {
		return declarations, nil
	}

	// keep the first slot of each unified attribute, drop the rest
	kept := map[string]bool{}
	var result []*model.Declaration
	for _, decl := range declarations {
		if decl.Kind == model.KindAttribute && decl.Origin != "" && unified[decl.Name] {
			if kept[decl.Name] {
				continue
			}
			kept[decl.Name] = true
		}
		result = append(result, decl)
	}
	return result, nil
}

// mergeNested applies clone-merge semantics recursively to nested types that
// the clone body independently re-declares
func (m *Merger) mergeNested(spec *model.CloneSpec, declarations []*model.Declaration) ([]*model.Declaration, error) {
	nested := map[string]int{}
	for i, decl := range declarations {
		if decl.Kind == model.KindNestedType && decl.Origin != "" {
			nested[decl.Name] = i
		}
	}

	var result []*model.Declaration
	for _, decl := range declarations {
		if decl.Kind != model.KindNestedType || decl.Origin != "" {
			result = append(result, decl)
			continue
		}
		idx, ok := nested[decl.Name]
		if !ok {
			result = append(result, decl)
			continue
		}
		base := &model.TypeBase{Name: decl.Name}
		for _, member := range declarations[idx].Members {
			base.AddDeclaration(member)
		}
		nestedSpec := &model.CloneSpec{
			Name:       decl.Name,
			Bases:      []string{decl.Name},
			Additional: decl.Members,
		}
		mergedNested, err := m.Merge(nestedSpec, []*model.TypeBase{base})
		if err != nil {
			return nil, err
		}
		declarations[idx].Members = mergedNested.Declarations
	}
	return result, nil
}

// applyFriendPolicy drops or degrades copied friend declarations per policy
func (m *Merger) applyFriendPolicy(declarations []*model.Declaration) []*model.Declaration {
	var result []*model.Declaration
	for _, decl := range declarations {
		if decl.Kind != model.KindFriend || decl.Origin == "" {
			result = append(result, decl)
			continue
		}
		switch m.policy.Friends {
		case FriendDrop:
			continue
		default:
			if !decl.IsTemplate {
				// unusable until independently defined for the new type
				decl.Body = nil
				decl.IsPure = true
			}
			result = append(result, decl)
		}
	}
	return result
}

// renameTable maps each base's own name to the clone name; cross-reference
// directives redirect other originals, never a base's self-reference
func renameTable(spec *model.CloneSpec, bases []*model.TypeBase) map[string]string {
	table := map[string]string{}
	for _, base := range bases {
		table[base.Name] = spec.Name
	}
	for _, crossRef := range spec.CrossRefs {
		if _, ok := table[crossRef.Original]; ok {
			continue
		}
		table[crossRef.Original] = crossRef.Target
	}
	return table
}

// mergeAncestors unions the bases' ancestor sets, deduplicated in first-seen order
func mergeAncestors(bases []*model.TypeBase) []string {
	seen := map[string]bool{}
	var result []string
	for _, base := range bases {
		for _, ancestor := range base.Ancestors {
			if seen[ancestor] {
				continue
			}
			seen[ancestor] = true
			result = append(result, ancestor)
		}
	}
	return result
}

func baseNames(bases []*model.TypeBase) []string {
	result := make([]string, len(bases))
	for i, base := range bases {
		result[i] = base.Name
	}
	return result
}

func templatedBase(bases []*model.TypeBase) int {
	for i, base := range bases {
		if base.IsTemplate() {
			return i
		}
	}
	return -1
}
