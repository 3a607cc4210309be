package model

// TypeParam represents a generic type parameter
type TypeParam struct {
	Name       string
	Constraint string
}

// Specialization maps a parameter pattern to the declaration set a templated
// type base provides for that pattern. A pattern element is either a concrete
// type name or PatternAny.
type Specialization struct {
	Patterns     []string       // One element per type parameter
	Declarations []*Declaration // Members provided for this pattern
}

// PatternAny matches any parameterization element
const PatternAny = "*"

// Matches reports whether the specialization applies to the supplied arguments
func (s *Specialization) Matches(args []string) bool {
	if len(s.Patterns) != len(args) {
		return false
	}
	for i, pattern := range s.Patterns {
		if pattern == PatternAny {
			continue
		}
		if pattern != args[i] {
			return false
		}
	}
	return true
}

// Specificity counts the concrete elements of the pattern; a higher value wins
// when several specializations match the same arguments
func (s *Specialization) Specificity() int {
	result := 0
	for _, pattern := range s.Patterns {
		if pattern != PatternAny {
			result++
		}
	}
	return result
}

// TypeBase represents an existing type definition that clones can be made from
type TypeBase struct {
	Name            string            // Type name
	TypeParams      []*TypeParam      // Generic type parameters
	Declarations    []*Declaration    // Ordered member declarations
	Ancestors       []string          // Inherited-from ancestor types
	Specializations []*Specialization // Template specializations (templated bases only)
	IsPrimitive     bool              // Non-aggregate type, cloneable only per policy
	Location        *Location         // Location of the definition in the source

	sigMap map[Signature]int // Map of callable signatures for quick lookup
}

// AddDeclaration adds a member declaration to the type base
func (b *TypeBase) AddDeclaration(decl *Declaration) {
	if b.sigMap == nil {
		b.sigMap = make(map[Signature]int)
	}
	b.Declarations = append(b.Declarations, decl)
	if decl.IsCallable() {
		b.sigMap[decl.Signature()] = len(b.Declarations) - 1
	}
}

// LookupSignature retrieves a callable declaration by signature
func (b *TypeBase) LookupSignature(signature Signature) *Declaration {
	if b.sigMap == nil {
		b.indexSignatures()
	}
	if idx, ok := b.sigMap[signature]; ok && idx < len(b.Declarations) {
		return b.Declarations[idx]
	}
	return nil
}

func (b *TypeBase) indexSignatures() {
	b.sigMap = make(map[Signature]int)
	for i, decl := range b.Declarations {
		if decl.IsCallable() {
			b.sigMap[decl.Signature()] = i
		}
	}
}

// IsTemplate reports whether the base is a templated type
func (b *TypeBase) IsTemplate() bool {
	return len(b.TypeParams) > 0
}

// HasUserInitialization reports whether the base supplies any non-defaulted
// constructor or destructor
func (b *TypeBase) HasUserInitialization() bool {
	for _, decl := range b.Declarations {
		if decl.IsInitialization() && !decl.IsDefaulted {
			return true
		}
	}
	return false
}

// Attributes returns the base's attribute declarations in declared order
func (b *TypeBase) Attributes() []*Declaration {
	var result []*Declaration
	for _, decl := range b.Declarations {
		if decl.Kind == KindAttribute {
			result = append(result, decl)
		}
	}
	return result
}

// Clone creates a deep copy of the type base
func (b *TypeBase) Clone() *TypeBase {
	newBase := &TypeBase{
		Name:        b.Name,
		IsPrimitive: b.IsPrimitive,
		Ancestors:   make([]string, len(b.Ancestors)),
	}
	copy(newBase.Ancestors, b.Ancestors)

	if len(b.TypeParams) > 0 {
		newBase.TypeParams = make([]*TypeParam, len(b.TypeParams))
		for i, param := range b.TypeParams {
			newBase.TypeParams[i] = &TypeParam{Name: param.Name, Constraint: param.Constraint}
		}
	}

	for _, decl := range b.Declarations {
		newBase.AddDeclaration(decl.Clone())
	}

	if len(b.Specializations) > 0 {
		newBase.Specializations = make([]*Specialization, len(b.Specializations))
		for i, spec := range b.Specializations {
			newSpec := &Specialization{Patterns: make([]string, len(spec.Patterns))}
			copy(newSpec.Patterns, spec.Patterns)
			for _, decl := range spec.Declarations {
				newSpec.Declarations = append(newSpec.Declarations, decl.Clone())
			}
			newBase.Specializations[i] = newSpec
		}
	}

	if b.Location != nil {
		newBase.Location = &Location{
			Raw:   b.Location.Raw,
			Start: b.Location.Start,
			End:   b.Location.End,
		}
	}

	return newBase
}
