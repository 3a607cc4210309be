package manifest

import (
	"fmt"

	"github.com/viant/typeclone/model"
	"github.com/viant/typeclone/registry"
)

// Manifest describes one translation unit declaratively: the type bases, the
// clone declarations made from them, derivation edges and free callables
type Manifest struct {
	Schema      string        `yaml:"schema"`
	Project     string        `yaml:"project,omitempty"`
	Bases       []*Base       `yaml:"bases,omitempty"`
	Clones      []*Clone      `yaml:"clones,omitempty"`
	Derivations []*Derivation `yaml:"derivations,omitempty"`
	Callables   []*Callable   `yaml:"callables,omitempty"`
}

// Base describes an existing type definition
type Base struct {
	Name            string            `yaml:"name"`
	TypeParams      []string          `yaml:"typeParams,omitempty"`
	Ancestors       []string          `yaml:"ancestors,omitempty"`
	Primitive       bool              `yaml:"primitive,omitempty"`
	Declarations    []*Declaration    `yaml:"declarations,omitempty"`
	Specializations []*Specialization `yaml:"specializations,omitempty"`
}

// Declaration describes one member
type Declaration struct {
	Name       string         `yaml:"name"`
	Kind       string         `yaml:"kind"`
	Visibility string         `yaml:"visibility,omitempty"` // defaults to public
	Type       string         `yaml:"type,omitempty"`
	Parameters []*Parameter   `yaml:"parameters,omitempty"`
	Result     string         `yaml:"result,omitempty"`
	Const      bool           `yaml:"const,omitempty"`
	Pure       bool           `yaml:"pure,omitempty"`
	Defaulted  bool           `yaml:"defaulted,omitempty"`
	Template   bool           `yaml:"template,omitempty"`
	Body       string         `yaml:"body,omitempty"`
	Members    []*Declaration `yaml:"members,omitempty"`
}

// Parameter describes a callable parameter
type Parameter struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type"`
}

// Specialization describes a templated base's pattern entry
type Specialization struct {
	Patterns     []string       `yaml:"patterns"`
	Declarations []*Declaration `yaml:"declarations,omitempty"`
}

// Clone describes a clone declaration
type Clone struct {
	Name       string         `yaml:"name"`
	Bases      []string       `yaml:"bases"`
	Args       []string       `yaml:"args,omitempty"`
	Additional []*Declaration `yaml:"additional,omitempty"`
	CrossRefs  []*CrossRef    `yaml:"crossRefs,omitempty"`
}

// CrossRef describes a cross-reference directive
type CrossRef struct {
	Original string `yaml:"original"`
	Target   string `yaml:"target"`
}

// Derivation records that a type is conventionally derived from a parent
type Derivation struct {
	Type   string `yaml:"type"`
	Parent string `yaml:"parent"`
}

// Callable describes a free callable declared against specific types
type Callable struct {
	Name       string   `yaml:"name"`
	Parameters []string `yaml:"parameters,omitempty"`
	Result     string   `yaml:"result,omitempty"`
}

// Apply registers everything the manifest declares with the registry
func (m *Manifest) Apply(dest *registry.Registry) error {
	for _, base := range m.Bases {
		converted, err := base.asTypeBase()
		if err != nil {
			return err
		}
		if err := dest.RegisterBase(converted); err != nil {
			return err
		}
	}
	for _, clone := range m.Clones {
		converted, err := clone.asCloneSpec()
		if err != nil {
			return err
		}
		if err := dest.Declare(converted); err != nil {
			return err
		}
	}
	for _, derivation := range m.Derivations {
		dest.RegisterDerivation(derivation.Type, derivation.Parent)
	}
	for _, callable := range m.Callables {
		dest.RegisterCallable(&registry.Callable{
			Name:       callable.Name,
			Parameters: callable.Parameters,
			Result:     callable.Result,
		})
	}
	return nil
}

func (b *Base) asTypeBase() (*model.TypeBase, error) {
	base := &model.TypeBase{
		Name:        b.Name,
		IsPrimitive: b.Primitive,
		Ancestors:   b.Ancestors,
	}
	for _, param := range b.TypeParams {
		base.TypeParams = append(base.TypeParams, &model.TypeParam{Name: param})
	}
	for _, declaration := range b.Declarations {
		converted, err := declaration.asDeclaration(b.Name)
		if err != nil {
			return nil, err
		}
		base.AddDeclaration(converted)
	}
	for _, specialization := range b.Specializations {
		converted := &model.Specialization{Patterns: specialization.Patterns}
		for _, declaration := range specialization.Declarations {
			decl, err := declaration.asDeclaration(b.Name)
			if err != nil {
				return nil, err
			}
			converted.Declarations = append(converted.Declarations, decl)
		}
		base.Specializations = append(base.Specializations, converted)
	}
	return base, nil
}

func (c *Clone) asCloneSpec() (*model.CloneSpec, error) {
	spec := &model.CloneSpec{
		Name:  c.Name,
		Bases: c.Bases,
		Args:  c.Args,
	}
	for _, declaration := range c.Additional {
		converted, err := declaration.asDeclaration(c.Name)
		if err != nil {
			return nil, err
		}
		spec.Additional = append(spec.Additional, converted)
	}
	for _, crossRef := range c.CrossRefs {
		spec.CrossRefs = append(spec.CrossRefs, &model.CrossRef{
			Original: crossRef.Original,
			Target:   crossRef.Target,
		})
	}
	return spec, nil
}

func (d *Declaration) asDeclaration(owner string) (*model.Declaration, error) {
	kind, err := declKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("%v.%v: %w", owner, d.Name, err)
	}
	visibility := model.Visibility(d.Visibility)
	if d.Visibility == "" {
		visibility = model.VisibilityPublic
	}

	decl := &model.Declaration{
		Name:        d.Name,
		Kind:        kind,
		Visibility:  visibility,
		Type:        d.Type,
		Result:      d.Result,
		IsConst:     d.Const,
		IsPure:      d.Pure,
		IsDefaulted: d.Defaulted,
		IsTemplate:  d.Template,
	}
	if d.Body != "" {
		decl.Body = model.NewNodeLocation(d.Body)
	}
	for _, parameter := range d.Parameters {
		decl.Parameters = append(decl.Parameters, &model.Parameter{Name: parameter.Name, Type: parameter.Type})
	}
	for _, member := range d.Members {
		converted, err := member.asDeclaration(owner + "." + d.Name)
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, converted)
	}
	return decl, nil
}

func declKind(kind string) (model.DeclKind, error) {
	switch model.DeclKind(kind) {
	case model.KindMethod, model.KindConstructor, model.KindDestructor,
		model.KindNestedType, model.KindAlias, model.KindFriend, model.KindAttribute:
		return model.DeclKind(kind), nil
	}
	return "", fmt.Errorf("unknown declaration kind: %v", kind)
}
