package model

import (
	"strings"
)

// DeclKind indicates the kind of member a declaration introduces
type DeclKind string

const (
	// Declaration kinds
	KindMethod      DeclKind = "Method"
	KindConstructor DeclKind = "Constructor"
	KindDestructor  DeclKind = "Destructor"
	KindNestedType  DeclKind = "NestedType"
	KindAlias       DeclKind = "Alias"
	KindFriend      DeclKind = "Friend"
	KindAttribute   DeclKind = "Attribute"
)

// Visibility is a member access tag
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// Signature identifies a callable declaration: name, parameter types and constness
type Signature string

// Declaration represents a named member of a type definition
type Declaration struct {
	Name       string        // Member name
	Kind       DeclKind      // Member kind
	Visibility Visibility    // Access tag
	Type       string        // Attribute or alias target type
	Parameters []*Parameter  // Callable parameters
	Result     string        // Callable result type
	Comment    *LocationNode // Member documentation
	Body       *LocationNode // Callable body, nil for pure declarations

	IsConst     bool // Whether a callable is const-qualified
	IsPure      bool // Pure declaration marker (no body)
	IsDefaulted bool // Compiler-provided constructor/destructor
	IsTemplate  bool // Template member or template friend

	Members  []*Declaration // Nested type members (KindNestedType only)
	Origin   string         // Name of the type base the declaration was copied from, empty for additional declarations
	Location *Location      // Location of the declaration in the source
}

// Parameter represents a callable parameter
type Parameter struct {
	Name string
	Type string
}

// IsCallable reports whether the declaration participates in signature matching
func (d *Declaration) IsCallable() bool {
	switch d.Kind {
	case KindMethod, KindConstructor, KindDestructor, KindFriend:
		return true
	}
	return false
}

// IsInitialization reports whether the declaration is a constructor or destructor
func (d *Declaration) IsInitialization() bool {
	return d.Kind == KindConstructor || d.Kind == KindDestructor
}

// Signature builds the callable signature key: name(paramType,...)[const]
func (d *Declaration) Signature() Signature {
	builder := &strings.Builder{}
	builder.WriteString(d.Name)
	builder.WriteString("(")
	for i, param := range d.Parameters {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString(param.Type)
	}
	builder.WriteString(")")
	if d.IsConst {
		builder.WriteString(" const")
	}
	return Signature(builder.String())
}

// Clone creates a deep copy of the declaration
func (d *Declaration) Clone() *Declaration {
	newDecl := &Declaration{
		Name:        d.Name,
		Kind:        d.Kind,
		Visibility:  d.Visibility,
		Type:        d.Type,
		Result:      d.Result,
		IsConst:     d.IsConst,
		IsPure:      d.IsPure,
		IsDefaulted: d.IsDefaulted,
		IsTemplate:  d.IsTemplate,
		Origin:      d.Origin,
	}

	if len(d.Parameters) > 0 {
		newDecl.Parameters = make([]*Parameter, len(d.Parameters))
		for i, param := range d.Parameters {
			newDecl.Parameters[i] = &Parameter{Name: param.Name, Type: param.Type}
		}
	}

	if d.Comment != nil {
		newDecl.Comment = &LocationNode{
			Text:     d.Comment.Text,
			Location: d.Comment.Location,
		}
	}

	if d.Body != nil {
		newDecl.Body = &LocationNode{
			Text:     d.Body.Text,
			Location: d.Body.Location,
		}
	}

	if d.Location != nil {
		newDecl.Location = &Location{
			Raw:   d.Location.Raw,
			Start: d.Location.Start,
			End:   d.Location.End,
		}
	}

	if len(d.Members) > 0 {
		newDecl.Members = make([]*Declaration, len(d.Members))
		for i, member := range d.Members {
			newDecl.Members[i] = member.Clone()
		}
	}

	return newDecl
}

// Content returns the raw content of the declaration including its body
func (d *Declaration) Content() string {
	if d.Location != nil && d.Location.Raw != "" {
		return d.Location.Raw
	}
	if d.Body != nil {
		return d.Body.Text
	}
	return ""
}
