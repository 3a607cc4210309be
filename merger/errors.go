package merger

import (
	"fmt"
	"strings"

	"github.com/viant/typeclone/model"
)

// ConflictingInitializationError indicates more than one type base supplies
// non-defaulted constructors or destructors
type ConflictingInitializationError struct {
	Clone string
	Bases []string
}

func (e *ConflictingInitializationError) Error() string {
	return fmt.Sprintf("conflicting initialization in clone %v: bases %v each define constructors or destructors",
		e.Clone, strings.Join(e.Bases, ", "))
}

// SignatureCollisionError indicates two merged declarations share an identical
// signature with no resolution policy
type SignatureCollisionError struct {
	Clone     string
	Signature model.Signature
	First     string // Origin of the earlier declaration, empty for additional
	Second    string // Origin of the later declaration, empty for additional
}

func (e *SignatureCollisionError) Error() string {
	return fmt.Sprintf("signature collision in clone %v: %v declared by %v and %v",
		e.Clone, e.Signature, origin(e.First), origin(e.Second))
}

// AttributeMismatchError indicates attributes partially, but not fully, align
// across the cloned bases
type AttributeMismatchError struct {
	Clone     string
	Attribute string
	Bases     []string
}

func (e *AttributeMismatchError) Error() string {
	return fmt.Sprintf("attribute mismatch in clone %v: %v does not align across bases %v",
		e.Clone, e.Attribute, strings.Join(e.Bases, ", "))
}

// InvalidCrossReferenceError indicates a cross-reference directive whose target
// is not an established clone of the stated original
type InvalidCrossReferenceError struct {
	Clone    string
	Original string
	Target   string
	Reason   string
}

func (e *InvalidCrossReferenceError) Error() string {
	return fmt.Sprintf("invalid cross reference in clone %v: %v -> %v: %v",
		e.Clone, e.Original, e.Target, e.Reason)
}

// PrimitiveBaseError indicates an attempt to clone a primitive type
type PrimitiveBaseError struct {
	Clone string
	Base  string
}

func (e *PrimitiveBaseError) Error() string {
	return fmt.Sprintf("clone %v: base %v is a primitive type", e.Clone, e.Base)
}

func origin(name string) string {
	if name == "" {
		return "additional declarations"
	}
	return "base " + name
}
