package model

import (
	"strings"
)

// MergedSpecialization is the merged declaration set produced for one selected
// specialization of a templated base
type MergedSpecialization struct {
	Patterns     []string
	Declarations []*Declaration
}

// MergedSet is the output of merging one clone declaration: all base
// declarations in list order, then additional declarations, self-references
// rewritten to the clone name
type MergedSet struct {
	Name         string                  // Clone name
	Bases        []string                // Type bases the set was merged from
	Declarations []*Declaration          // Merged declarations in final order
	Ancestors    []string                // Deduplicated union of the bases' ancestors
	Specialized  []*MergedSpecialization // Merged specialization family (templated bases)

	sigMap map[Signature]int // Map of callable signatures for quick lookup
}

// AddDeclaration appends a declaration to the merged set
func (m *MergedSet) AddDeclaration(decl *Declaration) {
	if m.sigMap == nil {
		m.sigMap = make(map[Signature]int)
	}
	m.Declarations = append(m.Declarations, decl)
	if decl.IsCallable() {
		m.sigMap[decl.Signature()] = len(m.Declarations) - 1
	}
}

// LookupSignature retrieves a merged callable declaration by signature
func (m *MergedSet) LookupSignature(signature Signature) *Declaration {
	if m.sigMap == nil {
		m.indexSignatures()
	}
	if idx, ok := m.sigMap[signature]; ok && idx < len(m.Declarations) {
		return m.Declarations[idx]
	}
	return nil
}

func (m *MergedSet) indexSignatures() {
	m.sigMap = make(map[Signature]int)
	for i, decl := range m.Declarations {
		if decl.IsCallable() {
			m.sigMap[decl.Signature()] = i
		}
	}
}

// ReplaceDeclaration swaps the declaration at the given position, keeping the
// signature index consistent
func (m *MergedSet) ReplaceDeclaration(idx int, decl *Declaration) {
	if idx < 0 || idx >= len(m.Declarations) {
		return
	}
	previous := m.Declarations[idx]
	if previous.IsCallable() {
		delete(m.sigMap, previous.Signature())
	}
	m.Declarations[idx] = decl
	if decl.IsCallable() {
		if m.sigMap == nil {
			m.sigMap = make(map[Signature]int)
		}
		m.sigMap[decl.Signature()] = idx
	}
}

// Signatures returns the callable signatures of the merged set in declaration order
func (m *MergedSet) Signatures() []Signature {
	var result []Signature
	for _, decl := range m.Declarations {
		if decl.IsCallable() {
			result = append(result, decl.Signature())
		}
	}
	return result
}

// Content renders a canonical textual form of the merged set, used for hashing
// and diagnostics
func (m *MergedSet) Content() string {
	builder := &strings.Builder{}
	builder.WriteString(m.Name)
	if len(m.Ancestors) > 0 {
		builder.WriteString(" : ")
		builder.WriteString(strings.Join(m.Ancestors, ", "))
	}
	builder.WriteString(" {\n")
	writeDeclarations(builder, m.Declarations, 1)
	builder.WriteString("}\n")
	return builder.String()
}

// HashContent generates the content hash of the merged set
func (m *MergedSet) HashContent() uint64 {
	hash, _ := Hash([]byte(m.Content()))
	return hash
}

func writeDeclarations(builder *strings.Builder, decls []*Declaration, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, decl := range decls {
		builder.WriteString(indent)
		builder.WriteString(string(decl.Visibility))
		builder.WriteString(" ")
		builder.WriteString(string(decl.Kind))
		builder.WriteString(" ")
		switch decl.Kind {
		case KindAttribute, KindAlias:
			builder.WriteString(decl.Name)
			builder.WriteString(": ")
			builder.WriteString(decl.Type)
		case KindNestedType:
			builder.WriteString(decl.Name)
			builder.WriteString(" {\n")
			writeDeclarations(builder, decl.Members, depth+1)
			builder.WriteString(indent)
			builder.WriteString("}")
		default:
			builder.WriteString(string(decl.Signature()))
			if decl.Result != "" {
				builder.WriteString(" -> ")
				builder.WriteString(decl.Result)
			}
			if decl.IsPure {
				builder.WriteString(" [pure]")
			}
		}
		builder.WriteString("\n")
	}
}
