package emitter

import (
	"fmt"
	"strings"

	"github.com/viant/typeclone/model"
)

// TextEmitter renders a merged set as a declaration listing grouped by
// visibility, in merged order within each group
type TextEmitter struct{}

func (t *TextEmitter) Emit(set *model.MergedSet) ([]byte, error) {
	builder := &strings.Builder{}
	builder.WriteString(set.Name)
	if len(set.Bases) > 0 {
		builder.WriteString(" clones ")
		builder.WriteString(strings.Join(set.Bases, ", "))
	}
	if len(set.Ancestors) > 0 {
		builder.WriteString(" : ")
		builder.WriteString(strings.Join(set.Ancestors, ", "))
	}
	builder.WriteString(" {\n")

	for _, visibility := range []model.Visibility{model.VisibilityPublic, model.VisibilityProtected, model.VisibilityPrivate} {
		var group []*model.Declaration
		for _, decl := range set.Declarations {
			if decl.Visibility == visibility {
				group = append(group, decl)
			}
		}
		if len(group) == 0 {
			continue
		}
		builder.WriteString(string(visibility))
		builder.WriteString(":\n")
		for _, decl := range group {
			writeDeclaration(builder, decl, 1)
		}
	}
	builder.WriteString("}\n")

	for _, specialized := range set.Specialized {
		builder.WriteString(fmt.Sprintf("\n%v<%v> {\n", set.Name, strings.Join(specialized.Patterns, ", ")))
		for _, decl := range specialized.Declarations {
			writeDeclaration(builder, decl, 1)
		}
		builder.WriteString("}\n")
	}
	return []byte(builder.String()), nil
}

func writeDeclaration(builder *strings.Builder, decl *model.Declaration, depth int) {
	indent := strings.Repeat("\t", depth)
	builder.WriteString(indent)
	switch decl.Kind {
	case model.KindAttribute:
		builder.WriteString(fmt.Sprintf("%v %v;", decl.Type, decl.Name))
	case model.KindAlias:
		builder.WriteString(fmt.Sprintf("using %v = %v;", decl.Name, decl.Type))
	case model.KindNestedType:
		builder.WriteString(decl.Name)
		builder.WriteString(" {\n")
		for _, member := range decl.Members {
			writeDeclaration(builder, member, depth+1)
		}
		builder.WriteString(indent)
		builder.WriteString("};")
	case model.KindFriend:
		builder.WriteString("friend ")
		builder.WriteString(string(decl.Signature()))
		if decl.IsPure {
			builder.WriteString(" [declaration only]")
		}
		builder.WriteString(";")
	default:
		if decl.Result != "" {
			builder.WriteString(decl.Result)
			builder.WriteString(" ")
		}
		builder.WriteString(string(decl.Signature()))
		if decl.IsPure {
			builder.WriteString(" = 0")
		}
		builder.WriteString(";")
	}
	if decl.Origin != "" {
		builder.WriteString(" // from ")
		builder.WriteString(decl.Origin)
	}
	builder.WriteString("\n")
}
