package emitter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/viant/typeclone/model"
	"golang.org/x/tools/imports"
)

// GoEmitter generates Go source for a merged set: attributes become struct
// fields, constructors become NewX functions, methods become method stubs.
// Declarations that have no Go rendition (destructors, friends, operator
// names) are skipped.
type GoEmitter struct {
	Package string
}

// NewGoEmitter creates a Go source emitter targeting the given package
func NewGoEmitter(pkg string) *GoEmitter {
	if pkg == "" {
		pkg = "generated"
	}
	return &GoEmitter{Package: pkg}
}

func (g *GoEmitter) Emit(set *model.MergedSet) ([]byte, error) {
	builder := &strings.Builder{}
	builder.WriteString(fmt.Sprintf("package %s\n\n", g.Package))

	typeName := exported(set.Name)

	for _, decl := range set.Declarations {
		if decl.Kind == model.KindAlias && isIdentifier(decl.Name) && isIdentifier(decl.Type) {
			builder.WriteString(fmt.Sprintf("type %s = %s\n\n", exported(decl.Name), goType(decl.Type)))
		}
	}

	builder.WriteString(fmt.Sprintf("type %s struct {\n", typeName))
	for _, decl := range set.Declarations {
		if decl.Kind != model.KindAttribute || !isIdentifier(decl.Name) {
			continue
		}
		builder.WriteString(fmt.Sprintf("\t%s %s\n", exported(decl.Name), goType(decl.Type)))
	}
	builder.WriteString("}\n\n")

	for _, decl := range set.Declarations {
		switch decl.Kind {
		case model.KindConstructor:
			builder.WriteString(fmt.Sprintf("func New%s(%s) *%s {\n\treturn &%s{}\n}\n\n",
				typeName, parameterList(decl.Parameters), typeName, typeName))
		case model.KindMethod:
			if !isIdentifier(decl.Name) {
				continue
			}
			result := goType(decl.Result)
			signature := fmt.Sprintf("func (%s *%s) %s(%s)",
				receiverName(typeName), typeName, exported(decl.Name), parameterList(decl.Parameters))
			if result != "" {
				signature += " " + result
			}
			builder.WriteString(signature + " {\n\tpanic(\"not implemented\")\n}\n\n")
		}
	}

	source := []byte(builder.String())
	formatted, err := imports.Process("", source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to format generated source: %w", err)
	}
	return formatted, nil
}

func parameterList(parameters []*model.Parameter) string {
	var parts []string
	for i, parameter := range parameters {
		name := parameter.Name
		if !isIdentifier(name) {
			name = fmt.Sprintf("p%d", i)
		}
		parts = append(parts, name+" "+goType(parameter.Type))
	}
	return strings.Join(parts, ", ")
}

// goType maps common source types onto Go types, leaving everything else as-is
func goType(name string) string {
	switch name {
	case "", "void":
		return ""
	case "double":
		return "float64"
	case "float":
		return "float32"
	case "std::string":
		return "string"
	case "unsigned", "unsigned int":
		return "uint"
	case "long":
		return "int64"
	}
	if isIdentifier(name) && unicode.IsUpper(rune(name[0])) {
		return name
	}
	if isIdentifier(name) && !isBuiltin(name) {
		return exported(name)
	}
	return name
}

func isBuiltin(name string) bool {
	switch name {
	case "int", "bool", "string", "byte", "rune",
		"int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return true
	}
	return false
}

func exported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func receiverName(typeName string) string {
	if typeName == "" {
		return "t"
	}
	return strings.ToLower(typeName[:1])
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
