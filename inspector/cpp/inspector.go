package cpp

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/viant/typeclone/model"
)

// Inspector extracts type bases from C++-like class definitions using tree-sitter
type Inspector struct {
	config *model.Config
	src    []byte // Store source for member content extraction
}

// NewInspector creates a new Inspector with the provided configuration
func NewInspector(config *model.Config) *Inspector {
	if config == nil {
		config = model.DefaultConfig()
	}
	return &Inspector{
		config: config,
	}
}

// InspectSource parses source code from a byte slice and extracts type bases
func (i *Inspector) InspectSource(src []byte) ([]*model.TypeBase, error) {
	i.src = src

	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	return i.processUnit(tree.RootNode(), src)
}

// InspectFile parses a source file and extracts type bases
func (i *Inspector) InspectFile(filename string) ([]*model.TypeBase, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.InspectSource(src)
}

// processUnit walks a translation unit collecting class definitions and their
// template specializations
func (i *Inspector) processUnit(rootNode *sitter.Node, src []byte) ([]*model.TypeBase, error) {
	var bases []*model.TypeBase
	baseMap := map[string]*model.TypeBase{}

	count := int(rootNode.NamedChildCount())
	for idx := 0; idx < count; idx++ {
		child := rootNode.NamedChild(idx)
		switch child.Type() {
		case "class_specifier", "struct_specifier":
			i.collectClass(child, src, nil, &bases, baseMap)
		case "template_declaration":
			params := i.processTemplateParams(child, src)
			inner := namedChildOfType(child, "class_specifier", "struct_specifier")
			if inner != nil {
				i.collectClass(inner, src, params, &bases, baseMap)
			}
		}
	}
	return bases, nil
}

// collectClass registers a class definition as a type base, or attaches a
// specialization to its primary template
func (i *Inspector) collectClass(node *sitter.Node, src []byte, params []*model.TypeParam, bases *[]*model.TypeBase, baseMap map[string]*model.TypeBase) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return // anonymous definition
	}

	if nameNode.Type() == "template_type" {
		i.collectSpecialization(node, nameNode, src, params, baseMap)
		return
	}

	base := i.processClass(node, src)
	base.Name = nameNode.Content(src)
	base.TypeParams = params
	*bases = append(*bases, base)
	baseMap[base.Name] = base
}

// collectSpecialization turns a specialized class definition into a pattern
// entry of its primary template
func (i *Inspector) collectSpecialization(node, nameNode *sitter.Node, src []byte, params []*model.TypeParam, baseMap map[string]*model.TypeBase) {
	primaryName := ""
	if primary := nameNode.ChildByFieldName("name"); primary != nil {
		primaryName = primary.Content(src)
	}
	base, ok := baseMap[primaryName]
	if !ok {
		return // specialization of an unseen template
	}

	specialization := &model.Specialization{}
	if arguments := nameNode.ChildByFieldName("arguments"); arguments != nil {
		count := int(arguments.NamedChildCount())
		for idx := 0; idx < count; idx++ {
			argument := arguments.NamedChild(idx).Content(src)
			if isTemplateParam(argument, params) {
				argument = model.PatternAny
			}
			specialization.Patterns = append(specialization.Patterns, argument)
		}
	}

	specialized := i.processClass(node, src)
	specialization.Declarations = specialized.Declarations
	base.Specializations = append(base.Specializations, specialization)
}

// processTemplateParams extracts the parameter names of a template declaration
func (i *Inspector) processTemplateParams(node *sitter.Node, src []byte) []*model.TypeParam {
	list := namedChildOfType(node, "template_parameter_list")
	if list == nil {
		return nil
	}
	var params []*model.TypeParam
	count := int(list.NamedChildCount())
	for idx := 0; idx < count; idx++ {
		child := list.NamedChild(idx)
		name := child.Content(src)
		if identifier := namedChildOfType(child, "type_identifier", "identifier"); identifier != nil {
			name = identifier.Content(src)
		}
		params = append(params, &model.TypeParam{Name: name})
	}
	return params
}

// namedChildOfType returns the first named child whose type matches one of the candidates
func namedChildOfType(node *sitter.Node, types ...string) *sitter.Node {
	count := int(node.NamedChildCount())
	for idx := 0; idx < count; idx++ {
		child := node.NamedChild(idx)
		for _, candidate := range types {
			if child.Type() == candidate {
				return child
			}
		}
	}
	return nil
}

func isTemplateParam(name string, params []*model.TypeParam) bool {
	for _, param := range params {
		if param.Name == name {
			return true
		}
	}
	return false
}
