package cpp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/typeclone/model"
)

// processClass extracts ancestors and member declarations of a class or struct definition
func (i *Inspector) processClass(node *sitter.Node, src []byte) *model.TypeBase {
	base := &model.TypeBase{
		Location: location(node, src),
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil && nameNode.Type() != "template_type" {
		base.Name = nameNode.Content(src)
	}

	if clause := namedChildOfType(node, "base_class_clause"); clause != nil {
		count := int(clause.NamedChildCount())
		for idx := 0; idx < count; idx++ {
			child := clause.NamedChild(idx)
			switch child.Type() {
			case "type_identifier", "qualified_identifier", "template_type":
				base.Ancestors = append(base.Ancestors, child.Content(src))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return base
	}

	// class members default to private, struct members to public
	visibility := model.VisibilityPrivate
	if node.Type() == "struct_specifier" {
		visibility = model.VisibilityPublic
	}

	count := int(body.NamedChildCount())
	for idx := 0; idx < count; idx++ {
		child := body.NamedChild(idx)
		switch child.Type() {
		case "access_specifier":
			visibility = model.Visibility(strings.TrimSuffix(strings.TrimSpace(child.Content(src)), ":"))
			continue
		case "comment":
			continue
		}
		if !i.config.IncludePrivate && visibility != model.VisibilityPublic {
			continue
		}
		if decl := i.processMember(child, src, visibility, base.Name); decl != nil {
			base.AddDeclaration(decl)
		}
	}
	return base
}

// processMember converts one member node into a declaration
func (i *Inspector) processMember(node *sitter.Node, src []byte, visibility model.Visibility, className string) *model.Declaration {
	switch node.Type() {
	case "field_declaration":
		if nested := namedChildOfType(node, "class_specifier", "struct_specifier"); nested != nil {
			return i.processNested(nested, node, src, visibility)
		}
		if declarator := functionDeclarator(node); declarator != nil {
			return i.processCallable(node, declarator, src, visibility, className)
		}
		return i.processAttribute(node, src, visibility)
	case "function_definition", "declaration":
		if declarator := functionDeclarator(node); declarator != nil {
			return i.processCallable(node, declarator, src, visibility, className)
		}
	case "class_specifier", "struct_specifier":
		return i.processNested(node, node, src, visibility)
	case "friend_declaration":
		return i.processFriend(node, src, visibility)
	case "alias_declaration":
		return i.processAlias(node, src, visibility)
	case "type_definition":
		return i.processTypedef(node, src, visibility)
	}
	return nil
}

// processNested wraps a nested class definition as a nested-type declaration
func (i *Inspector) processNested(classNode, declNode *sitter.Node, src []byte, visibility model.Visibility) *model.Declaration {
	nested := i.processClass(classNode, src)
	if nested.Name == "" {
		return nil
	}
	return &model.Declaration{
		Name:       nested.Name,
		Kind:       model.KindNestedType,
		Visibility: visibility,
		Members:    nested.Declarations,
		Location:   location(declNode, src),
	}
}

// processAttribute converts a data member into an attribute declaration
func (i *Inspector) processAttribute(node *sitter.Node, src []byte, visibility model.Visibility) *model.Declaration {
	declarator := node.ChildByFieldName("declarator")
	typeNode := node.ChildByFieldName("type")
	if declarator == nil || typeNode == nil {
		return nil
	}
	return &model.Declaration{
		Name:       identifierOf(declarator, src),
		Kind:       model.KindAttribute,
		Visibility: visibility,
		Type:       typeNode.Content(src),
		Location:   location(node, src),
	}
}

// processCallable converts a constructor, destructor or method into a declaration
func (i *Inspector) processCallable(node, declarator *sitter.Node, src []byte, visibility model.Visibility, className string) *model.Declaration {
	name := ""
	kind := model.KindMethod
	if nameNode := declarator.ChildByFieldName("declarator"); nameNode != nil {
		name = nameNode.Content(src)
		if nameNode.Type() == "destructor_name" {
			kind = model.KindDestructor
		}
	}
	if name == className && className != "" {
		kind = model.KindConstructor
	}

	decl := &model.Declaration{
		Name:       name,
		Kind:       kind,
		Visibility: visibility,
		Location:   location(node, src),
	}
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		decl.Result = typeNode.Content(src)
	}
	if parameters := declarator.ChildByFieldName("parameters"); parameters != nil {
		decl.Parameters = i.processParameters(parameters, src)
	}

	raw := node.Content(src)
	decl.IsConst = hasQualifier(declarator, src, "const")
	decl.IsPure = strings.HasSuffix(normalize(raw), "= 0;")
	decl.IsDefaulted = strings.HasSuffix(normalize(raw), "= default;")

	if i.config.IncludeBodies {
		if body := node.ChildByFieldName("body"); body != nil {
			decl.Body = model.NewNodeLocation(body.Content(src))
		}
	}
	return decl
}

// processParameters extracts parameter names and base types
func (i *Inspector) processParameters(node *sitter.Node, src []byte) []*model.Parameter {
	var result []*model.Parameter
	count := int(node.NamedChildCount())
	for idx := 0; idx < count; idx++ {
		child := node.NamedChild(idx)
		if child.Type() != "parameter_declaration" && child.Type() != "optional_parameter_declaration" {
			continue
		}
		param := &model.Parameter{}
		if typeNode := child.ChildByFieldName("type"); typeNode != nil {
			param.Type = typeNode.Content(src)
		}
		if declarator := child.ChildByFieldName("declarator"); declarator != nil {
			param.Name = identifierOf(declarator, src)
		}
		result = append(result, param)
	}
	return result
}

// processFriend converts a friend declaration; template friends keep full
// capability downstream, so the template marker matters here
func (i *Inspector) processFriend(node *sitter.Node, src []byte, visibility model.Visibility) *model.Declaration {
	decl := &model.Declaration{
		Kind:       model.KindFriend,
		Visibility: visibility,
		IsTemplate: strings.Contains(node.Content(src), "template"),
		Location:   location(node, src),
	}
	if declarator := functionDeclarator(node); declarator != nil {
		if nameNode := declarator.ChildByFieldName("declarator"); nameNode != nil {
			decl.Name = nameNode.Content(src)
		}
		if parameters := declarator.ChildByFieldName("parameters"); parameters != nil {
			decl.Parameters = i.processParameters(parameters, src)
		}
	}
	if decl.Name == "" {
		decl.Name = normalize(node.Content(src))
	}
	return decl
}

// processAlias converts a using alias into an alias declaration
func (i *Inspector) processAlias(node *sitter.Node, src []byte, visibility model.Visibility) *model.Declaration {
	decl := &model.Declaration{
		Kind:       model.KindAlias,
		Visibility: visibility,
		Location:   location(node, src),
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		decl.Name = nameNode.Content(src)
	}
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		decl.Type = typeNode.Content(src)
	}
	return decl
}

// processTypedef converts a typedef into an alias declaration
func (i *Inspector) processTypedef(node *sitter.Node, src []byte, visibility model.Visibility) *model.Declaration {
	decl := &model.Declaration{
		Kind:       model.KindAlias,
		Visibility: visibility,
		Location:   location(node, src),
	}
	if declarator := node.ChildByFieldName("declarator"); declarator != nil {
		decl.Name = identifierOf(declarator, src)
	}
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		decl.Type = typeNode.Content(src)
	}
	return decl
}

// functionDeclarator unwraps pointer and reference declarators down to a
// function declarator, nil when the node declares no callable
func functionDeclarator(node *sitter.Node) *sitter.Node {
	declarator := node.ChildByFieldName("declarator")
	for declarator != nil {
		switch declarator.Type() {
		case "function_declarator":
			return declarator
		case "pointer_declarator", "reference_declarator":
			declarator = declarator.ChildByFieldName("declarator")
		default:
			return nil
		}
	}
	return nil
}

// identifierOf digs the identifier out of a possibly wrapped declarator
func identifierOf(node *sitter.Node, src []byte) string {
	current := node
	for current != nil {
		switch current.Type() {
		case "identifier", "field_identifier", "type_identifier", "destructor_name", "operator_name":
			return current.Content(src)
		}
		next := current.ChildByFieldName("declarator")
		if next == nil {
			if current.NamedChildCount() > 0 {
				next = current.NamedChild(0)
			} else {
				break
			}
		}
		current = next
	}
	return strings.TrimSpace(node.Content(src))
}

// hasQualifier reports whether the declarator carries the given trailing qualifier
func hasQualifier(node *sitter.Node, src []byte, qualifier string) bool {
	count := int(node.NamedChildCount())
	for idx := 0; idx < count; idx++ {
		child := node.NamedChild(idx)
		if child.Type() == "type_qualifier" && child.Content(src) == qualifier {
			return true
		}
	}
	return false
}

func location(node *sitter.Node, src []byte) *model.Location {
	return &model.Location{
		Raw:   node.Content(src),
		Start: int(node.StartByte()),
		End:   int(node.EndByte()),
	}
}

func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
