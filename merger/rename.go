package merger

import (
	"regexp"
	"strings"

	"github.com/viant/typeclone/model"
)

// renamer rewrites whole-identifier occurrences of type names inside copied
// declarations. All renames are applied in a single pass so that a rewritten
// name can not be rewritten again by a later rule.
type renamer struct {
	table   map[string]string
	matcher *regexp.Regexp
}

func newRenamer(table map[string]string) *renamer {
	if len(table) == 0 {
		return &renamer{table: table}
	}
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, regexp.QuoteMeta(name))
	}
	matcher := regexp.MustCompile(`\b(` + strings.Join(names, "|") + `)\b`)
	return &renamer{table: table, matcher: matcher}
}

func (r *renamer) rewrite(text string) string {
	if r.matcher == nil || text == "" {
		return text
	}
	return r.matcher.ReplaceAllStringFunc(text, func(match string) string {
		if replacement, ok := r.table[match]; ok {
			return replacement
		}
		return match
	})
}

// rewriteDeclaration applies the rename table to a declaration's name,
// signature, body and nested members in place
func (r *renamer) rewriteDeclaration(decl *model.Declaration) {
	if r.matcher == nil {
		return
	}
	decl.Name = r.rewrite(decl.Name)
	decl.Type = r.rewrite(decl.Type)
	decl.Result = r.rewrite(decl.Result)
	for _, param := range decl.Parameters {
		param.Type = r.rewrite(param.Type)
	}
	if decl.Body != nil {
		decl.Body.Text = r.rewrite(decl.Body.Text)
	}
	for _, member := range decl.Members {
		r.rewriteDeclaration(member)
	}
}
