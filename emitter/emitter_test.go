package emitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/typeclone/merger"
	"github.com/viant/typeclone/model"
)

func positionSet(t *testing.T) *model.MergedSet {
	base := &model.TypeBase{Name: "pair"}
	base.AddDeclaration(&model.Declaration{
		Name:       "pair",
		Kind:       model.KindConstructor,
		Visibility: model.VisibilityPublic,
		Parameters: []*model.Parameter{
			{Name: "x", Type: "int"},
			{Name: "y", Type: "int"},
		},
	})
	base.AddDeclaration(&model.Declaration{
		Name:       "add",
		Kind:       model.KindMethod,
		Visibility: model.VisibilityPublic,
		Parameters: []*model.Parameter{{Name: "other", Type: "pair"}},
		Result:     "pair",
		IsConst:    true,
	})
	base.AddDeclaration(&model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})
	base.AddDeclaration(&model.Declaration{Name: "y", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPrivate})

	spec := &model.CloneSpec{Name: "position", Bases: []string{"pair"}}
	merged, err := merger.New(nil).Merge(spec, []*model.TypeBase{base})
	if !assert.Nil(t, err) {
		t.FailNow()
	}
	return merged
}

func TestTextEmitter(t *testing.T) {
	merged := positionSet(t)
	data, err := (&TextEmitter{}).Emit(merged)
	if !assert.Nil(t, err) {
		return
	}
	output := string(data)
	assert.Contains(t, output, "position clones pair {")
	assert.Contains(t, output, "public:")
	assert.Contains(t, output, "private:")
	assert.Contains(t, output, "int x; // from pair")
	assert.Contains(t, output, "position add(position) const;")
}

func TestGoEmitter(t *testing.T) {
	merged := positionSet(t)
	data, err := NewGoEmitter("shapes").Emit(merged)
	if !assert.Nil(t, err) {
		return
	}
	output := string(data)
	assert.Contains(t, output, "package shapes")
	assert.Contains(t, output, "type Position struct {")
	assert.Contains(t, output, "X int")
	assert.Contains(t, output, "func NewPosition(x int, y int) *Position {")
	assert.Contains(t, output, "func (p *Position) Add(other Position) Position {")

	// generated source is gofmt-clean, so indentation is tabs
	assert.True(t, strings.Contains(output, "\tX int\n"))
}
