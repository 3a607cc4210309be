package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/typeclone/model"
)

func pairBase() *model.TypeBase {
	base := &model.TypeBase{Name: "pair", Ancestors: []string{"object"}}
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
		Body:       model.NewNodeLocation("{ return pair(x + other.x, y + other.y); }"),
	})
	base.AddDeclaration(&model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})
	base.AddDeclaration(&model.Declaration{Name: "y", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})
	return base
}

func TestTrivialCloneIsIdempotent(t *testing.T) {
	base := pairBase()
	spec := &model.CloneSpec{Name: "position", Bases: []string{"pair"}}

	merged, err := New(nil).Merge(spec, []*model.TypeBase{base})
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, len(base.Declarations), len(merged.Declarations))
	assert.Equal(t, []string{"object"}, merged.Ancestors)

	// every self-reference is rewritten to the clone name
	constructor := merged.LookupSignature("position(int,int)")
	if assert.NotNil(t, constructor) {
		assert.Equal(t, model.KindConstructor, constructor.Kind)
		assert.Equal(t, "pair", constructor.Origin)
	}
	add := merged.LookupSignature("add(position) const")
	if assert.NotNil(t, add) {
		assert.Equal(t, "position", add.Result)
		assert.Equal(t, "{ return position(x + other.x, y + other.y); }", add.Body.Text)
	}

	// the base itself is untouched
	assert.NotNil(t, base.LookupSignature("pair(int,int)"))
	assert.Equal(t, "pair", base.Declarations[1].Result)
}

func TestDisjointBasesMergeToUnion(t *testing.T) {
	first := &model.TypeBase{Name: "reader"}
	first.AddDeclaration(&model.Declaration{Name: "read", Kind: model.KindMethod, Visibility: model.VisibilityPublic})
	second := &model.TypeBase{Name: "writer"}
	second.AddDeclaration(&model.Declaration{Name: "write", Kind: model.KindMethod, Visibility: model.VisibilityPublic})

	spec := &model.CloneSpec{
		Name:  "stream",
		Bases: []string{"reader", "writer"},
		Additional: []*model.Declaration{
			{Name: "close", Kind: model.KindMethod, Visibility: model.VisibilityPublic},
		},
	}

	merged, err := New(nil).Merge(spec, []*model.TypeBase{first, second})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, []model.Signature{"read()", "write()", "close()"}, merged.Signatures())
}

func TestConflictingInitialization(t *testing.T) {
	first := &model.TypeBase{Name: "a"}
	first.AddDeclaration(&model.Declaration{Name: "a", Kind: model.KindConstructor, Parameters: []*model.Parameter{{Type: "int"}}})
	second := &model.TypeBase{Name: "b"}
	second.AddDeclaration(&model.Declaration{Name: "b", Kind: model.KindConstructor, Parameters: []*model.Parameter{{Type: "string"}}})

	spec := &model.CloneSpec{Name: "c", Bases: []string{"a", "b"}}
	_, err := New(nil).Merge(spec, []*model.TypeBase{first, second})

	conflict := &ConflictingInitializationError{}
	if assert.ErrorAs(t, err, &conflict) {
		assert.Equal(t, []string{"a", "b"}, conflict.Bases)
	}
}

func TestSignatureCollision(t *testing.T) {
	first := &model.TypeBase{Name: "a"}
	first.AddDeclaration(&model.Declaration{Name: "value", Kind: model.KindMethod, Result: "int"})
	second := &model.TypeBase{Name: "b"}
	second.AddDeclaration(&model.Declaration{Name: "value", Kind: model.KindMethod, Result: "int"})

	spec := &model.CloneSpec{Name: "c", Bases: []string{"a", "b"}}
	_, err := New(nil).Merge(spec, []*model.TypeBase{first, second})

	collision := &SignatureCollisionError{}
	if assert.ErrorAs(t, err, &collision) {
		assert.Equal(t, model.Signature("value()"), collision.Signature)
		assert.Equal(t, "a", collision.First)
		assert.Equal(t, "b", collision.Second)
	}
}

func TestSubstitutionPolicy(t *testing.T) {
	base := &model.TypeBase{Name: "a"}
	base.AddDeclaration(&model.Declaration{Name: "value", Kind: model.KindMethod, Result: "int"})

	spec := &model.CloneSpec{
		Name:  "b",
		Bases: []string{"a"},
		Additional: []*model.Declaration{
			{Name: "value", Kind: model.KindMethod, Result: "double"},
		},
	}

	// collision without the substitution rule
	_, err := New(nil).Merge(spec, []*model.TypeBase{base})
	collision := &SignatureCollisionError{}
	assert.ErrorAs(t, err, &collision)

	// the additional declaration substitutes the base member
	policy := DefaultPolicy()
	policy.AllowSubstitution = true
	merged, err := New(policy).Merge(spec, []*model.TypeBase{base})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, 1, len(merged.Declarations))
	assert.Equal(t, "double", merged.Declarations[0].Result)
	assert.Equal(t, "", merged.Declarations[0].Origin)
}

func TestSubstitutionNeverAppliesAcrossBases(t *testing.T) {
	first := &model.TypeBase{Name: "a"}
	first.AddDeclaration(&model.Declaration{Name: "value", Kind: model.KindMethod})
	second := &model.TypeBase{Name: "b"}
	second.AddDeclaration(&model.Declaration{Name: "value", Kind: model.KindMethod})

	policy := DefaultPolicy()
	policy.AllowSubstitution = true
	spec := &model.CloneSpec{Name: "c", Bases: []string{"a", "b"}}
	_, err := New(policy).Merge(spec, []*model.TypeBase{first, second})

	collision := &SignatureCollisionError{}
	assert.ErrorAs(t, err, &collision)
}

func TestAttributeUnification(t *testing.T) {
	first := &model.TypeBase{Name: "a"}
	first.AddDeclaration(&model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})
	second := &model.TypeBase{Name: "b"}
	second.AddDeclaration(&model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})

	spec := &model.CloneSpec{Name: "c", Bases: []string{"a", "b"}}
	merged, err := New(nil).Merge(spec, []*model.TypeBase{first, second})
	if !assert.Nil(t, err) {
		return
	}

	// exactly one x slot, not two
	count := 0
	for _, decl := range merged.Declarations {
		if decl.Kind == model.KindAttribute && decl.Name == "x" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAttributeMismatch(t *testing.T) {
	testCases := []struct {
		description string
		first       *model.Declaration
		second      *model.Declaration
	}{
		{
			description: "type mismatch",
			first:       &model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic},
			second:      &model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "double", Visibility: model.VisibilityPublic},
		},
		{
			description: "visibility mismatch",
			first:       &model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic},
			second:      &model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPrivate},
		},
	}

	for _, testCase := range testCases {
		first := &model.TypeBase{Name: "a"}
		first.AddDeclaration(testCase.first)
		second := &model.TypeBase{Name: "b"}
		second.AddDeclaration(testCase.second)

		spec := &model.CloneSpec{Name: "c", Bases: []string{"a", "b"}}
		_, err := New(nil).Merge(spec, []*model.TypeBase{first, second})

		mismatch := &AttributeMismatchError{}
		assert.ErrorAs(t, err, &mismatch, testCase.description)
	}
}

func TestAttributePositionMismatch(t *testing.T) {
	first := &model.TypeBase{Name: "a"}
	first.AddDeclaration(&model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})
	first.AddDeclaration(&model.Declaration{Name: "y", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})
	second := &model.TypeBase{Name: "b"}
	second.AddDeclaration(&model.Declaration{Name: "y", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})
	second.AddDeclaration(&model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})

	spec := &model.CloneSpec{Name: "c", Bases: []string{"a", "b"}}
	_, err := New(nil).Merge(spec, []*model.TypeBase{first, second})

	mismatch := &AttributeMismatchError{}
	assert.ErrorAs(t, err, &mismatch)
}

func TestDisjointAttributesConcatenate(t *testing.T) {
	first := &model.TypeBase{Name: "a"}
	first.AddDeclaration(&model.Declaration{Name: "x", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})
	second := &model.TypeBase{Name: "b"}
	second.AddDeclaration(&model.Declaration{Name: "y", Kind: model.KindAttribute, Type: "int", Visibility: model.VisibilityPublic})

	spec := &model.CloneSpec{Name: "c", Bases: []string{"a", "b"}}
	merged, err := New(nil).Merge(spec, []*model.TypeBase{first, second})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, 2, len(merged.Declarations))
}

func TestPrimitiveBase(t *testing.T) {
	base := &model.TypeBase{Name: "int", IsPrimitive: true}
	spec := &model.CloneSpec{
		Name:  "meters",
		Bases: []string{"int"},
		Additional: []*model.Declaration{
			{Name: "toFeet", Kind: model.KindMethod, Result: "double", Visibility: model.VisibilityPublic},
		},
	}

	_, err := New(nil).Merge(spec, []*model.TypeBase{base})
	primitive := &PrimitiveBaseError{}
	assert.ErrorAs(t, err, &primitive)

	policy := DefaultPolicy()
	policy.AllowPrimitiveBase = true
	merged, err := New(policy).Merge(spec, []*model.TypeBase{base})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, 1, len(merged.Declarations))
}

func TestFriendPolicies(t *testing.T) {
	base := &model.TypeBase{Name: "matrix"}
	base.AddDeclaration(&model.Declaration{
		Name:       "trace",
		Kind:       model.KindFriend,
		Visibility: model.VisibilityPublic,
		Parameters: []*model.Parameter{{Name: "m", Type: "matrix"}},
		Body:       model.NewNodeLocation("{ return m.x; }"),
	})
	base.AddDeclaration(&model.Declaration{
		Name:       "transform",
		Kind:       model.KindFriend,
		Visibility: model.VisibilityPublic,
		IsTemplate: true,
		Body:       model.NewNodeLocation("{ return m; }"),
	})

	spec := &model.CloneSpec{Name: "tensor", Bases: []string{"matrix"}}

	merged, err := New(nil).Merge(spec, []*model.TypeBase{base})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, 2, len(merged.Declarations))
	// a non-template friend degrades to a declaration-only stub
	assert.Nil(t, merged.Declarations[0].Body)
	assert.True(t, merged.Declarations[0].IsPure)
	assert.Equal(t, "tensor", merged.Declarations[0].Parameters[0].Type)
	// a template friend keeps full capability
	assert.NotNil(t, merged.Declarations[1].Body)

	policy := DefaultPolicy()
	policy.Friends = FriendDrop
	merged, err = New(policy).Merge(spec, []*model.TypeBase{base})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, 0, len(merged.Declarations))
}

func TestNestedTypeMerge(t *testing.T) {
	base := &model.TypeBase{Name: "container"}
	base.AddDeclaration(&model.Declaration{
		Name:       "iterator",
		Kind:       model.KindNestedType,
		Visibility: model.VisibilityPublic,
		Members: []*model.Declaration{
			{Name: "next", Kind: model.KindMethod, Result: "iterator", Visibility: model.VisibilityPublic},
		},
	})

	spec := &model.CloneSpec{
		Name:  "bag",
		Bases: []string{"container"},
		Additional: []*model.Declaration{
			{
				Name:       "iterator",
				Kind:       model.KindNestedType,
				Visibility: model.VisibilityPublic,
				Members: []*model.Declaration{
					{Name: "previous", Kind: model.KindMethod, Result: "iterator", Visibility: model.VisibilityPublic},
				},
			},
		},
	}

	merged, err := New(nil).Merge(spec, []*model.TypeBase{base})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, 1, len(merged.Declarations))
	nested := merged.Declarations[0]
	if assert.Equal(t, 2, len(nested.Members)) {
		assert.Equal(t, "next", nested.Members[0].Name)
		assert.Equal(t, "previous", nested.Members[1].Name)
	}
}

func TestAncestorsDeduplicate(t *testing.T) {
	first := &model.TypeBase{Name: "a", Ancestors: []string{"object", "printable"}}
	second := &model.TypeBase{Name: "b", Ancestors: []string{"printable", "comparable"}}

	spec := &model.CloneSpec{Name: "c", Bases: []string{"a", "b"}}
	merged, err := New(nil).Merge(spec, []*model.TypeBase{first, second})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, []string{"object", "printable", "comparable"}, merged.Ancestors)
}

func TestSingleBasePolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.SingleBaseOnly = true
	spec := &model.CloneSpec{Name: "c", Bases: []string{"a", "b"}}
	_, err := New(policy).Merge(spec, []*model.TypeBase{{Name: "a"}, {Name: "b"}})
	assert.NotNil(t, err)
}
