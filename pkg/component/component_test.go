package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPrimitive, "primitive"},
		{KindCallable, "callable"},
		{KindSequence, "sequence"},
		{KindMapping, "mapping"},
		{KindObject, "object"},
		{KindClass, "class"},
		{KindLazyStream, "lazy-stream"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestComponent_Kinds(t *testing.T) {
	assert.Equal(t, KindCallable, Callable{}.Kind())
	assert.Equal(t, KindSequence, Sequence{}.Kind())
	assert.Equal(t, KindMapping, Mapping{}.Kind())
	assert.Equal(t, KindObject, Object{}.Kind())
	assert.Equal(t, KindClass, Class{}.Kind())
	assert.Equal(t, KindLazyStream, LazyStream{}.Kind())
	assert.Equal(t, KindPrimitive, Primitive{}.Kind())
}

func TestSequence_Len(t *testing.T) {
	assert.Equal(t, 0, Sequence{}.Len())
	assert.Equal(t, 3, Sequence{Items: []any{"red", "green", "blue"}}.Len())
}

func TestPath(t *testing.T) {
	p := Path{"halt", "--now"}

	assert.Equal(t, "halt --now", p.String())
	assert.Equal(t, Path{"halt"}, p.Parent())
	assert.Equal(t, "--now", p.Last())

	assert.Nil(t, Path{}.Parent())
	assert.Equal(t, "", Path{}.Last())
}

func TestPath_Key(t *testing.T) {
	assert.Equal(t, Path{"a b"}.String(), Path{"a", "b"}.String())
	assert.NotEqual(t, Path{"a b"}.Key(), Path{"a", "b"}.Key())
	assert.NotEqual(t, Path{}.Key(), Path{""}.Key())
	assert.Equal(t, Path(nil).Key(), Path{}.Key())
	assert.Equal(t, Path{"halt", "--now"}.Parent().Key(), Path{"halt"}.Key())
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = "root"

	a := base.Child("a")
	b := base.Child("b")

	assert.Equal(t, Path{"root", "a"}, a)
	assert.Equal(t, Path{"root", "b"}, b)
	assert.Equal(t, Path{"root"}, base)
}

func TestDescriberFunc(t *testing.T) {
	d := DescriberFunc(func(v any) Component {
		if v == nil {
			return Primitive{}
		}
		return Class{Name: "x"}
	})

	assert.Equal(t, Primitive{}, d.Describe(nil))
	assert.Equal(t, Class{Name: "x"}, d.Describe(1))
}
