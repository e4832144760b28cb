package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gverify/internal/boogie"
)

// readBack selects index from an update chain the way a verifier would:
// matching index yields the stored value, otherwise the lookup falls
// through to the base.
func readBack(t *testing.T, e boogie.Expr, index boogie.Expr) boogie.Expr {
	upd, ok := e.(*boogie.UpdExpr)
	require.True(t, ok, "expected update, got %s", e)
	if upd.Index.String() == index.String() {
		return upd.Value
	}
	return boogie.ArrSel(upd.Base, index)
}

func Test_SelectToUpdateSingle(t *testing.T) {
	base := boogie.Id("m")
	i := boogie.Id("i")
	v := boogie.Id("v")

	out := SelectToUpdate(boogie.ArrSel(base, i), v)
	assert.Equal(t, "m[i := v]", out.String())
}

func Test_SelectToUpdateNested(t *testing.T) {
	base := boogie.Id("m")
	i := boogie.Id("i")
	j := boogie.Id("j")
	k := boogie.Id("k")
	v := boogie.Id("v")

	sel := boogie.ArrSel(boogie.ArrSel(boogie.ArrSel(base, i), j), k)
	out := SelectToUpdate(sel, v)

	assert.Equal(t, "m[i := m[i][j := m[i][j][k := v]]]", out.String())

	// Re-selecting [i][j][k] yields v
	inner := readBack(t, out, i)
	inner = readBack(t, inner, j)
	assert.Equal(t, "v", readBack(t, inner, k).String())

	// A different outermost index leaves the original base value
	upd, ok := out.(*boogie.UpdExpr)
	require.True(t, ok)
	assert.Equal(t, "m", upd.Base.String())
	other := boogie.Id("other")
	assert.Equal(t, "m[other]", readBack(t, out, other).String())
}

func Test_SelectToUpdateRejectsNonSelect(t *testing.T) {
	assert.Panics(t, func() {
		SelectToUpdate(boogie.Id("x"), boogie.Id("v"))
	})
}
