package encoder

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gverify/internal/boogie"
	"gverify/internal/diag"
	"gverify/internal/solidity"
)

func bvCtx() *Context {
	return NewContext(EncodingBV, false, diag.NewReporter())
}

func Test_ImplicitSameType(t *testing.T) {
	c := bvCtx()
	x := boogie.Id("x")
	u8 := solidity.IntType(8, false)
	assert.Same(t, boogie.Expr(x), CheckImplicitConversion(c, x, u8, u8))
}

func Test_ImplicitWidening(t *testing.T) {
	c := bvCtx()
	x := boogie.Id("x")

	// Unsigned widens with zero extension, even to a signed target
	out := CheckImplicitConversion(c, x, solidity.IntType(8, false), solidity.IntType(16, false))
	assert.Equal(t, "bv8zext16(x)", out.String())
	out = CheckImplicitConversion(c, x, solidity.IntType(8, false), solidity.IntType(16, true))
	assert.Equal(t, "bv8zext16(x)", out.String())

	// Signed widens to signed with sign extension
	out = CheckImplicitConversion(c, x, solidity.IntType(8, true), solidity.IntType(16, true))
	assert.Equal(t, "bv8sext16(x)", out.String())
}

func Test_ImplicitViolations(t *testing.T) {
	c := bvCtx()
	x := boogie.Id("x")

	// Narrowing must have been rejected upstream
	assert.Panics(t, func() {
		CheckImplicitConversion(c, x, solidity.IntType(16, false), solidity.IntType(8, false))
	})
	// Signed to unsigned as well
	assert.Panics(t, func() {
		CheckImplicitConversion(c, x, solidity.IntType(8, true), solidity.IntType(16, false))
	})
	assert.Panics(t, func() {
		CheckImplicitConversion(c, x, nil, solidity.IntType(8, false))
	})
}

func Test_ImplicitLiteral(t *testing.T) {
	c := bvCtx()

	out := CheckImplicitConversion(c, boogie.NewIntLitI64(5),
		&solidity.Type{Category: solidity.Unknown}, solidity.IntType(8, false))
	lit, ok := out.(*boogie.BvLit)
	require.True(t, ok)
	assert.Equal(t, int64(5), lit.Val.Int64())
	assert.Equal(t, 8, lit.Bits)

	// Negative literals: width the magnitude, then negate on bits
	out = CheckImplicitConversion(c, boogie.NewIntLitI64(-5),
		&solidity.Type{Category: solidity.Unknown}, solidity.IntType(8, true))
	assert.Equal(t, "bv8neg(5bv8)", out.String())
}

func Test_ImplicitTuple(t *testing.T) {
	c := bvCtx()
	from := solidity.TupleType(solidity.IntType(8, false), solidity.IntType(8, false))
	// The second target component is untyped and drops out
	to := solidity.TupleType(solidity.IntType(16, false), nil)
	expr := boogie.Tuple(boogie.Id("x"), boogie.Id("y"))

	out := CheckImplicitConversion(c, expr, from, to)
	tup, ok := out.(*boogie.TupleExpr)
	require.True(t, ok)
	require.Len(t, tup.Elems, 2)
	assert.Equal(t, "bv8zext16(x)", tup.Elems[0].String())
	assert.Nil(t, tup.Elems[1])
}

func Test_ExplicitUnknownTypes(t *testing.T) {
	c := bvCtx()
	x := boogie.Id("x")
	assert.Same(t, boogie.Expr(x), CheckExplicitConversion(c, x, nil, solidity.IntType(8, false)))
	assert.Same(t, boogie.Expr(x), CheckExplicitConversion(c, x, solidity.IntType(8, false), nil))
}

func Test_ExplicitNarrowing(t *testing.T) {
	c := bvCtx()
	x := boogie.Id("x")
	out := CheckExplicitConversion(c, x, solidity.IntType(16, false), solidity.IntType(8, false))
	assert.Equal(t, "bv16extract7to0(x)", out.String())
}

func Test_ExplicitResign(t *testing.T) {
	c := bvCtx()
	x := boogie.Id("x")

	// Same width just reinterprets the bits
	out := CheckExplicitConversion(c, x, solidity.IntType(8, true), solidity.IntType(8, false))
	assert.Same(t, boogie.Expr(x), out)
	out = CheckExplicitConversion(c, x, solidity.IntType(8, false), solidity.IntType(8, true))
	assert.Same(t, boogie.Expr(x), out)

	// Widening while dropping the sign extends by sign
	out = CheckExplicitConversion(c, x, solidity.IntType(8, true), solidity.IntType(16, false))
	assert.Equal(t, "bv8sext16(x)", out.String())
}

func Test_ExplicitDelegatesToImplicit(t *testing.T) {
	c := bvCtx()
	x := boogie.Id("x")
	out := CheckExplicitConversion(c, x, solidity.IntType(8, false), solidity.IntType(16, false))
	assert.Equal(t, "bv8zext16(x)", out.String())

	out = CheckExplicitConversion(c, boogie.NewIntLitI64(7),
		&solidity.Type{Category: solidity.Unknown}, solidity.IntType(8, false))
	assert.Equal(t, "7bv8", out.String())
}

func Test_WidenNarrowRoundTrip(t *testing.T) {
	c := bvCtx()
	x := boogie.Id("x")
	u8 := solidity.IntType(8, false)
	u16 := solidity.IntType(16, false)

	widened := CheckImplicitConversion(c, x, u8, u16)
	narrowed := CheckExplicitConversion(c, widened, u16, u8)
	// Extracting the low 8 bits of a zero extension restores the
	// original bit pattern
	assert.Equal(t, "bv16extract7to0(bv8zext16(x))", narrowed.String())

	decls := c.BuiltinDecls()
	require.Len(t, decls, 2)
	assert.Equal(t, "bv8zext16", decls[0].Name)
	assert.Equal(t, "bv16extract7to0", decls[1].Name)
	require.Len(t, decls[1].Attrs, 1)
	assert.Equal(t, `{:bvbuiltin "(_ extract 7 0)"}`, decls[1].Attrs[0].String())
}

func Test_ConversionBigWidths(t *testing.T) {
	c := bvCtx()
	out := CheckImplicitConversion(c, boogie.NewIntLit(new(big.Int).Lsh(big.NewInt(1), 200)),
		&solidity.Type{Category: solidity.Unknown}, solidity.IntType(256, false))
	lit, ok := out.(*boogie.BvLit)
	require.True(t, ok)
	assert.Equal(t, 256, lit.Bits)
	assert.Equal(t, 201, lit.Val.BitLen())
}
