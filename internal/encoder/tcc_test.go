package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gverify/internal/boogie"
	"gverify/internal/solidity"
)

func Test_TCCUnsigned(t *testing.T) {
	x := boogie.Id("x")
	tcc := TCCForExpr(x, solidity.IntType(8, false))
	assert.Equal(t, "((0 <= x) && (x <= 255))", tcc.String())

	tcc = TCCForExpr(x, solidity.IntType(256, false))
	assert.Equal(t,
		"((0 <= x) && (x <= 115792089237316195423570985008687907853269984665640564039457584007913129639935))",
		tcc.String())
}

func Test_TCCSigned(t *testing.T) {
	x := boogie.Id("x")
	tcc := TCCForExpr(x, solidity.IntType(8, true))
	assert.Equal(t, "((-128 <= x) && (x <= 127))", tcc.String())

	tcc = TCCForExpr(x, solidity.IntType(16, true))
	assert.Equal(t, "((-32768 <= x) && (x <= 32767))", tcc.String())
}

func Test_TCCEnum(t *testing.T) {
	x := boogie.Id("x")
	tcc := TCCForExpr(x, solidity.EnumType(3))
	assert.Equal(t, "((0 <= x) && (x < 3))", tcc.String())
}

func Test_TCCTrivial(t *testing.T) {
	x := boogie.Id("x")
	assert.Equal(t, "true", TCCForExpr(x, nil).String())
	assert.Equal(t, "true", TCCForExpr(x, &solidity.Type{Category: solidity.Unknown}).String())
}
