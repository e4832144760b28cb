package encoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"gverify/internal/boogie"
	"gverify/internal/solidity"
)

// TCCForExpr builds the predicate stating that expr lies within the
// representable range of its type. It is assumed before bit-precise
// modular arithmetic to bound free variables, and may be checked as a
// post-condition by callers. Non-bit-precise types yield true.
func TCCForExpr(expr boogie.Expr, t *solidity.Type) boogie.Expr {
	// For enums the member count is known
	if t != nil && t.Category == solidity.Enum {
		return boogie.And(
			boogie.Lte(boogie.NewIntLitI64(0), expr),
			boogie.Lt(expr, boogie.NewIntLitI64(int64(t.Members))))
	}
	if t.IsBitPrecise() {
		bits := t.Bits()
		if t.IsSigned() {
			largest := boogie.NewIntLit(new(big.Int).Sub(math.BigPow(2, int64(bits-1)), big.NewInt(1)))
			smallest := boogie.NewIntLit(new(big.Int).Neg(math.BigPow(2, int64(bits-1))))
			return boogie.And(
				boogie.Lte(smallest, expr),
				boogie.Lte(expr, largest))
		}
		largest := boogie.NewIntLit(new(big.Int).Sub(math.BigPow(2, int64(bits)), big.NewInt(1)))
		return boogie.And(
			boogie.Lte(boogie.NewIntLitI64(0), expr),
			boogie.Lte(expr, largest))
	}
	return boogie.NewBoolLit(true)
}
