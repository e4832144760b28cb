package encoder

import (
	"math/big"

	"gverify/internal/boogie"
	"gverify/internal/diag"
	"gverify/internal/solidity"
)

// CheckImplicitConversion converts expr from exprType to targetType
// where the source allows it implicitly: literal materialization and
// widening. Narrowing and signed-to-unsigned must have been rejected by
// the source type checker already.
func CheckImplicitConversion(ctx *Context, expr boogie.Expr, exprType, targetType *solidity.Type) boogie.Expr {
	diag.Assertf(exprType != nil, "implicit conversion without expression type")
	diag.Assertf(targetType != nil, "implicit conversion without target type")

	// Tuples convert element-wise
	if targetType.Category == solidity.Tuple {
		exprTuple, ok := expr.(*boogie.TupleExpr)
		diag.Assertf(ok, "tuple conversion on non-tuple expression %s", expr)
		diag.Assertf(exprType.Category == solidity.Tuple, "tuple conversion from non-tuple type %s", exprType)

		elements := make([]boogie.Expr, 0, len(targetType.Components))
		for i, target := range targetType.Components {
			if target == nil {
				elements = append(elements, nil)
				continue
			}
			elements = append(elements,
				CheckImplicitConversion(ctx, exprTuple.Elems[i], exprType.Components[i], target))
		}
		return boogie.Tuple(elements...)
	}

	if targetType.IsBitPrecise() {
		targetBits := targetType.Bits()
		if exprLit, ok := expr.(*boogie.IntLit); ok {
			// Negative literals are tricky: the magnitude is what gets
			// a width, negation is applied on the bitvector after
			if exprLit.Val.Sign() < 0 {
				return ctx.BvNeg(targetBits, ctx.IntLit(new(big.Int).Neg(exprLit.Val), targetBits))
			}
			return ctx.IntLit(exprLit.Val, targetBits)
		}
		if exprType.IsBitPrecise() {
			exprBits := exprType.Bits()
			targetSigned := targetType.IsSigned()
			exprSigned := exprType.IsSigned()

			// Nothing to do if size and signedness match
			if targetBits == exprBits && targetSigned == exprSigned {
				return expr
			}
			// Narrowing should have been rejected by the compiler
			diag.Assertf(targetBits >= exprBits, "implicit conversion to smaller type")

			if !exprSigned {
				// Unsigned widens with zero extension regardless of
				// target signedness
				return ctx.BvZeroExt(expr, exprBits, targetBits)
			}
			if targetSigned {
				return ctx.BvSignExt(expr, exprBits, targetBits)
			}
			// Signed to unsigned should have been rejected upstream
			diag.Failf("implicit conversion from signed to unsigned")
		}
	}

	return expr
}

// CheckExplicitConversion converts expr from exprType to targetType for
// an explicit source-level cast. Either type being unknown leaves the
// expression untouched.
func CheckExplicitConversion(ctx *Context, expr boogie.Expr, exprType, targetType *solidity.Type) boogie.Expr {
	if targetType == nil || exprType == nil {
		return expr
	}

	if targetType.IsBitPrecise() {
		// Literals are handled by the implicit case
		if _, ok := expr.(*boogie.IntLit); ok {
			return CheckImplicitConversion(ctx, expr, exprType, targetType)
		}
		if exprType.IsBitPrecise() {
			targetBits := targetType.Bits()
			exprBits := exprType.Bits()
			targetSigned := targetType.IsSigned()
			exprSigned := exprType.IsSigned()

			// An explicit conversion is only needed when narrowing,
			// dropping a sign, or adding one at equal width
			if targetBits < exprBits || (exprSigned && !targetSigned) ||
				(targetBits == exprBits && !exprSigned && targetSigned) {
				// Same width reinterprets the two's complement bits
				if targetBits == exprBits {
					return expr
				}
				if targetBits > exprBits {
					return ctx.BvSignExt(expr, exprBits, targetBits)
				}
				// Narrowing keeps the low-order bits
				return ctx.BvExtract(expr, exprBits, targetBits-1, 0)
			}
			return CheckImplicitConversion(ctx, expr, exprType, targetType)
		}
	}

	return expr
}
