package encoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"gverify/internal/boogie"
	"gverify/internal/diag"
	"gverify/internal/token"
)

// ExprWithCC pairs an encoded result with an optional correctness
// condition. CC is nil when the operation is always well-defined under
// the active encoding; otherwise it holds exactly when no wraparound
// occurred. Whether it gets assumed or asserted is the caller's policy.
type ExprWithCC struct {
	Expr boogie.Expr
	CC   boogie.Expr
}

func pow2(bits int) *big.Int {
	return math.BigPow(2, int64(bits))
}

// bigExp folds base**exp over unbounded integers.
func bigExp(base, exp *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, nil)
}

// EncodeArithBinaryOp encodes op over two already-encoded operands of
// the given width and signedness.
func EncodeArithBinaryOp(ctx *Context, node diag.Node, op token.Token, lhs, rhs boogie.Expr, bits int, isSigned bool) ExprWithCC {
	var (
		result boogie.Expr
		cc     boogie.Expr
	)

	switch ctx.Encoding() {
	case EncodingInt:
		switch op {
		case token.Add, token.AssignAdd:
			result = boogie.Plus(lhs, rhs)
		case token.Sub, token.AssignSub:
			result = boogie.Minus(lhs, rhs)
		case token.Mul, token.AssignMul:
			result = boogie.Times(lhs, rhs)
		// Integer division is fine, the source has no floats
		case token.Div, token.AssignDiv:
			result = boogie.IntDiv(lhs, rhs)
		case token.Mod, token.AssignMod:
			result = boogie.Mod(lhs, rhs)

		case token.LessThan:
			result = boogie.Lt(lhs, rhs)
		case token.GreaterThan:
			result = boogie.Gt(lhs, rhs)
		case token.LessThanOrEqual:
			result = boogie.Lte(lhs, rhs)
		case token.GreaterThanOrEqual:
			result = boogie.Gte(lhs, rhs)

		case token.Exp:
			lhsLit, lok := lhs.(*boogie.IntLit)
			rhsLit, rok := rhs.(*boogie.IntLit)
			if lok && rok {
				result = boogie.NewIntLit(bigExp(lhsLit.Val, rhsLit.Val))
			} else {
				ctx.Reporter().ReportError(node, "Exponentiation is not supported in 'int' encoding")
				result = ctx.ErrExpr()
			}
		default:
			ctx.Reporter().ReportError(node, "Unsupported binary operator in 'int' encoding %s", op)
			result = ctx.ErrExpr()
		}

	case EncodingBV:
		switch op {
		case token.Add, token.AssignAdd:
			result = ctx.BvAdd(bits, lhs, rhs)
		case token.Sub, token.AssignSub:
			result = ctx.BvSub(bits, lhs, rhs)
		case token.Mul, token.AssignMul:
			result = ctx.BvMul(bits, lhs, rhs)
		case token.Div, token.AssignDiv:
			if isSigned {
				result = ctx.BvSDiv(bits, lhs, rhs)
			} else {
				result = ctx.BvUDiv(bits, lhs, rhs)
			}

		case token.BitAnd, token.AssignBitAnd:
			result = ctx.BvAnd(bits, lhs, rhs)
		case token.BitOr, token.AssignBitOr:
			result = ctx.BvOr(bits, lhs, rhs)
		case token.BitXor, token.AssignBitXor:
			result = ctx.BvXor(bits, lhs, rhs)
		case token.SAR, token.AssignSar:
			if isSigned {
				result = ctx.BvAShr(bits, lhs, rhs)
			} else {
				result = ctx.BvLShr(bits, lhs, rhs)
			}
		case token.SHL, token.AssignShl:
			result = ctx.BvShl(bits, lhs, rhs)

		case token.LessThan:
			if isSigned {
				result = ctx.BvSlt(bits, lhs, rhs)
			} else {
				result = ctx.BvUlt(bits, lhs, rhs)
			}
		case token.GreaterThan:
			if isSigned {
				result = ctx.BvSgt(bits, lhs, rhs)
			} else {
				result = ctx.BvUgt(bits, lhs, rhs)
			}
		case token.LessThanOrEqual:
			if isSigned {
				result = ctx.BvSle(bits, lhs, rhs)
			} else {
				result = ctx.BvUle(bits, lhs, rhs)
			}
		case token.GreaterThanOrEqual:
			if isSigned {
				result = ctx.BvSge(bits, lhs, rhs)
			} else {
				result = ctx.BvUge(bits, lhs, rhs)
			}

		case token.Exp:
			lhsLit, lok := lhs.(*boogie.BvLit)
			rhsLit, rok := rhs.(*boogie.BvLit)
			if lok && rok {
				power := bigExp(lhsLit.Val, rhsLit.Val)
				result = ctx.IntLit(power.Mod(power, pow2(bits)), bits)
			} else {
				ctx.Reporter().ReportError(node, "Exponentiation is not supported in 'bv' encoding")
				result = ctx.ErrExpr()
			}
		default:
			ctx.Reporter().ReportError(node, "Unsupported binary operator in 'bv' encoding %s", op)
			result = ctx.ErrExpr()
		}

	case EncodingMod:
		modulo := boogie.NewIntLit(pow2(bits))
		largestSigned := boogie.NewIntLit(new(big.Int).Sub(pow2(bits-1), big.NewInt(1)))
		smallestSigned := boogie.NewIntLit(new(big.Int).Neg(pow2(bits - 1)))
		switch op {
		case token.Add, token.AssignAdd:
			sum := boogie.Plus(lhs, rhs)
			if isSigned {
				result = boogie.Cond(boogie.Gt(sum, largestSigned),
					boogie.Minus(sum, modulo),
					boogie.Cond(boogie.Lt(sum, smallestSigned), boogie.Plus(sum, modulo), sum))
			} else {
				result = boogie.Cond(boogie.Gte(sum, modulo), boogie.Minus(sum, modulo), sum)
			}
			cc = boogie.Eq(sum, result)

		case token.Sub, token.AssignSub:
			diff := boogie.Minus(lhs, rhs)
			if isSigned {
				result = boogie.Cond(boogie.Gt(diff, largestSigned),
					boogie.Minus(diff, modulo),
					boogie.Cond(boogie.Lt(diff, smallestSigned), boogie.Plus(diff, modulo), diff))
			} else {
				result = boogie.Cond(boogie.Gte(lhs, rhs), diff, boogie.Plus(diff, modulo))
			}
			cc = boogie.Eq(diff, result)

		case token.Mul, token.AssignMul:
			prod := boogie.Times(lhs, rhs)
			if isSigned {
				// Shift negative operands into the unsigned domain,
				// reduce the product, then re-sign the result.
				zero := boogie.NewIntLitI64(0)
				lhs1 := boogie.Cond(boogie.Gte(lhs, zero), lhs, boogie.Plus(modulo, lhs))
				rhs1 := boogie.Cond(boogie.Gte(rhs, zero), rhs, boogie.Plus(modulo, rhs))
				uprod := boogie.Mod(boogie.Times(lhs1, rhs1), modulo)
				result = boogie.Cond(boogie.Gt(uprod, largestSigned), boogie.Minus(uprod, modulo), uprod)
			} else {
				result = boogie.Cond(boogie.Gte(prod, modulo), boogie.Mod(prod, modulo), prod)
			}
			cc = boogie.Eq(prod, result)

		case token.Div, token.AssignDiv:
			div := boogie.IntDiv(lhs, rhs)
			if isSigned {
				result = boogie.Cond(boogie.Gt(div, largestSigned),
					boogie.Minus(div, modulo),
					boogie.Cond(boogie.Lt(div, smallestSigned), boogie.Plus(div, modulo), div))
			} else {
				result = div
			}
			cc = boogie.Eq(div, result)

		case token.LessThan:
			result = boogie.Lt(lhs, rhs)
		case token.GreaterThan:
			result = boogie.Gt(lhs, rhs)
		case token.LessThanOrEqual:
			result = boogie.Lte(lhs, rhs)
		case token.GreaterThanOrEqual:
			result = boogie.Gte(lhs, rhs)

		case token.Exp:
			lhsLit, lok := lhs.(*boogie.IntLit)
			rhsLit, rok := rhs.(*boogie.IntLit)
			if lok && rok {
				expBits := bits
				if isSigned {
					expBits = bits - 1
				}
				power := bigExp(lhsLit.Val, rhsLit.Val)
				reduced := new(big.Int).Rem(power, pow2(expBits))
				result = ctx.IntLit(reduced, bits)
				cc = boogie.Eq(ctx.IntLit(power, bits), result)
			} else {
				ctx.Reporter().ReportError(node, "Exponentiation is not supported in 'mod' encoding")
				result = ctx.ErrExpr()
			}
		default:
			ctx.Reporter().ReportError(node, "Unsupported binary operator in 'mod' encoding %s", op)
			result = ctx.ErrExpr()
		}

	default:
		diag.Failf("unknown arithmetic encoding %s", ctx.Encoding())
	}

	return ExprWithCC{Expr: result, CC: cc}
}

// EncodeArithUnaryOp encodes a unary operator over an already-encoded
// operand.
func EncodeArithUnaryOp(ctx *Context, node diag.Node, op token.Token, subExpr boogie.Expr, bits int, isSigned bool) ExprWithCC {
	var (
		result boogie.Expr
		cc     boogie.Expr
	)

	switch ctx.Encoding() {
	case EncodingInt:
		switch op {
		case token.Sub:
			result = boogie.Neg(subExpr)
		default:
			ctx.Reporter().ReportError(node, "Unsupported unary operator in 'int' encoding %s", op)
			result = ctx.ErrExpr()
		}

	case EncodingBV:
		switch op {
		case token.Sub:
			result = ctx.BvNeg(bits, subExpr)
		case token.BitNot:
			result = ctx.BvNot(bits, subExpr)
		default:
			ctx.Reporter().ReportError(node, "Unsupported unary operator in 'bv' encoding %s", op)
			result = ctx.ErrExpr()
		}

	case EncodingMod:
		switch op {
		case token.Sub:
			neg := boogie.Neg(subExpr)
			if isSigned {
				// Negating the most negative value wraps back to
				// itself.
				smallestSigned := boogie.NewIntLit(new(big.Int).Neg(pow2(bits - 1)))
				result = boogie.Cond(boogie.Eq(subExpr, smallestSigned), smallestSigned, neg)
			} else {
				zero := boogie.NewIntLitI64(0)
				modulo := boogie.NewIntLit(pow2(bits))
				result = boogie.Cond(boogie.Eq(subExpr, zero), zero, boogie.Minus(modulo, subExpr))
			}
			cc = boogie.Eq(neg, result)
		default:
			ctx.Reporter().ReportError(node, "Unsupported unary operator in 'mod' encoding %s", op)
			result = ctx.ErrExpr()
		}

	default:
		diag.Failf("unknown arithmetic encoding %s", ctx.Encoding())
	}

	return ExprWithCC{Expr: result, CC: cc}
}
