// Package encoder translates source-level arithmetic, conversions and
// balance-transferring built-ins into the verification representation.
// Everything is a pure function over an immutable per-run Context; the
// only growing state is the bitvector builtin registry. Callers decide
// whether returned correctness conditions are assumed or asserted.
package encoder

import (
	"fmt"
	"math/big"

	"gverify/internal/boogie"
	"gverify/internal/diag"
)

// Encoding selects how fixed-width source arithmetic is modeled.
type Encoding int

const (
	// EncodingInt models arithmetic on unbounded mathematical
	// integers. Cannot overflow, so no correctness conditions.
	EncodingInt Encoding = iota
	// EncodingBV uses native fixed-width bitvector primitives;
	// wraparound is their own semantics.
	EncodingBV
	// EncodingMod simulates fixed-width wraparound over unbounded
	// integers and reports a correctness condition per operation.
	EncodingMod
)

func (e Encoding) String() string {
	switch e {
	case EncodingInt:
		return "int"
	case EncodingBV:
		return "bv"
	case EncodingMod:
		return "mod"
	}
	return fmt.Sprintf("encoding(%d)", int(e))
}

// Canonical names shared with the emitter.
const (
	ThisName      = "__this"
	MsgSenderName = "__msg_sender"
	MsgValueName  = "__msg_value"
	BalanceName   = "__balance"

	TransferProcName = "__transfer"
	SendProcName     = "__send"
	CallProcName     = "__call"

	// ErrExprName replaces expressions that could not be encoded, so
	// the surrounding body stays well-formed while further errors are
	// collected.
	ErrExprName = "__ERROR"
)

// Context is the write-once configuration of one translation run. The
// builtin registry grows as bitvector primitives are requested; its
// order is the declaration order for the emitter.
type Context struct {
	encoding Encoding
	overflow bool
	reporter *diag.Reporter

	this    *boogie.Ident
	sender  *boogie.Ident
	value   *boogie.Ident
	balance *boogie.Ident

	builtins     map[string]*boogie.FuncDecl
	builtinOrder []string
}

func NewContext(encoding Encoding, overflow bool, reporter *diag.Reporter) *Context {
	return &Context{
		encoding: encoding,
		overflow: overflow,
		reporter: reporter,
		this:     boogie.Id(ThisName),
		sender:   boogie.Id(MsgSenderName),
		value:    boogie.Id(MsgValueName),
		balance:  boogie.Id(BalanceName),
		builtins: make(map[string]*boogie.FuncDecl),
	}
}

func (c *Context) Encoding() Encoding       { return c.encoding }
func (c *Context) Overflow() bool           { return c.overflow }
func (c *Context) Reporter() *diag.Reporter { return c.reporter }

func (c *Context) This() *boogie.Ident      { return c.this }
func (c *Context) MsgSender() *boogie.Ident { return c.sender }
func (c *Context) MsgValue() *boogie.Ident  { return c.value }
func (c *Context) Balance() *boogie.Ident   { return c.balance }

// BitPrecise reports whether fixed-width wraparound is modeled at all.
func (c *Context) BitPrecise() bool {
	return c.encoding == EncodingBV || c.encoding == EncodingMod
}

// IntTypeName is the sort used for a width-w integer under the active
// encoding.
func (c *Context) IntTypeName(bits int) boogie.TypeName {
	if c.encoding == EncodingBV {
		return boogie.BvType(bits)
	}
	return boogie.IntType
}

// IntLit materializes a literal at the given width: a bitvector literal
// in the bv encoding, a mathematical literal otherwise.
func (c *Context) IntLit(v *big.Int, bits int) boogie.Expr {
	if c.encoding == EncodingBV {
		return boogie.NewBvLit(v, bits)
	}
	return boogie.NewIntLit(v)
}

func (c *Context) ErrExpr() boogie.Expr {
	return boogie.Id(ErrExprName)
}

// BuiltinDecls returns the bitvector primitive declarations requested
// so far, in first-use order.
func (c *Context) BuiltinDecls() []*boogie.FuncDecl {
	decls := make([]*boogie.FuncDecl, 0, len(c.builtinOrder))
	for _, name := range c.builtinOrder {
		decls = append(decls, c.builtins[name])
	}
	return decls
}

func (c *Context) register(name, smtName string, params []boogie.TypeName, result boogie.TypeName) {
	if _, ok := c.builtins[name]; ok {
		return
	}
	c.builtins[name] = boogie.NewFunc(name, params, result, boogie.NewAttr("bvbuiltin", smtName))
	c.builtinOrder = append(c.builtinOrder, name)
}

func (c *Context) bvBinaryOp(op, smtName string, bits int, lhs, rhs boogie.Expr) boogie.Expr {
	name := fmt.Sprintf("bv%d%s", bits, op)
	bv := boogie.BvType(bits)
	c.register(name, smtName, []boogie.TypeName{bv, bv}, bv)
	return boogie.Fn(name, lhs, rhs)
}

func (c *Context) bvBinaryPred(op, smtName string, bits int, lhs, rhs boogie.Expr) boogie.Expr {
	name := fmt.Sprintf("bv%d%s", bits, op)
	bv := boogie.BvType(bits)
	c.register(name, smtName, []boogie.TypeName{bv, bv}, boogie.BoolType)
	return boogie.Fn(name, lhs, rhs)
}

func (c *Context) bvUnaryOp(op, smtName string, bits int, sub boogie.Expr) boogie.Expr {
	name := fmt.Sprintf("bv%d%s", bits, op)
	bv := boogie.BvType(bits)
	c.register(name, smtName, []boogie.TypeName{bv}, bv)
	return boogie.Fn(name, sub)
}

func (c *Context) BvAdd(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("add", "bvadd", bits, lhs, rhs)
}

func (c *Context) BvSub(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("sub", "bvsub", bits, lhs, rhs)
}

func (c *Context) BvMul(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("mul", "bvmul", bits, lhs, rhs)
}

func (c *Context) BvSDiv(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("sdiv", "bvsdiv", bits, lhs, rhs)
}

func (c *Context) BvUDiv(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("udiv", "bvudiv", bits, lhs, rhs)
}

func (c *Context) BvAnd(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("and", "bvand", bits, lhs, rhs)
}

func (c *Context) BvOr(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("or", "bvor", bits, lhs, rhs)
}

func (c *Context) BvXor(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("xor", "bvxor", bits, lhs, rhs)
}

func (c *Context) BvShl(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("shl", "bvshl", bits, lhs, rhs)
}

func (c *Context) BvLShr(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("lshr", "bvlshr", bits, lhs, rhs)
}

func (c *Context) BvAShr(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryOp("ashr", "bvashr", bits, lhs, rhs)
}

func (c *Context) BvSlt(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryPred("slt", "bvslt", bits, lhs, rhs)
}

func (c *Context) BvUlt(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryPred("ult", "bvult", bits, lhs, rhs)
}

func (c *Context) BvSgt(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryPred("sgt", "bvsgt", bits, lhs, rhs)
}

func (c *Context) BvUgt(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryPred("ugt", "bvugt", bits, lhs, rhs)
}

func (c *Context) BvSle(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryPred("sle", "bvsle", bits, lhs, rhs)
}

func (c *Context) BvUle(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryPred("ule", "bvule", bits, lhs, rhs)
}

func (c *Context) BvSge(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryPred("sge", "bvsge", bits, lhs, rhs)
}

func (c *Context) BvUge(bits int, lhs, rhs boogie.Expr) boogie.Expr {
	return c.bvBinaryPred("uge", "bvuge", bits, lhs, rhs)
}

func (c *Context) BvNeg(bits int, sub boogie.Expr) boogie.Expr {
	return c.bvUnaryOp("neg", "bvneg", bits, sub)
}

func (c *Context) BvNot(bits int, sub boogie.Expr) boogie.Expr {
	return c.bvUnaryOp("not", "bvnot", bits, sub)
}

func (c *Context) BvZeroExt(expr boogie.Expr, fromBits, toBits int) boogie.Expr {
	name := fmt.Sprintf("bv%dzext%d", fromBits, toBits)
	c.register(name, fmt.Sprintf("(_ zero_extend %d)", toBits-fromBits),
		[]boogie.TypeName{boogie.BvType(fromBits)}, boogie.BvType(toBits))
	return boogie.Fn(name, expr)
}

func (c *Context) BvSignExt(expr boogie.Expr, fromBits, toBits int) boogie.Expr {
	name := fmt.Sprintf("bv%dsext%d", fromBits, toBits)
	c.register(name, fmt.Sprintf("(_ sign_extend %d)", toBits-fromBits),
		[]boogie.TypeName{boogie.BvType(fromBits)}, boogie.BvType(toBits))
	return boogie.Fn(name, expr)
}

// BvExtract keeps bits hi..lo of a fromBits-wide value.
func (c *Context) BvExtract(expr boogie.Expr, fromBits, hi, lo int) boogie.Expr {
	name := fmt.Sprintf("bv%dextract%dto%d", fromBits, hi, lo)
	c.register(name, fmt.Sprintf("(_ extract %d %d)", hi, lo),
		[]boogie.TypeName{boogie.BvType(fromBits)}, boogie.BvType(hi-lo+1))
	return boogie.Fn(name, expr)
}
