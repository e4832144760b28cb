// Package boogie holds the intermediate verification representation the
// encoders emit into: an immutable expression tree plus statements and
// declarations. Printing to concrete Boogie syntax is provided for
// debugging and tests; file emission belongs to the output layer.
package boogie

import (
	"fmt"
	"math/big"
	"strings"
)

// Expr is one node of the verification expression tree. Nodes are never
// mutated after construction; sub-expressions may be shared between
// trees.
type Expr interface {
	fmt.Stringer
	expr()
}

func (*IntLit) expr()    {}
func (*BvLit) expr()     {}
func (*BoolLit) expr()   {}
func (*Ident) expr()     {}
func (*SelExpr) expr()   {}
func (*UpdExpr) expr()   {}
func (*BinExpr) expr()   {}
func (*UnExpr) expr()    {}
func (*CondExpr) expr()  {}
func (*TupleExpr) expr() {}
func (*FnApply) expr()   {}

// IntLit is an unbounded mathematical integer literal.
type IntLit struct {
	Val *big.Int
}

// BvLit is a fixed-width bitvector literal. Val is the unsigned
// magnitude, already reduced to the width.
type BvLit struct {
	Val  *big.Int
	Bits int
}

type BoolLit struct {
	Val bool
}

type Ident struct {
	Name string
}

// SelExpr reads base[index].
type SelExpr struct {
	Base  Expr
	Index Expr
}

// UpdExpr is the functional array update base[index := value].
type UpdExpr struct {
	Base  Expr
	Index Expr
	Value Expr
}

type BinOp string

const (
	OpPlus   BinOp = "+"
	OpMinus  BinOp = "-"
	OpTimes  BinOp = "*"
	OpIntDiv BinOp = "div" // truncating integer division
	OpMod    BinOp = "mod"
	OpLt     BinOp = "<"
	OpGt     BinOp = ">"
	OpLte    BinOp = "<="
	OpGte    BinOp = ">="
	OpEq     BinOp = "=="
	OpNeq    BinOp = "!="
	OpAnd    BinOp = "&&"
	OpOr     BinOp = "||"
)

type BinExpr struct {
	Op  BinOp
	LHS Expr
	RHS Expr
}

type UnOp string

const (
	OpNeg UnOp = "-"
	OpNot UnOp = "!"
)

type UnExpr struct {
	Op  UnOp
	Sub Expr
}

// CondExpr is the if-then-else expression.
type CondExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

// TupleExpr groups expressions component-wise. A nil element stands for
// an untyped ("don't care") component.
type TupleExpr struct {
	Elems []Expr
}

// FnApply applies a declared function, e.g. a bitvector builtin.
type FnApply struct {
	Func string
	Args []Expr
}

func NewIntLit(v *big.Int) *IntLit {
	return &IntLit{Val: v}
}

func NewIntLitI64(v int64) *IntLit {
	return &IntLit{Val: big.NewInt(v)}
}

func NewBvLit(v *big.Int, bits int) *BvLit {
	return &BvLit{Val: v, Bits: bits}
}

func NewBoolLit(v bool) *BoolLit {
	return &BoolLit{Val: v}
}

func Id(name string) *Ident {
	return &Ident{Name: name}
}

// Nondet is the nondeterministic branch condition.
func Nondet() Expr {
	return Id("*")
}

func ArrSel(base, index Expr) *SelExpr {
	return &SelExpr{Base: base, Index: index}
}

func ArrUpd(base, index, value Expr) *UpdExpr {
	return &UpdExpr{Base: base, Index: index, Value: value}
}

// ToUpdate turns the read sel.Base[sel.Index] into the update
// sel.Base[sel.Index := value].
func (s *SelExpr) ToUpdate(value Expr) *UpdExpr {
	return ArrUpd(s.Base, s.Index, value)
}

func bin(op BinOp, lhs, rhs Expr) Expr {
	return &BinExpr{Op: op, LHS: lhs, RHS: rhs}
}

func Plus(lhs, rhs Expr) Expr   { return bin(OpPlus, lhs, rhs) }
func Minus(lhs, rhs Expr) Expr  { return bin(OpMinus, lhs, rhs) }
func Times(lhs, rhs Expr) Expr  { return bin(OpTimes, lhs, rhs) }
func IntDiv(lhs, rhs Expr) Expr { return bin(OpIntDiv, lhs, rhs) }
func Mod(lhs, rhs Expr) Expr    { return bin(OpMod, lhs, rhs) }
func Lt(lhs, rhs Expr) Expr     { return bin(OpLt, lhs, rhs) }
func Gt(lhs, rhs Expr) Expr     { return bin(OpGt, lhs, rhs) }
func Lte(lhs, rhs Expr) Expr    { return bin(OpLte, lhs, rhs) }
func Gte(lhs, rhs Expr) Expr    { return bin(OpGte, lhs, rhs) }
func Eq(lhs, rhs Expr) Expr     { return bin(OpEq, lhs, rhs) }
func Neq(lhs, rhs Expr) Expr    { return bin(OpNeq, lhs, rhs) }
func And(lhs, rhs Expr) Expr    { return bin(OpAnd, lhs, rhs) }
func Or(lhs, rhs Expr) Expr     { return bin(OpOr, lhs, rhs) }

func Neg(sub Expr) Expr {
	return &UnExpr{Op: OpNeg, Sub: sub}
}

func Not(sub Expr) Expr {
	return &UnExpr{Op: OpNot, Sub: sub}
}

func Cond(cond, then, els Expr) Expr {
	return &CondExpr{Cond: cond, Then: then, Else: els}
}

func Tuple(elems ...Expr) *TupleExpr {
	return &TupleExpr{Elems: elems}
}

func Fn(name string, args ...Expr) *FnApply {
	return &FnApply{Func: name, Args: args}
}

func (e *IntLit) String() string {
	return e.Val.String()
}

func (e *BvLit) String() string {
	return fmt.Sprintf("%sbv%d", e.Val.String(), e.Bits)
}

func (e *BoolLit) String() string {
	if e.Val {
		return "true"
	}
	return "false"
}

func (e *Ident) String() string {
	return e.Name
}

func (e *SelExpr) String() string {
	return fmt.Sprintf("%s[%s]", e.Base, e.Index)
}

func (e *UpdExpr) String() string {
	return fmt.Sprintf("%s[%s := %s]", e.Base, e.Index, e.Value)
}

func (e *BinExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.LHS, e.Op, e.RHS)
}

func (e *UnExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.Sub)
}

func (e *CondExpr) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", e.Cond, e.Then, e.Else)
}

func (e *TupleExpr) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		if el == nil {
			parts[i] = "_"
			continue
		}
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (e *FnApply) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Func, strings.Join(parts, ", "))
}
