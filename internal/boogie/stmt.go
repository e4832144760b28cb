package boogie

import (
	"fmt"
	"strings"
)

type Stmt interface {
	fmt.Stringer
	stmt()
}

func (*AssignStmt) stmt()  {}
func (*AssumeStmt) stmt()  {}
func (*AssertStmt) stmt()  {}
func (*CommentStmt) stmt() {}
func (*HavocStmt) stmt()   {}
func (*IfElseStmt) stmt()  {}

type AssignStmt struct {
	LHS Expr
	RHS Expr
}

type AssumeStmt struct {
	Cond Expr
}

type AssertStmt struct {
	Cond Expr
}

type CommentStmt struct {
	Text string
}

type HavocStmt struct {
	Vars []*Ident
}

// IfElseStmt branches on Cond; Else may be nil.
type IfElseStmt struct {
	Cond Expr
	Then *Block
	Else *Block
}

func Assign(lhs, rhs Expr) *AssignStmt {
	return &AssignStmt{LHS: lhs, RHS: rhs}
}

func Assume(cond Expr) *AssumeStmt {
	return &AssumeStmt{Cond: cond}
}

func Assert(cond Expr) *AssertStmt {
	return &AssertStmt{Cond: cond}
}

func Comment(text string) *CommentStmt {
	return &CommentStmt{Text: text}
}

func Havoc(vars ...*Ident) *HavocStmt {
	return &HavocStmt{Vars: vars}
}

func IfElse(cond Expr, then, els *Block) *IfElseStmt {
	return &IfElseStmt{Cond: cond, Then: then, Else: els}
}

// Block is an ordered statement sequence.
type Block struct {
	Stmts []Stmt
}

func NewBlock(stmts ...Stmt) *Block {
	return &Block{Stmts: stmts}
}

func (b *Block) Add(stmts ...Stmt) {
	b.Stmts = append(b.Stmts, stmts...)
}

func (s *AssignStmt) String() string {
	return fmt.Sprintf("%s := %s;", s.LHS, s.RHS)
}

func (s *AssumeStmt) String() string {
	return fmt.Sprintf("assume %s;", s.Cond)
}

func (s *AssertStmt) String() string {
	return fmt.Sprintf("assert %s;", s.Cond)
}

func (s *CommentStmt) String() string {
	return "// " + s.Text
}

func (s *HavocStmt) String() string {
	parts := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		parts[i] = v.Name
	}
	return fmt.Sprintf("havoc %s;", strings.Join(parts, ", "))
}

func (s *IfElseStmt) String() string {
	out := fmt.Sprintf("if (%s) {\n%s}", s.Cond, s.Then.indented("  "))
	if s.Else != nil {
		out += fmt.Sprintf(" else {\n%s}", s.Else.indented("  "))
	}
	return out
}

func (b *Block) String() string {
	return b.indented("")
}

func (b *Block) indented(prefix string) string {
	var sb strings.Builder
	for _, s := range b.Stmts {
		for _, line := range strings.Split(s.String(), "\n") {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
