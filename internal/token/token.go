package token

// Token is an operator of the source language, classified by the AST
// layer before encoding. Compound assignment operators encode exactly
// like their base operator.
type Token string

func (t Token) String() string {
	return string(t)
}

const (
	Add Token = "+"
	Sub Token = "-"
	Mul Token = "*"
	Div Token = "/"
	Mod Token = "%"
	Exp Token = "**"

	AssignAdd Token = "+="
	AssignSub Token = "-="
	AssignMul Token = "*="
	AssignDiv Token = "/="
	AssignMod Token = "%="

	BitAnd Token = "&"
	BitOr  Token = "|"
	BitXor Token = "^"
	BitNot Token = "~"
	SHL    Token = "<<"
	SAR    Token = ">>"

	AssignBitAnd Token = "&="
	AssignBitOr  Token = "|="
	AssignBitXor Token = "^="
	AssignShl    Token = "<<="
	AssignSar    Token = ">>="

	LessThan           Token = "<"
	GreaterThan        Token = ">"
	LessThanOrEqual    Token = "<="
	GreaterThanOrEqual Token = ">="
)
