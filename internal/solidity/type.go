package solidity

import (
	"fmt"
	"strings"

	"gverify/internal/diag"
)

// Enums are encoded with the default integer width instead of a tight
// width, so there is a single width system for the whole translation.
const enumBits = 256

type Category int

const (
	Unknown Category = iota
	Integer
	FixedBytes
	Enum
	Tuple
)

// Type is the static source type of a translated operand, as handed
// over by the type checker. A nil *Type means the type is unknown.
type Type struct {
	Category Category

	// Integer
	IntBits int
	Signed  bool

	// FixedBytes
	ByteCount int

	// Enum
	Members int

	// Tuple; a nil component means "untyped", skipped during
	// element-wise conversion
	Components []*Type
}

func IntType(bits int, signed bool) *Type {
	return &Type{Category: Integer, IntBits: bits, Signed: signed}
}

func FixedBytesType(n int) *Type {
	return &Type{Category: FixedBytes, ByteCount: n}
}

func EnumType(members int) *Type {
	return &Type{Category: Enum, Members: members}
}

func TupleType(components ...*Type) *Type {
	return &Type{Category: Tuple, Components: components}
}

// IsBitPrecise reports whether the type has a fixed bit width under the
// bit-precise encodings. Tuples qualify iff every present component
// does.
func (t *Type) IsBitPrecise() bool {
	if t == nil {
		return false
	}
	switch t.Category {
	case Integer, FixedBytes, Enum:
		return true
	case Tuple:
		for _, c := range t.Components {
			if c != nil && !c.IsBitPrecise() {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Bits returns the bit width of a bit-precise, non-tuple type.
func (t *Type) Bits() int {
	if t != nil {
		switch t.Category {
		case Integer:
			return t.IntBits
		case FixedBytes:
			return 8 * t.ByteCount
		case Enum:
			return enumBits
		}
	}
	diag.Failf("trying to get bits for non-bitprecise type %s", t)
	return 0
}

// IsSigned returns the signedness of an integer or enum type. Calling
// it on anything else is a broken precondition upstream.
func (t *Type) IsSigned() bool {
	if t != nil {
		switch t.Category {
		case Integer:
			return t.Signed
		case Enum:
			return false
		}
	}
	diag.Failf("trying to get sign for non-bitprecise type %s", t)
	return false
}

func (t *Type) String() string {
	if t == nil {
		return "<unknown>"
	}
	switch t.Category {
	case Integer:
		if t.Signed {
			return fmt.Sprintf("int%d", t.IntBits)
		}
		return fmt.Sprintf("uint%d", t.IntBits)
	case FixedBytes:
		return fmt.Sprintf("bytes%d", t.ByteCount)
	case Enum:
		return fmt.Sprintf("enum(%d)", t.Members)
	case Tuple:
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return "<other>"
	}
}
