package hypercore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// WordSize is the width of one ABI head word in bytes.
const WordSize = 32

// Kind identifies an ABI type family.
type Kind uint8

const (
	// KindAddress is a 20-byte account address, left-padded to one word.
	KindAddress Kind = iota

	// KindUint is an unsigned integer of 8..256 bits.
	KindUint

	// KindInt is a two's-complement signed integer of 8..256 bits.
	KindInt

	// KindBool is a boolean, encoded as 0 or 1 in one word.
	KindBool

	// KindFixedBytes is a fixed-size byte array of 1..32 bytes, right-padded.
	KindFixedBytes

	// KindBytes is a variable-length byte string (dynamic).
	KindBytes

	// KindString is a variable-length UTF-8 string (dynamic).
	KindString
)

// Type is one member of the closed ABI type set supported by the codec:
// address, uintN, intN, bool, bytesN, bytes, string.
type Type struct {
	Kind Kind

	// Bits is the declared width for KindUint and KindInt (8..256).
	Bits int

	// Size is the byte count for KindFixedBytes (1..32).
	Size int
}

// ParseType parses an ABI type string such as "uint32", "address", or
// "bytes8". Types outside the supported set fail with ErrUnknownType.
func ParseType(s string) (Type, error) {
	switch s {
	case "address":
		return Type{Kind: KindAddress}, nil
	case "bool":
		return Type{Kind: KindBool}, nil
	case "string":
		return Type{Kind: KindString}, nil
	case "bytes":
		return Type{Kind: KindBytes}, nil
	}

	if rest, ok := strings.CutPrefix(s, "uint"); ok {
		bits, err := parseBits(rest)
		if err != nil {
			return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
		return Type{Kind: KindUint, Bits: bits}, nil
	}

	if rest, ok := strings.CutPrefix(s, "int"); ok {
		bits, err := parseBits(rest)
		if err != nil {
			return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
		return Type{Kind: KindInt, Bits: bits}, nil
	}

	if rest, ok := strings.CutPrefix(s, "bytes"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > 32 {
			return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
		return Type{Kind: KindFixedBytes, Size: n}, nil
	}

	return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// MustParseType is like ParseType but panics on error. Use only with
// compile-time constant type strings.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// parseBits validates an integer width suffix: a multiple of 8 in 8..256.
func parseBits(s string) (int, error) {
	bits, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if bits < 8 || bits > 256 || bits%8 != 0 {
		return 0, fmt.Errorf("invalid bit width %d", bits)
	}
	return bits, nil
}

// IsDynamic reports whether the type uses offset-plus-payload encoding.
// Classification depends only on the type tag, never on a value.
func (t Type) IsDynamic() bool {
	return t.Kind == KindBytes || t.Kind == KindString
}

// String returns the canonical ABI type string.
func (t Type) String() string {
	switch t.Kind {
	case KindAddress:
		return "address"
	case KindUint:
		return "uint" + strconv.Itoa(t.Bits)
	case KindInt:
		return "int" + strconv.Itoa(t.Bits)
	case KindBool:
		return "bool"
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(t.Size)
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", t.Kind)
	}
}

// FunctionSpec describes one registered precompile function: its canonical
// signature, ordered input and output types, and the precompile address it
// targets. Specs are built by the registry and immutable afterwards.
type FunctionSpec struct {
	Signature string
	Inputs    []Type
	Outputs   []Type
	Target    common.Address
}

// newFunctionSpec composes the canonical signature from the method name and
// the input type list, so the two can never disagree. A disagreement would
// corrupt both the selector and the encoded layout.
func newFunctionSpec(name string, inputs, outputs []Type, target common.Address) FunctionSpec {
	parts := make([]string, len(inputs))
	for i, t := range inputs {
		parts[i] = t.String()
	}
	return FunctionSpec{
		Signature: name + "(" + strings.Join(parts, ",") + ")",
		Inputs:    inputs,
		Outputs:   outputs,
		Target:    target,
	}
}
