package hypercore

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// EncodeCall produces calldata for a function spec and its parameter values:
// 4-byte selector, one 32-byte head word per parameter, then a tail region
// holding dynamic payloads. Each dynamic head word carries the byte offset of
// its payload measured from the start of the parameter area (immediately
// after the selector).
//
// Numeric parameters accept *big.Int, Go integer kinds, and decimal strings.
// A value outside its type's domain or a parameter/type arity mismatch is an
// encode error, never a silent truncation. Zero parameters yield
// selector-only calldata.
func (c *Codec) EncodeCall(spec FunctionSpec, values []any) ([]byte, error) {
	if len(values) != len(spec.Inputs) {
		return nil, &EncodeError{
			Type:  spec.Signature,
			Value: len(values),
			Err:   ErrArityMismatch,
		}
	}

	sel := c.Selector(spec.Signature)

	head := make([]byte, 0, len(spec.Inputs)*WordSize)
	var tail []byte

	// Offsets are measured from the start of the parameter area, so the
	// first dynamic payload lands right after the head words.
	offset := len(spec.Inputs) * WordSize

	for i, t := range spec.Inputs {
		if t.IsDynamic() {
			head = append(head, encodeUint64Word(uint64(offset))...)
			payload, err := encodeDynamicTail(t, values[i])
			if err != nil {
				return nil, err
			}
			tail = append(tail, payload...)
			offset += len(payload)
			continue
		}

		word, err := encodeStaticWord(t, values[i])
		if err != nil {
			return nil, err
		}
		head = append(head, word...)
	}

	data := make([]byte, 0, 4+len(head)+len(tail))
	data = append(data, sel[:]...)
	data = append(data, head...)
	data = append(data, tail...)
	return data, nil
}

// encodeStaticWord encodes a static-typed value into exactly one head word.
func encodeStaticWord(t Type, v any) ([]byte, error) {
	switch t.Kind {
	case KindAddress:
		addr, err := toAddress(v)
		if err != nil {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: err}
		}
		word := make([]byte, WordSize)
		copy(word[WordSize-common.AddressLength:], addr.Bytes())
		return word, nil

	case KindUint:
		n, err := toBigInt(v)
		if err != nil {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: err}
		}
		if n.Sign() < 0 {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: ErrNegativeUnsigned}
		}
		if n.BitLen() > t.Bits {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: ErrValueOutOfRange}
		}
		word := make([]byte, WordSize)
		n.FillBytes(word)
		return word, nil

	case KindInt:
		n, err := toBigInt(v)
		if err != nil {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: err}
		}
		if !fitsSigned(n, t.Bits) {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: ErrValueOutOfRange}
		}
		word := make([]byte, WordSize)
		twosComplement(n).FillBytes(word)
		return word, nil

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: fmt.Errorf("want bool, got %T", v)}
		}
		word := make([]byte, WordSize)
		if b {
			word[WordSize-1] = 1
		}
		return word, nil

	case KindFixedBytes:
		raw, err := toBytes(v)
		if err != nil {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: err}
		}
		if len(raw) > t.Size {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: ErrValueOutOfRange}
		}
		// Fixed-size byte arrays are right-padded, unlike numerics.
		word := make([]byte, WordSize)
		copy(word, raw)
		return word, nil

	default:
		return nil, &EncodeError{Type: t.String(), Value: v, Err: ErrUnknownType}
	}
}

// encodeDynamicTail encodes a dynamic value's tail segment: a 32-byte length
// word followed by the payload right-padded to the next word boundary.
func encodeDynamicTail(t Type, v any) ([]byte, error) {
	var raw []byte
	switch t.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: fmt.Errorf("want string, got %T", v)}
		}
		raw = []byte(s)
	case KindBytes:
		b, err := toBytes(v)
		if err != nil {
			return nil, &EncodeError{Type: t.String(), Value: v, Err: err}
		}
		raw = b
	default:
		return nil, &EncodeError{Type: t.String(), Value: v, Err: ErrUnknownType}
	}

	padded := (len(raw) + WordSize - 1) / WordSize * WordSize
	out := make([]byte, WordSize+padded)
	copy(out, encodeUint64Word(uint64(len(raw))))
	copy(out[WordSize:], raw)
	return out, nil
}

// encodeUint64Word left-pads a uint64 into one big-endian word.
func encodeUint64Word(n uint64) []byte {
	word := make([]byte, WordSize)
	new(big.Int).SetUint64(n).FillBytes(word)
	return word
}

// fitsSigned reports whether n lies in [-2^(bits-1), 2^(bits-1)).
func fitsSigned(n *big.Int, bits int) bool {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if n.Sign() < 0 {
		return n.CmpAbs(limit) <= 0
	}
	return n.Cmp(limit) < 0
}

// twosComplement maps a signed integer onto its 256-bit two's-complement
// representation. Non-negative values pass through unchanged.
func twosComplement(n *big.Int) *big.Int {
	if n.Sign() >= 0 {
		return n
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 8*WordSize)
	return new(big.Int).Add(mod, n)
}

// toBigInt accepts the numeric representations the encoder supports.
func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("nil *big.Int")
		}
		return n, nil
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case string:
		parsed, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, fmt.Errorf("invalid decimal string %q", n)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// toAddress accepts a common.Address or a 0x-prefixed hex string.
func toAddress(v any) (common.Address, error) {
	switch a := v.(type) {
	case common.Address:
		return a, nil
	case *common.Address:
		if a == nil {
			return common.Address{}, fmt.Errorf("nil address")
		}
		return *a, nil
	case string:
		if !common.IsHexAddress(a) {
			return common.Address{}, fmt.Errorf("invalid address %q", a)
		}
		return common.HexToAddress(a), nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", v)
	}
}

// toBytes accepts a byte slice or a 0x-prefixed hex string.
func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		s, ok := strings.CutPrefix(b, "0x")
		if !ok {
			return nil, fmt.Errorf("hex string must start with 0x")
		}
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, err
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported bytes type %T", v)
	}
}
