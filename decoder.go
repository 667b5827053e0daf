package hypercore

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DecodeReturns interprets raw response bytes against an ordered list of
// return types and yields one decoded value per type.
//
// An empty response decodes to (nil, nil): "record absent" is a legitimate
// result for many queries (no open position, unknown asset) and is distinct
// from every decode error.
//
// Each dynamic return resolves its offset independently from its own head
// word; a running cursor across several dynamic returns is not valid ABI
// decoding and is not used here.
func DecodeReturns(data []byte, outputs []Type) ([]any, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if len(data) < len(outputs)*WordSize {
		return nil, &DecodeError{Type: "return data", Offset: len(data), Err: ErrTruncatedResponse}
	}

	values := make([]any, len(outputs))
	for i, t := range outputs {
		word := data[i*WordSize : (i+1)*WordSize]

		if t.IsDynamic() {
			v, err := decodeDynamic(data, word, t)
			if err != nil {
				return nil, err
			}
			values[i] = v
			continue
		}

		v, err := decodeStaticWord(word, t)
		if err != nil {
			return nil, &DecodeError{Type: t.String(), Offset: i * WordSize, Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// decodeStaticWord interprets one head word as a static-typed value.
func decodeStaticWord(word []byte, t Type) (any, error) {
	switch t.Kind {
	case KindAddress:
		return common.BytesToAddress(word[WordSize-common.AddressLength:]), nil

	case KindUint:
		return new(big.Int).SetBytes(word), nil

	case KindInt:
		n := new(big.Int).SetBytes(word)
		if word[0]&0x80 != 0 {
			mod := new(big.Int).Lsh(big.NewInt(1), 8*WordSize)
			n.Sub(n, mod)
		}
		return n, nil

	case KindBool:
		// Any non-zero word is true.
		for _, b := range word {
			if b != 0 {
				return true, nil
			}
		}
		return false, nil

	case KindFixedBytes:
		out := make([]byte, t.Size)
		copy(out, word[:t.Size])
		return out, nil

	default:
		return nil, ErrUnknownType
	}
}

// decodeDynamic follows a dynamic head word into the tail: the word is a byte
// offset into the same buffer, pointing at a 32-byte length followed by
// exactly that many payload bytes.
func decodeDynamic(data, word []byte, t Type) (any, error) {
	offset, ok := wordToInt(word)
	if !ok || offset+WordSize > len(data) {
		return nil, &DecodeError{Type: t.String(), Offset: offset, Err: ErrInvalidOffset}
	}

	length, ok := wordToInt(data[offset : offset+WordSize])
	if !ok || offset+WordSize+length > len(data) {
		return nil, &DecodeError{Type: t.String(), Offset: offset, Err: ErrTruncatedResponse}
	}

	payload := data[offset+WordSize : offset+WordSize+length]
	if t.Kind == KindString {
		return string(payload), nil
	}
	out := make([]byte, length)
	copy(out, payload)
	return out, nil
}

// wordToInt reads a word as a non-negative int, rejecting values that cannot
// index a byte buffer.
func wordToInt(word []byte) (int, bool) {
	n := new(big.Int).SetBytes(word)
	if !n.IsInt64() || n.Int64() < 0 || n.Int64() > int64(1<<31) {
		return 0, false
	}
	return int(n.Int64()), true
}
