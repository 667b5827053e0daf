package hypercore

import (
	"bytes"

	"github.com/ethereum/go-ethereum/crypto"
)

// HashFunc computes a 32-byte digest. Selector derivation requires a real
// keccak-256 implementation; the codec constructor verifies the injected
// function against a known vector and refuses anything else.
type HashFunc func(data ...[]byte) []byte

// Keccak256 is the production hash, backed by go-ethereum's crypto package.
var Keccak256 HashFunc = crypto.Keccak256

// keccakEmptyDigest is keccak-256 of the empty input, used as the
// known-answer check at construction.
var keccakEmptyDigest = []byte{
	0xc5, 0xd2, 0x46, 0x01, 0x86, 0xf7, 0x23, 0x3c,
	0x92, 0x7e, 0x7d, 0xb2, 0xdc, 0xc7, 0x03, 0xc0,
	0xe5, 0x00, 0xb6, 0x53, 0xca, 0x82, 0x27, 0x3b,
	0x7b, 0xfa, 0xd8, 0x04, 0x5d, 0x85, 0xa4, 0x70,
}

// Codec derives selectors and encodes calls against a verified hash.
type Codec struct {
	hash HashFunc
}

// NewCodec builds a codec around the injected hash function. There is no
// default: a nil hash, or one that fails the keccak-256 known-answer check,
// fails construction with ErrHashUnavailable rather than degrading to wrong
// selectors at call time.
func NewCodec(hash HashFunc) (*Codec, error) {
	if hash == nil {
		return nil, ErrHashUnavailable
	}
	if !bytes.Equal(hash(), keccakEmptyDigest) {
		return nil, ErrHashUnavailable
	}
	return &Codec{hash: hash}, nil
}

// Selector returns the 4-byte function selector for a canonical signature
// string such as "getPosition(address,uint32)": the first four bytes of the
// keccak-256 digest of the signature's UTF-8 bytes.
func (c *Codec) Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], c.hash([]byte(signature)))
	return sel
}
