package hypercore

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrHashUnavailable indicates the injected hash function is missing or
	// is not a keccak-256 implementation.
	ErrHashUnavailable = errors.New("hypercore: keccak-256 hash unavailable")

	// ErrArityMismatch indicates the parameter count does not match the
	// operation's declared input types.
	ErrArityMismatch = errors.New("hypercore: parameter count does not match input types")

	// ErrUnknownType indicates an ABI type string outside the supported set.
	ErrUnknownType = errors.New("hypercore: unknown ABI type")

	// ErrValueOutOfRange indicates a value that does not fit its type's width.
	ErrValueOutOfRange = errors.New("hypercore: value out of range for type")

	// ErrNegativeUnsigned indicates a negative value for an unsigned type.
	ErrNegativeUnsigned = errors.New("hypercore: negative value for unsigned type")

	// ErrTruncatedResponse indicates response data shorter than the declared
	// return layout requires.
	ErrTruncatedResponse = errors.New("hypercore: truncated response data")

	// ErrInvalidOffset indicates a dynamic head word pointing outside the
	// response buffer.
	ErrInvalidOffset = errors.New("hypercore: dynamic offset outside response data")

	// ErrNoBackend indicates a dispatcher was constructed without a call
	// backend.
	ErrNoBackend = errors.New("hypercore: call backend is required")
)

// EncodeError indicates a parameter could not be encoded. Encode errors are
// programmer errors: they are surfaced immediately and never retried.
type EncodeError struct {
	Type  string
	Value any
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("hypercore: encode %s from %T: %v", e.Type, e.Value, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError indicates response bytes could not be interpreted against the
// declared return types. Decode errors are never retried.
type DecodeError struct {
	Type   string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("hypercore: decode %s at offset %d: %v", e.Type, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnknownOperationError indicates a registry lookup for an unregistered
// operation name. The registry never falls back to a default spec.
type UnknownOperationError struct {
	Op Operation
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("hypercore: unknown operation %q", string(e.Op))
}

// TransportError wraps a network-level failure (connection, timeout, HTTP
// status). Transport errors are the recoverable kind: the backend retries
// them with backoff before surfacing one.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("hypercore: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RevertError indicates the call executed and reverted on-chain. Retrying
// cannot help; the revert payload is preserved for the caller.
type RevertError struct {
	Reason string
	Data   []byte
}

func (e *RevertError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("hypercore: execution reverted: %s", e.Reason)
	}
	return "hypercore: execution reverted"
}

// CallError is the cross-layer wrapper for a failed invocation. It carries
// the operation name, the precompile address, and the original cause.
type CallError struct {
	Op     Operation
	Target common.Address
	Err    error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("hypercore: %s (%s): %v", string(e.Op), e.Target.Hex(), e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
