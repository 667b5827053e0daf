package hypercore

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// RawCall is one read-only call in a batch. ID correlates the call with its
// RawResult: backends may answer in any order, and the dispatcher re-keys
// results by ID before placing them back in request order.
type RawCall struct {
	ID   int
	To   common.Address
	Data []byte
}

// RawResult is the outcome of one RawCall.
type RawResult struct {
	ID     int
	Return []byte
	Err    error
}

// CallBackend issues read-only contract calls at a block tag. The block tag
// is a hex block number or a symbolic tag such as "latest".
type CallBackend interface {
	// Call executes a single eth_call-style read.
	Call(ctx context.Context, to common.Address, data []byte, block string) ([]byte, error)

	// BatchCall executes several independent reads in one round trip. One
	// result is returned per call; a failing item carries its error in its
	// own RawResult rather than failing the batch.
	BatchCall(ctx context.Context, calls []RawCall, block string) ([]RawResult, error)
}

// callArgs is the eth_call parameter object.
type callArgs struct {
	To   *common.Address `json:"to"`
	Data hexutil.Bytes   `json:"data"`
}

// RPCBackend is a CallBackend on a go-ethereum JSON-RPC client. Transient
// failures (network errors, HTTP 429 and 5xx) are retried with exponential
// backoff; reverts and other client errors are surfaced immediately.
type RPCBackend struct {
	client     *rpc.Client
	maxElapsed time.Duration
}

// BackendOption configures an RPCBackend.
type BackendOption func(*RPCBackend)

// WithRetryWindow bounds the total time spent retrying one call, including
// the first attempt's failure. Zero disables retries.
func WithRetryWindow(d time.Duration) BackendOption {
	return func(b *RPCBackend) {
		b.maxElapsed = d
	}
}

// defaultRetryWindow bounds retry time when no option is given.
const defaultRetryWindow = 10 * time.Second

// NewRPCBackend wraps an existing RPC client.
func NewRPCBackend(client *rpc.Client, opts ...BackendOption) *RPCBackend {
	b := &RPCBackend{
		client:     client,
		maxElapsed: defaultRetryWindow,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DialRPC connects to a JSON-RPC endpoint and wraps it as a backend.
func DialRPC(ctx context.Context, url string, opts ...BackendOption) (*RPCBackend, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return NewRPCBackend(client, opts...), nil
}

// Close tears down the underlying RPC client.
func (b *RPCBackend) Close() {
	b.client.Close()
}

// Call implements CallBackend.
func (b *RPCBackend) Call(ctx context.Context, to common.Address, data []byte, block string) ([]byte, error) {
	var out hexutil.Bytes
	attempt := func() error {
		err := b.client.CallContext(ctx, &out, "eth_call", callArgs{To: &to, Data: data}, block)
		return classifyRPCError(err)
	}
	if err := backoff.Retry(attempt, b.newBackOff(ctx)); err != nil {
		return nil, err
	}
	return out, nil
}

// BatchCall implements CallBackend. The round trip itself is retried as a
// unit; per-item errors (reverts, bad calldata) are classified into each
// item's RawResult so one bad item never blocks the rest.
func (b *RPCBackend) BatchCall(ctx context.Context, calls []RawCall, block string) ([]RawResult, error) {
	elems := make([]rpc.BatchElem, len(calls))
	outs := make([]hexutil.Bytes, len(calls))
	for i, call := range calls {
		to := call.To
		elems[i] = rpc.BatchElem{
			Method: "eth_call",
			Args:   []any{callArgs{To: &to, Data: call.Data}, block},
			Result: &outs[i],
		}
	}

	attempt := func() error {
		return classifyRPCError(b.client.BatchCallContext(ctx, elems))
	}
	if err := backoff.Retry(attempt, b.newBackOff(ctx)); err != nil {
		return nil, err
	}

	results := make([]RawResult, len(calls))
	for i, call := range calls {
		results[i] = RawResult{
			ID:     call.ID,
			Return: outs[i],
			Err:    classifyRPCError(elems[i].Error),
		}
	}
	return results, nil
}

// newBackOff builds the retry policy for one call.
func (b *RPCBackend) newBackOff(ctx context.Context) backoff.BackOff {
	if b.maxElapsed <= 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxElapsedTime = b.maxElapsed
	return backoff.WithContext(bo, ctx)
}

// classifyRPCError maps raw RPC failures onto the package error taxonomy and
// marks the non-retryable ones permanent for the backoff loop.
//
// Retried: network-level failures, HTTP 429, HTTP 5xx. Never retried:
// reverts, other HTTP 4xx, JSON-RPC application errors — those indicate a
// structurally invalid request, not a transient condition.
func classifyRPCError(err error) error {
	if err == nil {
		return nil
	}

	// Reverts arrive as JSON-RPC errors carrying the revert payload. A plain
	// application error (bad method, bad params) has no data attached.
	var de rpc.DataError
	if errors.As(err, &de) && de.ErrorData() != nil {
		revert := &RevertError{Reason: de.Error()}
		if hexData, ok := de.ErrorData().(string); ok {
			if raw, decErr := hexutil.Decode(hexData); decErr == nil {
				revert.Data = raw
			}
		}
		return backoff.Permanent(revert)
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == 429 || httpErr.StatusCode >= 500 {
			return &TransportError{Err: err}
		}
		return backoff.Permanent(&TransportError{Err: err})
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return backoff.Permanent(&TransportError{Err: err})
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return backoff.Permanent(&TransportError{Err: err})
	}

	// Connection resets, DNS failures, unexpected EOFs.
	return &TransportError{Err: err}
}
