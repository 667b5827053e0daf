package hypercore

import (
	"context"

	"go.uber.org/zap"
)

// Dispatcher orchestrates precompile reads: registry lookup, ABI encoding,
// the RPC round trip, decoding, and domain post-processing.
//
// A Dispatcher holds no per-call state. Every invocation is idempotent given
// a fixed block tag, and any number of invocations may run concurrently;
// cancelling one never affects another.
type Dispatcher struct {
	codec        *Codec
	registry     *Registry
	backend      CallBackend
	defaultBlock string
	log          *zap.Logger
}

// Request is one item of a BatchInvoke.
type Request struct {
	Op     Operation
	Params []any
}

// Outcome is the per-item result of a BatchInvoke: a domain value, a nil
// value for an absent record, or the item's captured error.
type Outcome struct {
	Value any
	Err   error
}

// NewDispatcher builds a dispatcher. The backend and the hash function are
// mandatory: there is no default transport, and a missing or non-keccak hash
// fails construction (see NewCodec) rather than producing wrong selectors.
func NewDispatcher(backend CallBackend, hash HashFunc, opts ...Option) (*Dispatcher, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}

	cfg := defaultDispatcherConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	codec, err := NewCodec(hash)
	if err != nil {
		return nil, err
	}

	registry, err := NewRegistry(cfg.network)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		codec:        codec,
		registry:     registry,
		backend:      backend,
		defaultBlock: cfg.defaultBlock,
		log:          cfg.log,
	}, nil
}

// Registry exposes the operation table for validation and introspection.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Invoke executes one registered operation and returns its domain result.
// An empty response yields (nil, nil): the record is absent, which is not an
// error. Encode, transport, decode, and post-processing failures are wrapped
// in a *CallError carrying the operation name and precompile address.
func (d *Dispatcher) Invoke(ctx context.Context, op Operation, params []any, opts ...CallOption) (any, error) {
	e, err := d.registry.lookup(op)
	if err != nil {
		return nil, err
	}

	data, err := d.codec.EncodeCall(e.spec, params)
	if err != nil {
		return nil, &CallError{Op: op, Target: e.spec.Target, Err: err}
	}

	block := d.blockTag(opts)
	d.log.Debug("invoking precompile",
		zap.String("op", string(op)),
		zap.String("target", e.spec.Target.Hex()),
		zap.String("block", block))

	raw, err := d.backend.Call(ctx, e.spec.Target, data, block)
	if err != nil {
		return nil, &CallError{Op: op, Target: e.spec.Target, Err: err}
	}

	values, err := DecodeReturns(raw, e.spec.Outputs)
	if err != nil {
		return nil, &CallError{Op: op, Target: e.spec.Target, Err: err}
	}
	if values == nil {
		return nil, nil
	}

	out, err := e.transform(values)
	if err != nil {
		return nil, &CallError{Op: op, Target: e.spec.Target, Err: err}
	}
	return out, nil
}

// BatchInvoke executes several operations in one round trip and returns one
// Outcome per request, in request order.
//
// Items are independent end to end: an item that fails to encode, reverts,
// or fails to decode carries its error in its own Outcome without touching
// the others. Responses are re-keyed by request identity before placement —
// never assumed to arrive in request order — so outcome[i] always belongs to
// reqs[i]. The returned error is non-nil only when the whole round trip
// failed and no per-item outcome exists.
func (d *Dispatcher) BatchInvoke(ctx context.Context, reqs []Request, opts ...CallOption) ([]Outcome, error) {
	outcomes := make([]Outcome, len(reqs))
	entries := make([]entry, len(reqs))
	issued := make([]bool, len(reqs))
	calls := make([]RawCall, 0, len(reqs))

	for i, req := range reqs {
		e, err := d.registry.lookup(req.Op)
		if err != nil {
			outcomes[i].Err = err
			continue
		}
		data, err := d.codec.EncodeCall(e.spec, req.Params)
		if err != nil {
			outcomes[i].Err = &CallError{Op: req.Op, Target: e.spec.Target, Err: err}
			continue
		}
		entries[i] = e
		issued[i] = true
		calls = append(calls, RawCall{ID: i, To: e.spec.Target, Data: data})
	}

	if len(calls) == 0 {
		return outcomes, nil
	}

	block := d.blockTag(opts)
	d.log.Debug("invoking precompile batch",
		zap.Int("requests", len(reqs)),
		zap.Int("calls", len(calls)),
		zap.String("block", block))

	results, err := d.backend.BatchCall(ctx, calls, block)
	if err != nil {
		return nil, err
	}

	answered := make([]bool, len(reqs))
	for _, res := range results {
		i := res.ID
		if i < 0 || i >= len(reqs) || !issued[i] || answered[i] {
			continue
		}
		answered[i] = true
		outcomes[i] = d.itemOutcome(reqs[i].Op, entries[i], res)
	}

	// A backend that dropped a response leaves its item failed, not empty.
	for _, call := range calls {
		if !answered[call.ID] {
			outcomes[call.ID].Err = &CallError{
				Op:     reqs[call.ID].Op,
				Target: call.To,
				Err:    ErrTruncatedResponse,
			}
		}
	}

	return outcomes, nil
}

// itemOutcome decodes and post-processes one batch item.
func (d *Dispatcher) itemOutcome(op Operation, e entry, res RawResult) Outcome {
	if res.Err != nil {
		return Outcome{Err: &CallError{Op: op, Target: e.spec.Target, Err: res.Err}}
	}
	values, err := DecodeReturns(res.Return, e.spec.Outputs)
	if err != nil {
		return Outcome{Err: &CallError{Op: op, Target: e.spec.Target, Err: err}}
	}
	if values == nil {
		return Outcome{}
	}
	out, err := e.transform(values)
	if err != nil {
		return Outcome{Err: &CallError{Op: op, Target: e.spec.Target, Err: err}}
	}
	return Outcome{Value: out}
}

// blockTag resolves the block tag for one invocation.
func (d *Dispatcher) blockTag(opts []CallOption) string {
	cfg := callConfig{block: d.defaultBlock}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.block
}
