package hypercore

import (
	"sort"
)

// Operation names a registered HyperCore query.
type Operation string

// Registered operations.
const (
	// OpPosition reads a user's perp position in an asset.
	OpPosition Operation = "position"

	// OpSpotBalance reads a user's spot balance for a token.
	OpSpotBalance Operation = "spotBalance"

	// OpWithdrawable reads a user's withdrawable margin.
	OpWithdrawable Operation = "withdrawable"

	// OpCoreUserExists reports whether an address exists on HyperCore.
	OpCoreUserExists Operation = "coreUserExists"

	// OpMarkPrice reads an asset's mark price.
	OpMarkPrice Operation = "markPrice"

	// OpOraclePrice reads an asset's oracle price.
	OpOraclePrice Operation = "oraclePrice"

	// OpSpotPrice reads a spot pair's price.
	OpSpotPrice Operation = "spotPrice"

	// OpFundingRate reads an asset's current funding rate.
	OpFundingRate Operation = "fundingRate"

	// OpTokenName reads a token's display name.
	OpTokenName Operation = "tokenName"

	// OpL1BlockNumber reads the HyperCore block height.
	OpL1BlockNumber Operation = "l1BlockNumber"

	// OpMaxLeverage reads an asset's maximum allowed leverage.
	OpMaxLeverage Operation = "maxLeverage"
)

// transformFunc converts decoded ABI values into an operation's domain
// result. It is only called with a non-empty decode result.
type transformFunc func(values []any) (any, error)

// entry pairs a function spec with its post-processing step.
type entry struct {
	spec      FunctionSpec
	transform transformFunc
}

// Registry is the immutable table of known operations. It is built once at
// construction and shared by reference; lookups never mutate it, so any
// number of invocations may read it concurrently.
type Registry struct {
	ops map[Operation]entry
}

// NewRegistry builds the operation table for a network's precompile
// addresses.
func NewRegistry(network Network) (*Registry, error) {
	pos, market, risk, err := Precompiles(network)
	if err != nil {
		return nil, err
	}

	var (
		address = MustParseType("address")
		boolT   = MustParseType("bool")
		uint32T = MustParseType("uint32")
		uint64T = MustParseType("uint64")
		int64T  = MustParseType("int64")
		stringT = MustParseType("string")
	)

	ops := map[Operation]entry{
		OpPosition: {
			spec: newFunctionSpec("getPosition",
				[]Type{address, uint32T},
				[]Type{int64T, uint64T, uint64T, int64T, uint32T},
				pos),
			transform: positionFromValues,
		},
		OpSpotBalance: {
			spec: newFunctionSpec("spotBalance",
				[]Type{address, uint64T},
				[]Type{uint64T, uint64T, uint64T},
				pos),
			transform: spotBalanceFromValues,
		},
		OpWithdrawable: {
			spec: newFunctionSpec("withdrawable",
				[]Type{address},
				[]Type{uint64T},
				pos),
			transform: scaledAmount(usdDecimals),
		},
		OpCoreUserExists: {
			spec: newFunctionSpec("coreUserExists",
				[]Type{address},
				[]Type{boolT},
				pos),
			transform: passthrough,
		},
		OpMarkPrice: {
			spec: newFunctionSpec("markPx",
				[]Type{uint32T},
				[]Type{uint64T},
				market),
			transform: scaledAmount(priceDecimals),
		},
		OpOraclePrice: {
			spec: newFunctionSpec("oraclePx",
				[]Type{uint32T},
				[]Type{uint64T},
				market),
			transform: scaledAmount(priceDecimals),
		},
		OpSpotPrice: {
			spec: newFunctionSpec("spotPx",
				[]Type{uint32T},
				[]Type{uint64T},
				market),
			transform: scaledAmount(priceDecimals),
		},
		OpFundingRate: {
			spec: newFunctionSpec("fundingRate",
				[]Type{uint32T},
				[]Type{int64T},
				market),
			transform: scaledAmount(rateDecimals),
		},
		OpTokenName: {
			spec: newFunctionSpec("tokenName",
				[]Type{uint32T},
				[]Type{stringT},
				market),
			transform: passthrough,
		},
		OpL1BlockNumber: {
			spec: newFunctionSpec("l1BlockNumber",
				nil,
				[]Type{uint64T},
				market),
			transform: passthrough,
		},
		OpMaxLeverage: {
			spec: newFunctionSpec("maxLeverage",
				[]Type{uint32T},
				[]Type{uint32T},
				risk),
			transform: passthrough,
		},
	}

	return &Registry{ops: ops}, nil
}

// Lookup returns the function spec for an operation. Unknown names fail
// closed with *UnknownOperationError; there is no default spec.
func (r *Registry) Lookup(op Operation) (FunctionSpec, error) {
	e, ok := r.ops[op]
	if !ok {
		return FunctionSpec{}, &UnknownOperationError{Op: op}
	}
	return e.spec, nil
}

// lookup returns the full entry, transform included.
func (r *Registry) lookup(op Operation) (entry, error) {
	e, ok := r.ops[op]
	if !ok {
		return entry{}, &UnknownOperationError{Op: op}
	}
	return e, nil
}

// Has reports whether an operation is registered.
func (r *Registry) Has(op Operation) bool {
	_, ok := r.ops[op]
	return ok
}

// Operations returns the registered operation names in sorted order, for
// validation and introspection.
func (r *Registry) Operations() []Operation {
	names := make([]Operation, 0, len(r.ops))
	for op := range r.ops {
		names = append(names, op)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
