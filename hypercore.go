// Package hypercore provides a Go client for HyperCore read precompiles on
// HyperEVM-compatible chains.
//
// HyperCore is the chain's auxiliary execution layer. Its state (positions,
// balances, prices, risk parameters) is exposed inside the EVM layer through
// contracts at fixed, well-known addresses. This library turns a logical
// query ("user X's position in asset Y") into exact ABI calldata, dispatches
// it as a read-only call, and decodes the raw response back into typed
// domain data.
//
// # Basic Usage
//
// Create a backend, build a dispatcher, and query:
//
//	backend, err := hypercore.DialRPC(ctx, "https://mainnet.hyperevm.example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	d, err := hypercore.NewDispatcher(backend, hypercore.Keccak256,
//	    hypercore.WithNetwork(hypercore.Mainnet))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pos, err := d.Position(ctx, user, 5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if pos == nil {
//	    fmt.Println("no open position")
//	}
//
// # Operations
//
// Known queries are registered once at dispatcher construction in an
// immutable table mapping an Operation name to its function signature,
// parameter types, return types, and target precompile address. The generic
// entry points are:
//
//   - Invoke: one operation, one round trip
//   - BatchInvoke: many operations, one round trip, per-item outcomes
//
// Typed wrappers (Position, MarkPrice, SpotBalance, ...) cover the
// registered operations.
//
// # Batching
//
// BatchInvoke is the mechanism for bounding fan-out: callers sweeping N
// assets should issue one batch rather than N independent calls. Items are
// encoded and decoded independently, so one malformed or reverted item never
// hides the results of the others, and the output slice always matches the
// input order regardless of how the transport orders its responses.
//
// # Hash requirement
//
// Function selectors are the first four bytes of the keccak-256 digest of
// the canonical signature. The hash is an injected, mandatory dependency:
// construction verifies the supplied function against a known keccak-256
// vector and fails if it does not match, so a stub hash can never silently
// produce wrong selectors. Use hypercore.Keccak256 in production.
package hypercore
