package hypercore

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Typed wrappers over Invoke for the registered operations. Each returns the
// zero value (or nil) with a nil error when the record is absent.

// Position reads a user's perp position in an asset. Returns (nil, nil) when
// the user has no open position.
func (d *Dispatcher) Position(ctx context.Context, user common.Address, asset uint32, opts ...CallOption) (*Position, error) {
	out, err := d.Invoke(ctx, OpPosition, []any{user, asset}, opts...)
	if err != nil || out == nil {
		return nil, err
	}
	pos, ok := out.(*Position)
	if !ok {
		return nil, &CallError{Op: OpPosition, Err: fmt.Errorf("unexpected result type %T", out)}
	}
	pos.Asset = asset
	return pos, nil
}

// SpotBalance reads a user's spot balance for a token. Returns (nil, nil)
// when the user holds none.
func (d *Dispatcher) SpotBalance(ctx context.Context, user common.Address, token uint64, opts ...CallOption) (*SpotBalance, error) {
	out, err := d.Invoke(ctx, OpSpotBalance, []any{user, token}, opts...)
	if err != nil || out == nil {
		return nil, err
	}
	bal, ok := out.(*SpotBalance)
	if !ok {
		return nil, &CallError{Op: OpSpotBalance, Err: fmt.Errorf("unexpected result type %T", out)}
	}
	bal.Token = token
	return bal, nil
}

// Withdrawable reads a user's withdrawable margin as a decimal string.
func (d *Dispatcher) Withdrawable(ctx context.Context, user common.Address, opts ...CallOption) (string, error) {
	return d.stringResult(ctx, OpWithdrawable, []any{user}, opts)
}

// CoreUserExists reports whether an address exists on HyperCore. An absent
// record reads as false.
func (d *Dispatcher) CoreUserExists(ctx context.Context, user common.Address, opts ...CallOption) (bool, error) {
	out, err := d.Invoke(ctx, OpCoreUserExists, []any{user}, opts...)
	if err != nil || out == nil {
		return false, err
	}
	exists, ok := out.(bool)
	if !ok {
		return false, &CallError{Op: OpCoreUserExists, Err: fmt.Errorf("unexpected result type %T", out)}
	}
	return exists, nil
}

// MarkPrice reads an asset's mark price as a decimal string.
func (d *Dispatcher) MarkPrice(ctx context.Context, asset uint32, opts ...CallOption) (string, error) {
	return d.stringResult(ctx, OpMarkPrice, []any{asset}, opts)
}

// OraclePrice reads an asset's oracle price as a decimal string.
func (d *Dispatcher) OraclePrice(ctx context.Context, asset uint32, opts ...CallOption) (string, error) {
	return d.stringResult(ctx, OpOraclePrice, []any{asset}, opts)
}

// SpotPrice reads a spot pair's price as a decimal string.
func (d *Dispatcher) SpotPrice(ctx context.Context, pair uint32, opts ...CallOption) (string, error) {
	return d.stringResult(ctx, OpSpotPrice, []any{pair}, opts)
}

// FundingRate reads an asset's current funding rate as a decimal string.
func (d *Dispatcher) FundingRate(ctx context.Context, asset uint32, opts ...CallOption) (string, error) {
	return d.stringResult(ctx, OpFundingRate, []any{asset}, opts)
}

// TokenName reads a token's display name.
func (d *Dispatcher) TokenName(ctx context.Context, token uint32, opts ...CallOption) (string, error) {
	return d.stringResult(ctx, OpTokenName, []any{token}, opts)
}

// L1BlockNumber reads the HyperCore block height.
func (d *Dispatcher) L1BlockNumber(ctx context.Context, opts ...CallOption) (uint64, error) {
	n, err := d.uintResult(ctx, OpL1BlockNumber, nil, opts)
	return n, err
}

// MaxLeverage reads an asset's maximum allowed leverage.
func (d *Dispatcher) MaxLeverage(ctx context.Context, asset uint32, opts ...CallOption) (uint32, error) {
	n, err := d.uintResult(ctx, OpMaxLeverage, []any{asset}, opts)
	return uint32(n), err
}

// stringResult invokes an operation whose domain result is a string.
func (d *Dispatcher) stringResult(ctx context.Context, op Operation, params []any, opts []CallOption) (string, error) {
	out, err := d.Invoke(ctx, op, params, opts...)
	if err != nil || out == nil {
		return "", err
	}
	s, ok := out.(string)
	if !ok {
		return "", &CallError{Op: op, Err: fmt.Errorf("unexpected result type %T", out)}
	}
	return s, nil
}

// uintResult invokes an operation whose decoded result is a single unsigned
// integer passed through unscaled.
func (d *Dispatcher) uintResult(ctx context.Context, op Operation, params []any, opts []CallOption) (uint64, error) {
	out, err := d.Invoke(ctx, op, params, opts...)
	if err != nil || out == nil {
		return 0, err
	}
	n, ok := out.(*big.Int)
	if !ok || !n.IsUint64() {
		return 0, &CallError{Op: op, Err: fmt.Errorf("unexpected result %v (%T)", out, out)}
	}
	return n.Uint64(), nil
}
