package hypercore

import (
	"fmt"
	"math/big"
	"strings"
)

// Fixed decimal precisions for raw HyperCore integer amounts.
const (
	// priceDecimals scales raw price words.
	priceDecimals = 6

	// szDecimals scales raw position sizes.
	szDecimals = 8

	// usdDecimals scales raw USD-denominated amounts.
	usdDecimals = 6

	// rateDecimals scales raw funding rates.
	rateDecimals = 8
)

// Side labels the direction of a position.
const (
	SideLong  = "LONG"
	SideShort = "SHORT"
)

// Position is a user's perp position in one asset. Amounts are decimal
// strings scaled from the raw on-chain integers.
type Position struct {
	Asset            uint32 `json:"asset"`
	Size             string `json:"size"`
	EntryPrice       string `json:"entryPrice"`
	LiquidationPrice string `json:"liquidationPrice"`
	UnrealizedPnL    string `json:"unrealizedPnl"`
	Leverage         uint32 `json:"leverage"`
	Side             string `json:"side"`
}

// SpotBalance is a user's spot holding for one token.
type SpotBalance struct {
	Token         uint64 `json:"token"`
	Total         string `json:"total"`
	Hold          string `json:"hold"`
	EntryNotional string `json:"entryNotional"`
}

// positionFromValues assembles a Position from the decoded return values of
// getPosition: (size, entryPx, liqPx, unrealizedPnl, leverage). The asset id
// is filled in by the caller, which knows the request parameters.
func positionFromValues(values []any) (any, error) {
	if len(values) != 5 {
		return nil, fmt.Errorf("position: want 5 values, got %d", len(values))
	}
	size, err := bigIntValue(values[0])
	if err != nil {
		return nil, fmt.Errorf("position size: %w", err)
	}
	entry, err := bigIntValue(values[1])
	if err != nil {
		return nil, fmt.Errorf("position entry price: %w", err)
	}
	liq, err := bigIntValue(values[2])
	if err != nil {
		return nil, fmt.Errorf("position liquidation price: %w", err)
	}
	upnl, err := bigIntValue(values[3])
	if err != nil {
		return nil, fmt.Errorf("position unrealized pnl: %w", err)
	}
	leverage, err := bigIntValue(values[4])
	if err != nil {
		return nil, fmt.Errorf("position leverage: %w", err)
	}

	side := SideLong
	if size.Sign() < 0 {
		side = SideShort
	}

	return &Position{
		Size:             scaleDecimals(size, szDecimals),
		EntryPrice:       scaleDecimals(entry, priceDecimals),
		LiquidationPrice: scaleDecimals(liq, priceDecimals),
		UnrealizedPnL:    scaleDecimals(upnl, usdDecimals),
		Leverage:         uint32(leverage.Uint64()),
		Side:             side,
	}, nil
}

// spotBalanceFromValues assembles a SpotBalance from the decoded return
// values of spotBalance: (total, hold, entryNtl).
func spotBalanceFromValues(values []any) (any, error) {
	if len(values) != 3 {
		return nil, fmt.Errorf("spot balance: want 3 values, got %d", len(values))
	}
	total, err := bigIntValue(values[0])
	if err != nil {
		return nil, fmt.Errorf("spot balance total: %w", err)
	}
	hold, err := bigIntValue(values[1])
	if err != nil {
		return nil, fmt.Errorf("spot balance hold: %w", err)
	}
	entryNtl, err := bigIntValue(values[2])
	if err != nil {
		return nil, fmt.Errorf("spot balance entry notional: %w", err)
	}
	return &SpotBalance{
		Total:         scaleDecimals(total, szDecimals),
		Hold:          scaleDecimals(hold, szDecimals),
		EntryNotional: scaleDecimals(entryNtl, usdDecimals),
	}, nil
}

// scaledAmount builds a transform that scales a single integer return by a
// fixed decimal precision.
func scaledAmount(decimals int) transformFunc {
	return func(values []any) (any, error) {
		if len(values) != 1 {
			return nil, fmt.Errorf("scaled amount: want 1 value, got %d", len(values))
		}
		n, err := bigIntValue(values[0])
		if err != nil {
			return nil, err
		}
		return scaleDecimals(n, decimals), nil
	}
}

// passthrough returns a single decoded value unchanged, or the full slice
// for multi-return operations.
func passthrough(values []any) (any, error) {
	if len(values) == 1 {
		return values[0], nil
	}
	return values, nil
}

// bigIntValue narrows a decoded value to *big.Int.
func bigIntValue(v any) (*big.Int, error) {
	n, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("want integer, got %T", v)
	}
	return n, nil
}

// scaleDecimals renders a raw integer amount as a decimal string with the
// given precision: 1500000 at 6 decimals becomes "1.5". The conversion is
// exact; trailing fractional zeros are trimmed.
func scaleDecimals(n *big.Int, decimals int) string {
	if decimals == 0 {
		return n.String()
	}

	sign := ""
	abs := new(big.Int).Abs(n)
	if n.Sign() < 0 {
		sign = "-"
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, scale, new(big.Int))

	fracStr := frac.String()
	fracStr = strings.Repeat("0", decimals-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		return sign + whole.String()
	}
	return sign + whole.String() + "." + fracStr
}
