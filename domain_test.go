package hypercore

import (
	"math/big"
	"testing"
)

func TestScaleDecimals(t *testing.T) {
	tests := []struct {
		name     string
		raw      int64
		decimals int
		want     string
	}{
		{"zero", 0, 6, "0"},
		{"whole number", 2000000000, 6, "2000"},
		{"fraction", 2000500000, 6, "2000.5"},
		{"sub-one", 500000, 6, "0.5"},
		{"full precision", 1234567, 6, "1.234567"},
		{"trailing zeros trimmed", 1500000, 6, "1.5"},
		{"negative", -12500000, 6, "-12.5"},
		{"negative sub-one", -1, 6, "-0.000001"},
		{"no scaling", 42, 0, "42"},
		{"eight decimals", 150000000, 8, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scaleDecimals(big.NewInt(tt.raw), tt.decimals); got != tt.want {
				t.Errorf("scaleDecimals(%d, %d): expected %q, got %q", tt.raw, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestPositionFromValues(t *testing.T) {
	t.Run("long position", func(t *testing.T) {
		out, err := positionFromValues([]any{
			big.NewInt(150000000),  // 1.5 @ szDecimals
			big.NewInt(2000000000), // 2000 @ priceDecimals
			big.NewInt(1800000000), // 1800 @ priceDecimals
			big.NewInt(12500000),   // 12.5 @ usdDecimals
			big.NewInt(10),
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		pos := out.(*Position)
		if pos.Size != "1.5" {
			t.Errorf("Size: expected 1.5, got %s", pos.Size)
		}
		if pos.EntryPrice != "2000" {
			t.Errorf("EntryPrice: expected 2000, got %s", pos.EntryPrice)
		}
		if pos.LiquidationPrice != "1800" {
			t.Errorf("LiquidationPrice: expected 1800, got %s", pos.LiquidationPrice)
		}
		if pos.UnrealizedPnL != "12.5" {
			t.Errorf("UnrealizedPnL: expected 12.5, got %s", pos.UnrealizedPnL)
		}
		if pos.Leverage != 10 {
			t.Errorf("Leverage: expected 10, got %d", pos.Leverage)
		}
		if pos.Side != SideLong {
			t.Errorf("Side: expected LONG, got %s", pos.Side)
		}
	})

	t.Run("short position", func(t *testing.T) {
		out, err := positionFromValues([]any{
			big.NewInt(-150000000),
			big.NewInt(2000000000),
			big.NewInt(2200000000),
			big.NewInt(-12500000),
			big.NewInt(5),
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		pos := out.(*Position)
		if pos.Side != SideShort {
			t.Errorf("Side: expected SHORT, got %s", pos.Side)
		}
		if pos.Size != "-1.5" {
			t.Errorf("Size: expected -1.5, got %s", pos.Size)
		}
		if pos.UnrealizedPnL != "-12.5" {
			t.Errorf("UnrealizedPnL: expected -12.5, got %s", pos.UnrealizedPnL)
		}
	})

	t.Run("wrong arity", func(t *testing.T) {
		if _, err := positionFromValues([]any{big.NewInt(1)}); err == nil {
			t.Error("Expected an error for a short value list")
		}
	})

	t.Run("wrong value kind", func(t *testing.T) {
		if _, err := positionFromValues([]any{"1", "2", "3", "4", "5"}); err == nil {
			t.Error("Expected an error for non-integer values")
		}
	})
}

func TestSpotBalanceFromValues(t *testing.T) {
	out, err := spotBalanceFromValues([]any{
		big.NewInt(250000000), // 2.5 @ szDecimals
		big.NewInt(100000000), // 1 @ szDecimals
		big.NewInt(5000000),   // 5 @ usdDecimals
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bal := out.(*SpotBalance)
	if bal.Total != "2.5" || bal.Hold != "1" || bal.EntryNotional != "5" {
		t.Errorf("Unexpected balance: %+v", bal)
	}
}

func TestScaledAmountTransform(t *testing.T) {
	transform := scaledAmount(priceDecimals)

	out, err := transform([]any{big.NewInt(2123456789)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.(string) != "2123.456789" {
		t.Errorf("Expected 2123.456789, got %v", out)
	}

	if _, err := transform([]any{big.NewInt(1), big.NewInt(2)}); err == nil {
		t.Error("Expected an arity error")
	}
}

func TestPassthroughTransform(t *testing.T) {
	t.Run("single value unwrapped", func(t *testing.T) {
		out, err := passthrough([]any{true})
		if err != nil {
			t.Fatal(err)
		}
		if out.(bool) != true {
			t.Errorf("Expected true, got %v", out)
		}
	})

	t.Run("multiple values kept as slice", func(t *testing.T) {
		out, err := passthrough([]any{big.NewInt(1), big.NewInt(2)})
		if err != nil {
			t.Fatal(err)
		}
		if len(out.([]any)) != 2 {
			t.Errorf("Expected 2 values, got %v", out)
		}
	})
}
