package hypercore

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestPositionQuery(t *testing.T) {
	response := append(intWord(big.NewInt(-150000000)),
		append(intWord(big.NewInt(2000000000)),
			append(intWord(big.NewInt(2200000000)),
				append(intWord(big.NewInt(-12500000)),
					intWord(big.NewInt(20))...)...)...)...)

	backend := &mockBackend{
		callFn: func(common.Address, []byte, string) ([]byte, error) {
			return response, nil
		},
	}
	d := testDispatcher(t, backend)

	user := common.HexToAddress("0x0000000000000000000000000000000000000001")
	pos, err := d.Position(context.Background(), user, 7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if pos.Asset != 7 {
		t.Errorf("Asset should come from the request, got %d", pos.Asset)
	}
	if pos.Side != SideShort || pos.Size != "-1.5" {
		t.Errorf("Unexpected position: %+v", pos)
	}
	if pos.Leverage != 20 {
		t.Errorf("Leverage: expected 20, got %d", pos.Leverage)
	}
}

func TestPositionQueryAbsent(t *testing.T) {
	backend := &mockBackend{
		callFn: func(common.Address, []byte, string) ([]byte, error) {
			return nil, nil
		},
	}
	d := testDispatcher(t, backend)

	pos, err := d.Position(context.Background(), common.Address{}, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pos != nil {
		t.Errorf("Expected nil position, got %+v", pos)
	}
}

func TestSpotBalanceQuery(t *testing.T) {
	response := append(intWord(big.NewInt(250000000)),
		append(intWord(big.NewInt(0)),
			intWord(big.NewInt(5000000))...)...)

	backend := &mockBackend{
		callFn: func(common.Address, []byte, string) ([]byte, error) {
			return response, nil
		},
	}
	d := testDispatcher(t, backend)

	bal, err := d.SpotBalance(context.Background(), common.Address{}, 42)
	if err != nil {
		t.Fatal(err)
	}
	if bal.Token != 42 {
		t.Errorf("Token should come from the request, got %d", bal.Token)
	}
	if bal.Total != "2.5" || bal.Hold != "0" || bal.EntryNotional != "5" {
		t.Errorf("Unexpected balance: %+v", bal)
	}
}

func TestCoreUserExistsQuery(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		backend := &mockBackend{
			callFn: func(common.Address, []byte, string) ([]byte, error) {
				return intWord(big.NewInt(1)), nil
			},
		}
		d := testDispatcher(t, backend)

		exists, err := d.CoreUserExists(context.Background(), common.Address{})
		if err != nil || !exists {
			t.Errorf("Expected true, got %v (err %v)", exists, err)
		}
	})

	t.Run("absent record reads as false", func(t *testing.T) {
		backend := &mockBackend{
			callFn: func(common.Address, []byte, string) ([]byte, error) {
				return nil, nil
			},
		}
		d := testDispatcher(t, backend)

		exists, err := d.CoreUserExists(context.Background(), common.Address{})
		if err != nil || exists {
			t.Errorf("Expected false, got %v (err %v)", exists, err)
		}
	})
}

func TestTokenNameQuery(t *testing.T) {
	response := make([]byte, 3*WordSize)
	copy(response, intWord(big.NewInt(32)))
	copy(response[WordSize:], intWord(big.NewInt(4)))
	copy(response[2*WordSize:], "HYPE")

	backend := &mockBackend{
		callFn: func(common.Address, []byte, string) ([]byte, error) {
			return response, nil
		},
	}
	d := testDispatcher(t, backend)

	name, err := d.TokenName(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if name != "HYPE" {
		t.Errorf("Expected HYPE, got %q", name)
	}
}

func TestL1BlockNumberQuery(t *testing.T) {
	backend := &mockBackend{
		callFn: func(to common.Address, data []byte, block string) ([]byte, error) {
			if len(data) != 4 {
				t.Errorf("Zero-arg operation must send selector-only calldata, got %d bytes", len(data))
			}
			return intWord(big.NewInt(123456789)), nil
		},
	}
	d := testDispatcher(t, backend)

	n, err := d.L1BlockNumber(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 123456789 {
		t.Errorf("Expected 123456789, got %d", n)
	}
}

func TestMaxLeverageQuery(t *testing.T) {
	backend := &mockBackend{
		callFn: func(common.Address, []byte, string) ([]byte, error) {
			return intWord(big.NewInt(50)), nil
		},
	}
	d := testDispatcher(t, backend)

	lev, err := d.MaxLeverage(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if lev != 50 {
		t.Errorf("Expected 50, got %d", lev)
	}
}

func TestWithdrawableQuery(t *testing.T) {
	backend := &mockBackend{
		callFn: func(common.Address, []byte, string) ([]byte, error) {
			return intWord(big.NewInt(1234500000)), nil
		},
	}
	d := testDispatcher(t, backend)

	amount, err := d.Withdrawable(context.Background(), common.Address{})
	if err != nil {
		t.Fatal(err)
	}
	if amount != "1234.5" {
		t.Errorf("Expected 1234.5, got %q", amount)
	}
}
