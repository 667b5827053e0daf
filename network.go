package hypercore

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Network selects which chain's precompile addresses the registry targets.
type Network uint8

const (
	// Mainnet is the production HyperEVM chain.
	Mainnet Network = iota

	// Testnet is the public test chain.
	Testnet
)

// String returns the network name.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	default:
		return fmt.Sprintf("network(%d)", n)
	}
}

// precompileSet holds the fixed addresses of the HyperCore read precompiles
// on one network.
type precompileSet struct {
	positions  common.Address
	marketData common.Address
	risk       common.Address
}

var precompilesByNetwork = map[Network]precompileSet{
	Mainnet: {
		positions:  common.HexToAddress("0x0000000000000000000000000000000000000100"),
		marketData: common.HexToAddress("0x0000000000000000000000000000000000000101"),
		risk:       common.HexToAddress("0x0000000000000000000000000000000000000102"),
	},
	Testnet: {
		positions:  common.HexToAddress("0x0000000000000000000000000000000000000200"),
		marketData: common.HexToAddress("0x0000000000000000000000000000000000000201"),
		risk:       common.HexToAddress("0x0000000000000000000000000000000000000202"),
	},
}

// Precompiles returns the precompile addresses for a network, for callers
// that need the raw targets (explorers, access lists).
func Precompiles(n Network) (positions, marketData, risk common.Address, err error) {
	set, ok := precompilesByNetwork[n]
	if !ok {
		return common.Address{}, common.Address{}, common.Address{}, fmt.Errorf("hypercore: unknown network %s", n)
	}
	return set.positions, set.marketData, set.risk, nil
}
