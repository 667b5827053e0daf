package hypercore

import (
	"go.uber.org/zap"
)

// Option configures a Dispatcher.
type Option func(*dispatcherConfig)

// CallOption configures a single Invoke or BatchInvoke.
type CallOption func(*callConfig)

// dispatcherConfig holds construction-time configuration.
type dispatcherConfig struct {
	network      Network
	defaultBlock string
	log          *zap.Logger
}

// defaultDispatcherConfig returns the default configuration: mainnet,
// "latest", no logging.
func defaultDispatcherConfig() *dispatcherConfig {
	return &dispatcherConfig{
		network:      Mainnet,
		defaultBlock: BlockLatest,
		log:          zap.NewNop(),
	}
}

// WithNetwork selects the network whose precompile addresses the registry
// targets. Default is Mainnet.
func WithNetwork(n Network) Option {
	return func(c *dispatcherConfig) {
		c.network = n
	}
}

// WithLogger attaches a structured logger. The dispatcher is silent by
// default.
func WithLogger(log *zap.Logger) Option {
	return func(c *dispatcherConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDefaultBlock sets the block tag used when an invocation does not carry
// its own. Default is "latest".
func WithDefaultBlock(tag string) Option {
	return func(c *dispatcherConfig) {
		c.defaultBlock = tag
	}
}

// callConfig holds per-invocation configuration.
type callConfig struct {
	block string
}

// AtBlock pins the invocation to a chain-state snapshot: a hex block number
// or a symbolic tag such as "latest".
func AtBlock(tag string) CallOption {
	return func(c *callConfig) {
		c.block = tag
	}
}

// Common symbolic block tags.
const (
	BlockLatest    = "latest"
	BlockFinalized = "finalized"
	BlockSafe      = "safe"
)
