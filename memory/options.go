package memory

import (
	"github.com/arloliu/bytesparse/block"
	"github.com/arloliu/bytesparse/errs"
	"github.com/arloliu/bytesparse/internal/options"
)

type config struct {
	data      []byte
	blocks    []block.Block
	source    *Memory
	hasSource bool
	offset    int64
	start     Endpoint
	endex     Endpoint
	copyData  bool
	validate  bool
	unsigned  bool
	hasData   bool
	hasBlocks bool
}

func newConfig() *config {
	return &config{copyData: true, validate: true}
}

// Option configures the construction of a Memory.
type Option = options.Option[*config]

// sourceOption wraps an option setting the initial content. Only one such
// option is accepted.
func sourceOption(fn func(c *config)) Option {
	return options.New(func(c *config) error {
		if c.hasData || c.hasBlocks || c.hasSource {
			return errs.ErrMultipleSources
		}
		fn(c)

		return nil
	})
}

// WithData initializes the memory with data at the offset address.
func WithData(data []byte) Option {
	return sourceOption(func(c *config) {
		c.data = data
		c.hasData = true
	})
}

// WithBlocks initializes the memory with blocks, each moved by the offset.
// Unless validation is disabled the blocks must be canonical.
func WithBlocks(blocks []block.Block) Option {
	return sourceOption(func(c *config) {
		c.blocks = blocks
		c.hasBlocks = true
	})
}

// WithMemory initializes the memory with a deep copy of the content of m,
// moved by the offset. The trim window of m is not copied.
func WithMemory(m *Memory) Option {
	return sourceOption(func(c *config) {
		c.source = m
		c.hasSource = true
	})
}

// WithOffset moves the initial content by offset addresses.
func WithOffset(offset int64) Option {
	return options.NoError(func(c *config) {
		c.offset = offset
	})
}

// WithStart sets the trim start, cropping initial content below it.
func WithStart(addr int64) Option {
	return options.NoError(func(c *config) {
		c.start = At(addr)
	})
}

// WithEndex sets the trim end, cropping initial content at or above it.
func WithEndex(addr int64) Option {
	return options.NoError(func(c *config) {
		c.endex = At(addr)
	})
}

// WithCopy selects whether initial data and blocks are copied (the default)
// or adopted. Adopted buffers belong to the memory afterwards and must not be
// modified by the caller.
func WithCopy(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.copyData = enabled
	})
}

// WithValidation selects whether the initial state is validated (the default).
func WithValidation(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.validate = enabled
	})
}

// WithUnsignedAddresses forbids negative addresses. Mutators given a negative
// address fail with errs.ErrNegativeAddress, and Shift discards content moved
// below address 0.
func WithUnsignedAddresses() Option {
	return options.NoError(func(c *config) {
		c.unsigned = true
	})
}

type extractConfig struct {
	pattern    []byte
	step       int64
	hasPattern bool
	bound      bool
}

// ExtractOption configures Extract.
type ExtractOption = options.Option[*extractConfig]

// WithPattern fills the gaps of the extracted range with pattern, repeated
// from the start of the range.
func WithPattern(pattern []byte) ExtractOption {
	return options.NoError(func(c *extractConfig) {
		c.pattern = pattern
		c.hasPattern = true
	})
}

// WithStep keeps one address out of step, packing the kept bytes at the start
// of the range. A step of zero or less extracts nothing.
func WithStep(step int64) ExtractOption {
	return options.NoError(func(c *extractConfig) {
		c.step = step
	})
}

// WithBound sets the trim window of the result to the extracted range.
func WithBound(enabled bool) ExtractOption {
	return options.NoError(func(c *extractConfig) {
		c.bound = enabled
	})
}
