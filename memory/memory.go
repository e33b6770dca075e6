package memory

import (
	"bytes"
	"fmt"
	"iter"
	"strings"

	"github.com/arloliu/bytesparse/block"
	"github.com/arloliu/bytesparse/errs"
	"github.com/arloliu/bytesparse/internal/options"
)

// stringLimit is the content size above which String prints a summary
// instead of every block.
const stringLimit = 1000

// Memory is a sparse byte-addressable memory.
//
// The zero value is an empty memory without trim window, ready to use.
type Memory struct {
	blocks       block.List
	trimStart    int64
	trimEndex    int64
	hasTrimStart bool
	hasTrimEndex bool
	unsigned     bool
}

// New creates a Memory configured by opts.
//
// At most one of WithData, WithBlocks and WithMemory may be given.
func New(opts ...Option) (*Memory, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	m := &Memory{unsigned: cfg.unsigned}

	switch {
	case cfg.hasData:
		if len(cfg.data) > 0 {
			m.blocks = block.List{{Start: cfg.offset, Data: adopt(cfg.data, cfg.copyData)}}
		}
	case cfg.hasBlocks:
		m.blocks = make(block.List, 0, len(cfg.blocks))
		for _, b := range cfg.blocks {
			m.blocks = append(m.blocks, block.Block{Start: b.Start + cfg.offset, Data: adopt(b.Data, cfg.copyData)})
		}
		if cfg.validate {
			if err := m.blocks.Validate(); err != nil {
				return nil, err
			}
		}
	case cfg.hasSource && cfg.source != nil:
		m.blocks = cfg.source.blocks.Clone()
		m.blocks.Shift(cfg.offset)
	}

	if a, ok := cfg.start.Addr(); ok {
		m.trimStart, m.hasTrimStart = a, true
	}
	if a, ok := cfg.endex.Addr(); ok {
		m.trimEndex, m.hasTrimEndex = a, true
		if m.hasTrimStart && m.trimEndex < m.trimStart {
			m.trimEndex = m.trimStart
		}
	}

	if m.unsigned {
		if m.hasTrimStart && m.trimStart < 0 {
			return nil, negativeAddress(m.trimStart)
		}
		if len(m.blocks) > 0 && m.blocks[0].Start < 0 {
			return nil, negativeAddress(m.blocks[0].Start)
		}
	}

	m.applyTrim()

	if cfg.validate {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// FromBytes creates a Memory holding a copy of data at offset.
func FromBytes(data []byte, offset int64) *Memory {
	m := &Memory{}
	if len(data) > 0 {
		m.blocks = block.List{{Start: offset, Data: bytes.Clone(data)}}
	}

	return m
}

// FromBlocks creates a Memory from canonical blocks.
func FromBlocks(blocks []block.Block, opts ...Option) (*Memory, error) {
	return New(append([]Option{WithBlocks(blocks)}, opts...)...)
}

// FromUnsortedBlocks creates a Memory from blocks in any order, possibly
// overlapping. Later blocks overwrite earlier ones.
func FromUnsortedBlocks(blocks []block.Block, opts ...Option) (*Memory, error) {
	return New(append([]Option{WithBlocks(block.Collapse(blocks)), WithCopy(false)}, opts...)...)
}

// FromValues creates a Memory from a sequence of cells, the first one at offset.
func FromValues(values iter.Seq[Cell], offset int64) *Memory {
	m := &Memory{}
	var run []byte
	runStart, addr := offset, offset

	for c := range values {
		if c.Defined {
			if len(run) == 0 {
				runStart = addr
			}
			run = append(run, c.Value)
		} else if len(run) > 0 {
			m.blocks = append(m.blocks, block.Block{Start: runStart, Data: run})
			run = nil
		}
		addr++
	}

	if len(run) > 0 {
		m.blocks = append(m.blocks, block.Block{Start: runStart, Data: run})
	}

	return m
}

func adopt(data []byte, copyData bool) []byte {
	if copyData {
		return bytes.Clone(data)
	}

	return data[:len(data):len(data)]
}

// Clone returns a deep copy of the memory, trim window included.
func (m *Memory) Clone() *Memory {
	c := *m
	c.blocks = m.blocks.Clone()

	return &c
}

// Unsigned reports whether negative addresses are forbidden.
func (m *Memory) Unsigned() bool {
	return m.unsigned
}

// ContentStart returns the address of the first byte. Without content it
// returns the trim start, or 0.
func (m *Memory) ContentStart() int64 {
	if len(m.blocks) > 0 {
		return m.blocks[0].Start
	}
	if m.hasTrimStart {
		return m.trimStart
	}

	return 0
}

// ContentEndex returns the address following the last byte. Without content
// it equals ContentStart.
func (m *Memory) ContentEndex() int64 {
	if len(m.blocks) > 0 {
		return m.blocks[len(m.blocks)-1].Endex()
	}

	return m.ContentStart()
}

// ContentEndin returns ContentEndex - 1.
func (m *Memory) ContentEndin() int64 {
	return m.ContentEndex() - 1
}

// ContentSpan returns [ContentStart, ContentEndex).
func (m *Memory) ContentSpan() Span {
	return Span{Start: m.ContentStart(), Endex: m.ContentEndex()}
}

// ContentParts returns the number of blocks.
func (m *Memory) ContentParts() int {
	return len(m.blocks)
}

// ContentSize returns the number of stored bytes.
func (m *Memory) ContentSize() int64 {
	return m.blocks.ContentSize()
}

// IsEmpty reports whether the memory stores no byte.
func (m *Memory) IsEmpty() bool {
	return len(m.blocks) == 0
}

// Start returns the trim start if set, otherwise ContentStart.
func (m *Memory) Start() int64 {
	if m.hasTrimStart {
		return m.trimStart
	}

	return m.ContentStart()
}

// Endex returns the trim end if set, otherwise ContentEndex.
func (m *Memory) Endex() int64 {
	if m.hasTrimEndex {
		return m.trimEndex
	}

	return m.ContentEndex()
}

// Endin returns Endex - 1.
func (m *Memory) Endin() int64 {
	return m.Endex() - 1
}

// Span returns [Start, Endex).
func (m *Memory) Span() Span {
	return Span{Start: m.Start(), Endex: m.Endex()}
}

// Len returns Endex - Start.
func (m *Memory) Len() int64 {
	return m.Endex() - m.Start()
}

// Contiguous reports whether the whole span is covered without gaps.
func (m *Memory) Contiguous() bool {
	switch len(m.blocks) {
	case 0:
		return m.Start() == m.Endex()
	case 1:
		return m.blocks[0].Start == m.Start() && m.blocks[0].Endex() == m.Endex()
	default:
		return false
	}
}

// TrimStart returns the trim start and whether it is set.
func (m *Memory) TrimStart() (int64, bool) {
	return m.trimStart, m.hasTrimStart
}

// TrimEndex returns the trim end and whether it is set.
func (m *Memory) TrimEndex() (int64, bool) {
	return m.trimEndex, m.hasTrimEndex
}

// TrimSpan returns the trim window with Unbounded for the sides not set.
func (m *Memory) TrimSpan() OpenSpan {
	span := OpenSpan{Start: Unbounded, Endex: Unbounded}
	if m.hasTrimStart {
		span.Start = At(m.trimStart)
	}
	if m.hasTrimEndex {
		span.Endex = At(m.trimEndex)
	}

	return span
}

// SetTrimStart sets the trim start, or removes it when addr is not an
// address. Content below the new start is discarded. A trim end below the new
// start is raised to it.
func (m *Memory) SetTrimStart(addr Endpoint) error {
	a, ok := addr.Addr()
	if ok {
		if err := m.checkAddr(a); err != nil {
			return err
		}
	}

	m.trimStart, m.hasTrimStart = a, ok
	if ok && m.hasTrimEndex && m.trimEndex < a {
		m.trimEndex = a
	}

	m.applyTrim()

	return nil
}

// SetTrimEndex sets the trim end, or removes it when addr is not an address.
// Content at or above the new end is discarded. A trim start above the new
// end is lowered to it.
func (m *Memory) SetTrimEndex(addr Endpoint) error {
	a, ok := addr.Addr()
	if ok {
		if err := m.checkAddr(a); err != nil {
			return err
		}
	}

	m.trimEndex, m.hasTrimEndex = a, ok
	if ok && m.hasTrimStart && m.trimStart > a {
		m.trimStart = a
	}

	m.applyTrim()

	return nil
}

// SetTrimSpan sets both sides of the trim window. An end below the start is
// raised to it.
func (m *Memory) SetTrimSpan(start, endex Endpoint) error {
	s, sOK := start.Addr()
	e, eOK := endex.Addr()
	if sOK {
		if err := m.checkAddr(s); err != nil {
			return err
		}
	}
	if eOK {
		if err := m.checkAddr(e); err != nil {
			return err
		}
	}

	if sOK && eOK && e < s {
		e = s
	}

	m.trimStart, m.hasTrimStart = s, sOK
	m.trimEndex, m.hasTrimEndex = e, eOK
	m.applyTrim()

	return nil
}

// Bound resolves a range against the memory: Auto and Unbounded sides take
// Start and Endex, explicit sides are clamped to the trim window, and an
// inverted result collapses onto its start.
func (m *Memory) Bound(start, endex Endpoint) Span {
	s, ok := start.Addr()
	if ok {
		if m.hasTrimStart && s < m.trimStart {
			s = m.trimStart
		}
		if m.hasTrimEndex && s > m.trimEndex {
			s = m.trimEndex
		}
	} else {
		s = m.Start()
	}

	e, ok := endex.Addr()
	if ok {
		if m.hasTrimEndex && e > m.trimEndex {
			e = m.trimEndex
		}
		if m.hasTrimStart && e < m.trimStart {
			e = m.trimStart
		}
	} else {
		e = m.Endex()
	}

	return Span{Start: s, Endex: max(e, s)}
}

// Validate checks the internal invariants: a consistent trim window and a
// canonical block list lying within it.
func (m *Memory) Validate() error {
	if m.hasTrimStart && m.hasTrimEndex && m.trimEndex < m.trimStart {
		return fmt.Errorf("%w: trim start %d, trim endex %d", errs.ErrInvalidBounds, m.trimStart, m.trimEndex)
	}

	if err := m.blocks.Validate(); err != nil {
		return err
	}

	if m.unsigned {
		if s := m.Start(); s < 0 {
			return negativeAddress(s)
		}
	}

	start, endex := m.Start(), m.Endex()
	if len(m.blocks) == 0 {
		if endex < start {
			return fmt.Errorf("%w: start %d, endex %d", errs.ErrInvalidBounds, start, endex)
		}

		return nil
	}

	if endex <= start {
		return fmt.Errorf("%w: start %d, endex %d", errs.ErrInvalidBounds, start, endex)
	}

	for i, b := range m.blocks {
		if b.Start < start || endex < b.Endex() {
			return fmt.Errorf("%w: block %d spans [%d, %d) outside [%d, %d)",
				errs.ErrInvalidBlockBounds, i, b.Start, b.Endex(), start, endex)
		}
	}

	return nil
}

// String prints the blocks of a small memory, or a summary of a large one.
func (m *Memory) String() string {
	if m.ContentSize() > stringLimit {
		return fmt.Sprintf("<Memory[0x%X:0x%X] parts=%d size=%d>", m.Start(), m.Endex(), len(m.blocks), m.ContentSize())
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range m.blocks {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.String())
	}
	sb.WriteByte(']')

	return sb.String()
}

// ==============================================================================
// Internal helpers

func negativeAddress(addr int64) error {
	return fmt.Errorf("%w: %d", errs.ErrNegativeAddress, addr)
}

func (m *Memory) checkAddr(addrs ...int64) error {
	if !m.unsigned {
		return nil
	}

	for _, a := range addrs {
		if a < 0 {
			return negativeAddress(a)
		}
	}

	return nil
}

func (m *Memory) checkRange(start, endex Endpoint) error {
	if s, ok := start.Addr(); ok {
		if err := m.checkAddr(s); err != nil {
			return err
		}
	}
	if e, ok := endex.Addr(); ok {
		if err := m.checkAddr(e); err != nil {
			return err
		}
	}

	return nil
}

// lowLimit returns the lowest address content may occupy, if any.
func (m *Memory) lowLimit() (int64, bool) {
	if m.hasTrimStart {
		if m.unsigned {
			return max(m.trimStart, 0), true
		}

		return m.trimStart, true
	}
	if m.unsigned {
		return 0, true
	}

	return 0, false
}

// applyTrim discards content outside the allowed window.
func (m *Memory) applyTrim() {
	if low, ok := m.lowLimit(); ok {
		m.blocks.ClearBefore(low)
	}
	if m.hasTrimEndex {
		m.blocks.ClearAfter(m.trimEndex)
	}
}

// clip intersects [start, endex) with the allowed window.
func (m *Memory) clip(start, endex int64) (int64, int64) {
	if low, ok := m.lowLimit(); ok && start < low {
		start = low
	}
	if m.hasTrimEndex && endex > m.trimEndex {
		endex = m.trimEndex
	}

	return start, endex
}

// deleteRange deletes [start, endex) clipped to the allowed window. Bytes
// moving down never cross the window start.
func (m *Memory) deleteRange(start, endex int64) {
	s, e := m.clip(start, endex)
	if s < e {
		m.blocks.Delete(s, e)
	}
}

// inWindow reports whether addr lies within the allowed window.
func (m *Memory) inWindow(addr int64) bool {
	s, e := m.clip(addr, addr+1)
	return s < e
}

// place writes data at addr, clipped to the allowed window.
func (m *Memory) place(addr int64, data []byte) {
	if len(data) == 0 {
		return
	}

	s, e := m.clip(addr, addr+int64(len(data)))
	if s >= e {
		return
	}

	m.blocks.Place(s, data[s-addr:e-addr])
}

// span resolves Auto and Unbounded sides to Start and Endex.
func (m *Memory) span(start, endex Endpoint) (int64, int64) {
	s, ok := start.Addr()
	if !ok {
		s = m.Start()
	}

	e, ok := endex.Addr()
	if !ok {
		e = m.Endex()
	}

	return s, e
}

// setBound sets the trim window to [start, max(start, endex)) without cropping.
func (m *Memory) setBound(start, endex int64) {
	m.trimStart, m.hasTrimStart = start, true
	m.trimEndex, m.hasTrimEndex = max(start, endex), true
}
