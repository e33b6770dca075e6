package memory

import (
	"fmt"

	"github.com/arloliu/bytesparse/errs"
)

type endpointKind uint8

const (
	autoEndpoint endpointKind = iota
	addrEndpoint
	unboundedEndpoint
)

// Endpoint is an optional address argument.
//
// The zero value is Auto, which resolves to the matching bound of the memory.
type Endpoint struct {
	addr int64
	kind endpointKind
}

var (
	// Auto resolves to the start or end of the memory.
	Auto = Endpoint{}
	// Unbounded leaves the side open.
	Unbounded = Endpoint{kind: unboundedEndpoint}
)

// At returns an Endpoint pinned to addr.
func At(addr int64) Endpoint {
	return Endpoint{addr: addr, kind: addrEndpoint}
}

// Addr returns the pinned address and true, or false for Auto and Unbounded.
func (e Endpoint) Addr() (int64, bool) {
	return e.addr, e.kind == addrEndpoint
}

// IsAuto reports whether e is Auto.
func (e Endpoint) IsAuto() bool {
	return e.kind == autoEndpoint
}

// IsUnbounded reports whether e is Unbounded.
func (e Endpoint) IsUnbounded() bool {
	return e.kind == unboundedEndpoint
}

func (e Endpoint) String() string {
	switch e.kind {
	case addrEndpoint:
		return fmt.Sprintf("%d", e.addr)
	case unboundedEndpoint:
		return "unbounded"
	default:
		return "auto"
	}
}

// Cell is the content of one address.
type Cell struct {
	Value   byte
	Defined bool
}

// Gap is the Cell of an address holding no byte.
var Gap = Cell{}

// Byte returns a defined Cell.
func Byte(v byte) Cell {
	return Cell{Value: v, Defined: true}
}

// Or returns the byte of a defined cell, or def for a gap.
func (c Cell) Or(def byte) byte {
	if c.Defined {
		return c.Value
	}

	return def
}

func (c Cell) String() string {
	if !c.Defined {
		return "--"
	}

	return fmt.Sprintf("%02x", c.Value)
}

// Span is the closed-open address interval [Start, Endex).
type Span struct {
	Start int64
	Endex int64
}

// Len returns the number of addresses in the span, or 0 when it is inverted.
func (s Span) Len() int64 {
	return max(s.Endex-s.Start, 0)
}

// Contains reports whether addr lies in the span.
func (s Span) Contains(addr int64) bool {
	return s.Start <= addr && addr < s.Endex
}

// OpenSpan is an interval whose sides may be Unbounded.
type OpenSpan struct {
	Start Endpoint
	Endex Endpoint
}

// Closed returns the span when both sides are addresses.
func (s OpenSpan) Closed() (Span, bool) {
	start, ok1 := s.Start.Addr()
	endex, ok2 := s.Endex.Addr()

	return Span{Start: start, Endex: endex}, ok1 && ok2
}

type sourceKind uint8

const (
	gapSource sourceKind = iota
	bytesSource
	valueSource
	memorySource
)

// Source is the data stored by a write: a byte string, a single byte, the
// content of another memory, or a gap. The zero value is None.
type Source struct {
	kind  sourceKind
	data  []byte
	value byte
	mem   *Memory
}

// Bytes returns a Source writing data.
func Bytes(data []byte) Source {
	return Source{kind: bytesSource, data: data}
}

// Value returns a Source writing the single byte v.
func Value(v byte) Source {
	return Source{kind: valueSource, value: v}
}

// Sub returns a Source writing the blocks of m, each at its own address
// relative to the write address.
func Sub(m *Memory) Source {
	if m == nil {
		return Source{kind: memorySource, mem: &Memory{}}
	}

	return Source{kind: memorySource, mem: m}
}

// None returns a Source that clears instead of writing.
func None() Source {
	return Source{}
}

// FromCell returns Value for a defined cell and None for a gap.
func FromCell(c Cell) Source {
	if !c.Defined {
		return None()
	}

	return Value(c.Value)
}

// size returns the number of addresses the source covers.
func (s Source) size() int64 {
	switch s.kind {
	case bytesSource:
		return int64(len(s.data))
	case memorySource:
		return s.mem.Len()
	default:
		return 1
	}
}

// cell returns the single cell of a source covering exactly one address.
func (s Source) cell() (Cell, error) {
	switch s.kind {
	case gapSource:
		return Gap, nil
	case valueSource:
		return Byte(s.value), nil
	case bytesSource:
		if len(s.data) != 1 {
			return Gap, fmt.Errorf("%w: got %d bytes", errs.ErrExpectingSingleItem, len(s.data))
		}

		return Byte(s.data[0]), nil
	default:
		if s.mem.Len() != 1 {
			return Gap, fmt.Errorf("%w: got span of %d", errs.ErrExpectingSingleItem, s.mem.Len())
		}

		return s.mem.Peek(s.mem.Start()), nil
	}
}

// pattern returns the bytes of a fill pattern.
func (s Source) pattern() ([]byte, error) {
	var p []byte
	switch s.kind {
	case valueSource:
		p = []byte{s.value}
	case bytesSource:
		p = s.data
	case memorySource:
		view, err := s.mem.View(Auto, Auto)
		if err != nil {
			return nil, err
		}
		p = view
	}

	if len(p) == 0 {
		return nil, errs.ErrEmptyPattern
	}

	return p, nil
}
