// Package memory implements a sparse, byte-addressable virtual memory.
//
// A Memory maps signed 64-bit addresses to bytes. Only the addresses that were
// written hold a value; every other address is a gap. Content is stored as a
// canonical list of blocks (see package block), so a 4 GiB address space with
// a few kilobytes of data costs a few kilobytes.
//
// # Core Types
//
//   - Memory: the sparse memory itself
//   - Endpoint: an optional address argument (At, Auto or Unbounded)
//   - Cell: the content of one address, a byte or a gap
//   - Source: what a write stores (Bytes, Value, Sub or None)
//   - Span and OpenSpan: address intervals
//
// # Addresses and Ranges
//
// Ranges are closed-open: [start, endex). Endpoint arguments select how each
// side is resolved. Auto, the zero value, takes the bound of the memory itself
// (Start or Endex). Unbounded asks for an open side, which makes the forward
// iterators infinite. At pins an explicit address.
//
//	mem, _ := memory.FromBlocks([]block.Block{
//	    {Start: 2, Data: []byte("Hello")},
//	    {Start: 10, Data: []byte("World!")},
//	})
//	mem.Span()                              // {2 16}
//	mem.Peek(3)                             // Byte('e')
//	mem.Peek(8)                             // Gap
//	mem.Find([]byte("World"), memory.Auto, memory.Auto) // 10, true
//
// # Trim Window
//
// An optional trim window limits where content may exist. Writes are clipped
// to it, content pushed past it by insertions or shifts is discarded, and
// setting it crops existing content immediately:
//
//	mem, _ := memory.New(memory.WithData([]byte("ABCDEF")), memory.WithEndex(4))
//	mem.ToBytes(memory.Auto, memory.Auto) // "ABCD"
//
// # Writing
//
// Mutators come in two families. Overwriting operations (Poke, Write, Fill,
// Flood, Clear, Crop) never move existing bytes. Structural operations
// (Insert, Delete, Reserve, Shift, Pop) move every byte above the edited
// address. Fill tiles a pattern over a range; Flood does the same but only
// into gaps:
//
//	mem, _ := memory.FromBlocks([]block.Block{{Start: 1, Data: []byte("ABC")}, {Start: 6, Data: []byte("xyz")}})
//	mem.Flood(memory.At(3), memory.At(7), memory.Bytes([]byte("123")))
//	mem.ToBlocks(memory.Auto, memory.Auto) // [[1, "ABC23xyz"]]
//
// # Undo
//
// Every mutator has a XxxBackup method, called with the same arguments before
// the mutation, and a XxxRestore method that undoes it:
//
//	backup := mem.DeleteBackup(memory.At(4), memory.At(9))
//	_ = mem.Delete(memory.At(4), memory.At(9))
//	_ = mem.DeleteRestore(backup)
//
// Backups are independent of the memory they were taken from.
//
// # Errors
//
// Errors wrap the sentinels of package errs. A mutator that returns an error
// leaves the memory unchanged.
//
// # Iteration
//
// Values, Keys, Items, Intervals, Gaps and Blocks return iter.Seq sequences
// that read the memory while they are consumed. Modifying the memory during
// such a loop is not supported; collect what is needed first. Sequences can be
// restarted by ranging over them again.
//
// # Thread Safety
//
// A Memory is not safe for concurrent use. Concurrent readers are fine as long
// as no goroutine mutates the memory.
package memory
