// Package block provides the storage layer of a sparse memory: an ordered
// list of address-tagged byte runs and the primitives that edit it.
//
// # Canonical Form
//
// A List is canonical when its blocks are sorted by start address, every
// block holds at least one byte, and consecutive blocks are separated by at
// least one unused address (they neither overlap nor touch). Every mutating
// primitive in this package takes a canonical list and leaves it canonical,
// merging blocks that end up adjacent.
//
// # Lookups
//
// IndexAt, IndexStart and IndexEndex locate blocks by address with a binary
// search, so a lookup costs O(log n) in the number of blocks:
//
//	l := block.List{{Start: 2, Data: []byte("234")}, {Start: 8, Data: []byte("89A")}}
//	l.IndexAt(3)    // 0
//	l.IndexAt(5)    // -1, address 5 is a gap
//	l.IndexStart(5) // 1, first block ending after 5
//	l.IndexEndex(8) // 2, blocks starting at or before 8
//
// # Ownership
//
// Place copies the bytes it is given. The remaining primitives re-slice the
// data already held by the list, so a List must not share backing arrays with
// another List that is edited independently. Use Clone to obtain an
// independent copy.
package block
