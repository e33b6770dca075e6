package block

import "sort"

// IndexAt returns the index of the block containing addr, or -1 when addr
// falls in a gap.
func (l List) IndexAt(addr int64) int {
	i := sort.Search(len(l), func(i int) bool { return l[i].Start > addr }) - 1
	if i >= 0 && addr < l[i].Endex() {
		return i
	}

	return -1
}

// IndexStart returns the index of the first block ending after addr, which is
// the first block a range starting at addr can touch. It returns len(l) when
// every block ends at or before addr.
func (l List) IndexStart(addr int64) int {
	return sort.Search(len(l), func(i int) bool { return l[i].Endex() > addr })
}

// IndexEndex returns the number of blocks starting at or before addr.
func (l List) IndexEndex(addr int64) int {
	return sort.Search(len(l), func(i int) bool { return l[i].Start > addr })
}

// indexBefore returns the number of blocks starting before addr.
func (l List) indexBefore(addr int64) int {
	return sort.Search(len(l), func(i int) bool { return l[i].Start >= addr })
}
