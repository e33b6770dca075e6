// Package hash computes content digests of block sequences.
package hash

import (
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/bytesparse/endian"
)

// Blocks returns the xxHash64 of a sequence of (start, data) blocks.
//
// Each block contributes its start address and length, little-endian, followed
// by its bytes, so two sequences hash equal only when they hold the same bytes
// at the same addresses.
func Blocks(blocks iter.Seq2[int64, []byte]) uint64 {
	engine := endian.GetLittleEndianEngine()
	d := xxhash.New()
	header := make([]byte, 0, 16)

	for start, data := range blocks {
		header = engine.AppendUint64(header[:0], uint64(start))
		header = engine.AppendUint64(header, uint64(len(data)))
		_, _ = d.Write(header)
		_, _ = d.Write(data)
	}

	return d.Sum64()
}
