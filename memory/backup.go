package memory

import (
	"iter"
	"slices"
)

// CellBackup records the cell held by one address.
type CellBackup struct {
	Address int64
	Cell    Cell
}

// ReserveBackup records what Reserve or Insert discards: the bytes pushed
// past the trim end, if any.
type ReserveBackup struct {
	Address int64
	Size    int64
	Tail    *Memory
}

// ShiftBackup records the bytes Shift moves out of the allowed window.
type ShiftBackup struct {
	Offset int64
	Lost   *Memory
}

// CropBackup records the bytes Crop removes on each side.
type CropBackup struct {
	Head *Memory
	Tail *Memory
}

// PopBackup records the cell removed by Pop.
type PopBackup struct {
	Address int64
	Cell    Cell
	Last    bool
}

// TrimBackup records a trim window and the bytes a new window crops.
type TrimBackup struct {
	Window OpenSpan
	Crop   CropBackup
}

// rangeBackup copies [start, endex) into a memory bounded to that range.
func (m *Memory) rangeBackup(start, endex int64) *Memory {
	out := &Memory{unsigned: m.unsigned, blocks: m.blocks.Extract(start, endex)}
	out.setBound(start, endex)

	return out
}

// rangeRestore puts back the span of a range backup, gaps included.
func (m *Memory) rangeRestore(backup *Memory) {
	if backup == nil {
		return
	}

	m.blocks.Clear(backup.Start(), backup.Endex())
	for _, b := range backup.blocks {
		m.blocks.Place(b.Start, b.Data)
	}
}

// PokeBackup records the cell Poke(addr, ...) overwrites.
func (m *Memory) PokeBackup(addr int64) CellBackup {
	return CellBackup{Address: addr, Cell: m.Peek(addr)}
}

// PokeRestore undoes Poke.
func (m *Memory) PokeRestore(backup CellBackup) {
	m.pokeCell(backup.Address, backup.Cell)
}

// WriteBackup records the range Write(addr, src, ...) can change.
func (m *Memory) WriteBackup(addr int64, src Source) *Memory {
	if src.kind == memorySource {
		return m.rangeBackup(addr+src.mem.Start(), addr+src.mem.Endex())
	}

	return m.rangeBackup(addr, addr+src.size())
}

// WriteRestore undoes Write.
func (m *Memory) WriteRestore(backup *Memory) {
	m.rangeRestore(backup)
}

// FillBackup records the range Fill(start, endex, ...) overwrites.
func (m *Memory) FillBackup(start, endex Endpoint) *Memory {
	s, e := m.span(start, endex)
	return m.rangeBackup(s, e)
}

// FillRestore undoes Fill.
func (m *Memory) FillRestore(backup *Memory) {
	m.rangeRestore(backup)
}

// FloodBackup records the gaps Flood(start, endex, ...) fills.
func (m *Memory) FloodBackup(start, endex Endpoint) []Span {
	s, e := m.span(start, endex)
	cs, ce := m.clip(s, e)

	return m.gapSpans(cs, ce)
}

// FloodRestore undoes Flood.
func (m *Memory) FloodRestore(gaps []Span) {
	for _, g := range gaps {
		m.blocks.Clear(g.Start, g.Endex)
	}
}

// ClearBackup records the range Clear(start, endex) removes.
func (m *Memory) ClearBackup(start, endex Endpoint) *Memory {
	s, e := m.span(start, endex)
	return m.rangeBackup(s, e)
}

// ClearRestore undoes Clear.
func (m *Memory) ClearRestore(backup *Memory) {
	m.rangeRestore(backup)
}

// CutBackup records the range Cut(start, endex, ...) removes.
func (m *Memory) CutBackup(start, endex Endpoint) *Memory {
	return m.ClearBackup(start, endex)
}

// CutRestore undoes Cut.
func (m *Memory) CutRestore(backup *Memory) {
	m.rangeRestore(backup)
}

// DeleteBackup records the range Delete(start, endex) removes.
func (m *Memory) DeleteBackup(start, endex Endpoint) *Memory {
	s, e := m.span(start, endex)
	s, e = m.clip(s, e)

	return m.rangeBackup(s, max(s, e))
}

// DeleteRestore undoes Delete.
func (m *Memory) DeleteRestore(backup *Memory) {
	if backup == nil {
		return
	}

	m.blocks.Reserve(backup.Start(), backup.Len())
	for _, b := range backup.blocks {
		m.blocks.Place(b.Start, b.Data)
	}
}

// RemoveBackup records the range Remove(token, start, endex) deletes.
func (m *Memory) RemoveBackup(token []byte, start, endex Endpoint) (*Memory, error) {
	addr, err := m.Index(token, start, endex)
	if err != nil {
		return nil, err
	}

	return m.rangeBackup(addr, addr+int64(len(token))), nil
}

// RemoveRestore undoes Remove.
func (m *Memory) RemoveRestore(backup *Memory) {
	m.DeleteRestore(backup)
}

// CropBackup records the bytes Crop(start, endex) removes.
func (m *Memory) CropBackup(start, endex Endpoint) CropBackup {
	var backup CropBackup
	if s, ok := start.Addr(); ok {
		backup.Head = m.rangeBackup(min(m.ContentStart(), s), s)
	}
	if e, ok := endex.Addr(); ok {
		backup.Tail = m.rangeBackup(e, max(m.ContentEndex(), e))
	}

	return backup
}

// CropRestore undoes Crop.
func (m *Memory) CropRestore(backup CropBackup) {
	m.rangeRestore(backup.Head)
	m.rangeRestore(backup.Tail)
}

// ReserveBackup records the bytes Reserve(addr, size) pushes past the trim end.
func (m *Memory) ReserveBackup(addr, size int64) ReserveBackup {
	backup := ReserveBackup{Address: addr, Size: max(size, 0)}
	if m.hasTrimEndex && size > 0 {
		backup.Tail = m.rangeBackup(max(addr, m.trimEndex-size), max(addr, m.trimEndex))
	}

	return backup
}

// ReserveRestore undoes Reserve.
func (m *Memory) ReserveRestore(backup ReserveBackup) {
	m.blocks.Delete(backup.Address, backup.Address+backup.Size)
	m.rangeRestore(backup.Tail)
}

// InsertBackup records the bytes Insert(addr, src) pushes past the trim end.
func (m *Memory) InsertBackup(addr int64, src Source) ReserveBackup {
	return m.ReserveBackup(addr, src.size())
}

// InsertRestore undoes Insert.
func (m *Memory) InsertRestore(backup ReserveBackup) {
	m.ReserveRestore(backup)
}

// ShiftBackup records the bytes Shift(offset) discards.
func (m *Memory) ShiftBackup(offset int64) ShiftBackup {
	backup := ShiftBackup{Offset: offset}
	switch {
	case offset < 0:
		if low, ok := m.lowLimit(); ok {
			limit := low - offset
			backup.Lost = m.rangeBackup(min(m.ContentStart(), limit), limit)
		}
	case offset > 0:
		if m.hasTrimEndex {
			limit := m.trimEndex - offset
			backup.Lost = m.rangeBackup(limit, max(m.ContentEndex(), limit))
		}
	}

	return backup
}

// ShiftRestore undoes Shift.
func (m *Memory) ShiftRestore(backup ShiftBackup) {
	m.blocks.Shift(-backup.Offset)
	m.rangeRestore(backup.Lost)
}

// AppendBackup records the address Append fills.
func (m *Memory) AppendBackup() CellBackup {
	return CellBackup{Address: m.ContentEndex(), Cell: Gap}
}

// AppendRestore undoes Append.
func (m *Memory) AppendRestore(backup CellBackup) {
	m.pokeCell(backup.Address, backup.Cell)
}

// ExtendBackup records the range Extend(src, offset) can change. A Sub
// source with blocks below its origin overwrites bytes before the current
// end, so the whole written range is kept.
func (m *Memory) ExtendBackup(src Source, offset int64) *Memory {
	return m.WriteBackup(m.ContentEndex()+offset, src)
}

// ExtendRestore undoes Extend.
func (m *Memory) ExtendRestore(backup *Memory) {
	m.rangeRestore(backup)
}

// PopBackup records the cell Pop(addr) removes.
func (m *Memory) PopBackup(addr Endpoint) PopBackup {
	if a, ok := addr.Addr(); ok {
		return PopBackup{Address: a, Cell: m.Peek(a)}
	}

	last := m.ContentEndin()

	return PopBackup{Address: last, Cell: m.Peek(last), Last: true}
}

// PopRestore undoes Pop.
func (m *Memory) PopRestore(backup PopBackup) {
	if !backup.Last {
		if !m.inWindow(backup.Address) {
			return
		}
		m.blocks.Reserve(backup.Address, 1)
	}
	if backup.Cell.Defined {
		m.blocks.Place(backup.Address, []byte{backup.Cell.Value})
	}
}

// PopItemBackup records the item PopItem removes.
func (m *Memory) PopItemBackup() CellBackup {
	last := m.ContentEndin()
	return CellBackup{Address: last, Cell: m.Peek(last)}
}

// PopItemRestore undoes PopItem.
func (m *Memory) PopItemRestore(backup CellBackup) {
	m.pokeCell(backup.Address, backup.Cell)
}

// SetDefaultBackup records the cell SetDefault(addr, ...) may fill.
func (m *Memory) SetDefaultBackup(addr int64) CellBackup {
	return m.PokeBackup(addr)
}

// SetDefaultRestore undoes SetDefault.
func (m *Memory) SetDefaultRestore(backup CellBackup) {
	m.PokeRestore(backup)
}

// UpdateBackup records the cells Update(items) overwrites. The sequence is
// consumed, so pass the same pairs to Update afterwards.
func (m *Memory) UpdateBackup(items iter.Seq2[int64, Cell]) []CellBackup {
	var backups []CellBackup
	for addr := range items {
		backups = append(backups, m.PokeBackup(addr))
	}

	return backups
}

// UpdateRestore undoes Update.
func (m *Memory) UpdateRestore(backups []CellBackup) {
	for _, b := range slices.Backward(backups) {
		m.PokeRestore(b)
	}
}

// UpdateFromBackup records the range UpdateFrom(other, ...) can change.
func (m *Memory) UpdateFromBackup(other *Memory) *Memory {
	return m.WriteBackup(0, Sub(other))
}

// UpdateFromRestore undoes UpdateFrom.
func (m *Memory) UpdateFromRestore(backup *Memory) {
	m.rangeRestore(backup)
}

// TrimStartBackup records what SetTrimStart(addr) changes.
func (m *Memory) TrimStartBackup(addr Endpoint) TrimBackup {
	backup := TrimBackup{Window: m.TrimSpan()}
	if a, ok := addr.Addr(); ok {
		backup.Crop = m.CropBackup(At(a), Auto)
	}

	return backup
}

// TrimEndexBackup records what SetTrimEndex(addr) changes.
func (m *Memory) TrimEndexBackup(addr Endpoint) TrimBackup {
	backup := TrimBackup{Window: m.TrimSpan()}
	if a, ok := addr.Addr(); ok {
		backup.Crop = m.CropBackup(Auto, At(a))
	}

	return backup
}

// TrimSpanBackup records what SetTrimSpan(start, endex) changes.
func (m *Memory) TrimSpanBackup(start, endex Endpoint) TrimBackup {
	backup := TrimBackup{Window: m.TrimSpan()}
	s, sOK := start.Addr()
	e, eOK := endex.Addr()
	if sOK && eOK && e < s {
		endex = At(s)
	}
	if !sOK {
		start = Auto
	}
	if !eOK {
		endex = Auto
	}
	backup.Crop = m.CropBackup(start, endex)

	return backup
}

// TrimRestore undoes SetTrimStart, SetTrimEndex or SetTrimSpan.
func (m *Memory) TrimRestore(backup TrimBackup) {
	m.trimStart, m.hasTrimStart = backup.Window.Start.Addr()
	m.trimEndex, m.hasTrimEndex = backup.Window.Endex.Addr()
	m.CropRestore(backup.Crop)
}

// Snapshot returns a deep copy of the whole state, for operations whose
// effect is not limited to a range (Repeat, Assign, DeleteStep).
func (m *Memory) Snapshot() *Memory {
	return m.Clone()
}

// RestoreSnapshot replaces the whole state with a snapshot.
func (m *Memory) RestoreSnapshot(snapshot *Memory) {
	*m = *snapshot.Clone()
}
