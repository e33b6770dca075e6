package memory

import "github.com/arloliu/bytesparse/endian"

func (m *Memory) field(addr, size int64) ([]byte, error) {
	return m.View(At(addr), At(addr+size))
}

// ReadUint16 decodes the 2 bytes at addr. They must all be defined.
func (m *Memory) ReadUint16(addr int64, engine endian.EndianEngine) (uint16, error) {
	b, err := m.field(addr, 2)
	if err != nil {
		return 0, err
	}

	return engine.Uint16(b), nil
}

// ReadUint32 decodes the 4 bytes at addr. They must all be defined.
func (m *Memory) ReadUint32(addr int64, engine endian.EndianEngine) (uint32, error) {
	b, err := m.field(addr, 4)
	if err != nil {
		return 0, err
	}

	return engine.Uint32(b), nil
}

// ReadUint64 decodes the 8 bytes at addr. They must all be defined.
func (m *Memory) ReadUint64(addr int64, engine endian.EndianEngine) (uint64, error) {
	b, err := m.field(addr, 8)
	if err != nil {
		return 0, err
	}

	return engine.Uint64(b), nil
}

// WriteUint16 encodes v at addr.
func (m *Memory) WriteUint16(addr int64, v uint16, engine endian.EndianEngine) error {
	return m.Write(addr, Bytes(engine.AppendUint16(nil, v)), false)
}

// WriteUint32 encodes v at addr.
func (m *Memory) WriteUint32(addr int64, v uint32, engine endian.EndianEngine) error {
	return m.Write(addr, Bytes(engine.AppendUint32(nil, v)), false)
}

// WriteUint64 encodes v at addr.
func (m *Memory) WriteUint64(addr int64, v uint64, engine endian.EndianEngine) error {
	return m.Write(addr, Bytes(engine.AppendUint64(nil, v)), false)
}
