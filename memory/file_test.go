package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bytesparse/errs"
)

func writeImage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func TestLoadFile(t *testing.T) {
	path := writeImage(t, []byte("firmware"))

	m, err := LoadFile(path, 0x100)
	require.NoError(t, err)
	requireBlocks(t, m, 0x100, "firmware")

	m, err = LoadFile(path, 0x100, WithEndex(0x104))
	require.NoError(t, err)
	requireBlocks(t, m, 0x100, "firm")

	_, err = LoadFile(path, -1, WithUnsignedAddresses())
	require.ErrorIs(t, err, errs.ErrNegativeAddress)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.bin"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)

	m, err = LoadFile(writeImage(t, nil), 0)
	require.NoError(t, err)
	require.True(t, m.IsEmpty())
}

func TestMapFile(t *testing.T) {
	path := writeImage(t, []byte("bootloader"))

	m, release, err := MapFile(path, 0x8000)
	require.NoError(t, err)
	requireBlocks(t, m, 0x8000, "bootloader")

	require.NoError(t, m.Write(0x8000, Bytes([]byte("BOOT")), false))
	require.NoError(t, m.Insert(0x8004, Value('-')))
	requireBlocks(t, m, 0x8000, "BOOT-loader")

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("bootloader"), onDisk)

	require.NoError(t, release())

	_, _, err = MapFile(filepath.Join(t.TempDir(), "missing.bin"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}
