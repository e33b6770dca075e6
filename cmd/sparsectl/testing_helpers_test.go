package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeImage stores data in a temporary file and returns its file@addr argument
func writeImage(t *testing.T, name string, data []byte, addr int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return fmt.Sprintf("%s@%#x", path, addr)
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	return buf.String(), fnErr
}

// resetFlags restores every command flag to its default
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	layoutStart, layoutEndex = "", ""
	dumpStart, dumpEndex, dumpWidth = "", "", 16
	findHex, findText, findLimit = "", "", 0
	mergeOutput, mergeFlood, mergeStart, mergeEndex = "", "", "", ""
	readAt, readSize, readOrder, readCount = "", 4, "little", 1
}

// twoImages returns the arguments of "ABCD" at 0x10 and "xyz" at 0x20
func twoImages(t *testing.T) []string {
	t.Helper()
	return []string{
		writeImage(t, "base.bin", []byte("ABCD"), 0x10),
		writeImage(t, "tail.bin", []byte("xyz"), 0x20),
	}
}
