package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/bytesparse/memory"
)

var (
	mergeOutput string
	mergeFlood  string
	mergeStart  string
	mergeEndex  string
)

// defaultFill is the byte written for gaps of a flat image, the erased state
// of most flash memories.
const defaultFill = 0xFF

func init() {
	rootCmd.AddCommand(newMergeCmd())
}

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <image>... -o <output>",
		Short: "Compose images into one flat image file",
		Long: `The merge command composes the given images, later ones overwriting
earlier ones, and writes the selected range as a flat binary file. Gaps are
written with the --flood pattern, repeated from the start of each gap's
range, or with 0xFF when no pattern is given.

Example:
  sparsectl merge boot.bin@0x08000000 app.bin@0x08004000 -o flash.bin
  sparsectl merge base.bin patch.bin@0x120 --flood 00 -o patched.bin`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(args)
		},
	}

	cmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Output file (required)")
	cmd.Flags().StringVar(&mergeFlood, "flood", "", "Gap fill pattern, as hex (default ff)")
	cmd.Flags().StringVar(&mergeStart, "start", "", "First address written (default: image start)")
	cmd.Flags().StringVar(&mergeEndex, "endex", "", "Address after the last one written (default: image end)")

	return cmd
}

// mergeResult is the merge command result.
type mergeResult struct {
	Output string `json:"output"`
	Start  int64  `json:"start"`
	Endex  int64  `json:"endex"`
	Size   int64  `json:"size"`
	Filled int64  `json:"filled"`
	Digest string `json:"digest"`
}

func runMerge(args []string) error {
	if mergeOutput == "" {
		return errors.New("an output file is required (-o)")
	}

	pattern := []byte{defaultFill}
	if mergeFlood != "" {
		p, err := parseHex(mergeFlood)
		if err != nil {
			return err
		}
		pattern = p
	}

	start, err := parseEndpoint(mergeStart)
	if err != nil {
		return err
	}
	endex, err := parseEndpoint(mergeEndex)
	if err != nil {
		return err
	}

	m, err := openImages(args)
	if err != nil {
		return err
	}

	span := m.Bound(start, endex)
	filled := gapSize(m, span)
	if err := m.Flood(memory.At(span.Start), memory.At(span.Endex), memory.Bytes(pattern)); err != nil {
		return err
	}
	if err := m.Crop(memory.At(span.Start), memory.At(span.Endex)); err != nil {
		return err
	}

	level.Debug(logger).Log("msg", "flooded gaps", "bytes", filled,
		"start", fmt.Sprintf("%#x", span.Start), "endex", fmt.Sprintf("%#x", span.Endex))

	if err := writeFlat(mergeOutput, m, span); err != nil {
		return err
	}

	result := mergeResult{
		Output: mergeOutput,
		Start:  span.Start,
		Endex:  span.Endex,
		Size:   span.Len(),
		Filled: filled,
		Digest: fmt.Sprintf("%016x", m.Digest()),
	}

	if jsonOut {
		return printJSON(result)
	}

	printInfo("Wrote %s (%s) covering %#x..%#x, %d gap bytes filled\n",
		result.Output, humanize.IBytes(uint64(result.Size)), result.Start, result.Endex, result.Filled)

	return nil
}

// gapSize counts the addresses of span holding no byte.
func gapSize(m *memory.Memory, span memory.Span) int64 {
	var n int64
	for gap := range m.Gaps(memory.At(span.Start), memory.At(span.Endex), true) {
		if closed, ok := gap.Closed(); ok {
			n += closed.Len()
		}
	}

	return n
}

// writeFlat writes the bytes of span to path. The span must be fully defined.
func writeFlat(path string, m *memory.Memory, span memory.Span) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	for _, data := range m.Blocks(memory.At(span.Start), memory.At(span.Endex)) {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return w.Flush()
}
