package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/bytesparse/memory"
)

var (
	dumpStart string
	dumpEndex string
	dumpWidth int
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <image>...",
		Short: "Hex dump composed images, showing gaps",
		Long: `The dump command prints a hex dump of the selected range. Addresses
holding no byte are shown as "--". Rows made only of gaps are folded into
a single "*" line.

Example:
  sparsectl dump boot.bin@0x08000000 --start 0x08000000 --endex 0x08000100
  sparsectl dump patch.bin@0x40 base.bin --width 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}

	cmd.Flags().StringVar(&dumpStart, "start", "", "First address (default: image start)")
	cmd.Flags().StringVar(&dumpEndex, "endex", "", "Address after the last one (default: image end)")
	cmd.Flags().IntVar(&dumpWidth, "width", 16, "Bytes per row")

	return cmd
}

// dumpBlock is one block of the dump command JSON result.
type dumpBlock struct {
	Start int64  `json:"start"`
	Data  string `json:"data"`
}

func runDump(args []string) error {
	if dumpWidth <= 0 {
		return fmt.Errorf("invalid width %d", dumpWidth)
	}

	start, err := parseEndpoint(dumpStart)
	if err != nil {
		return err
	}
	endex, err := parseEndpoint(dumpEndex)
	if err != nil {
		return err
	}

	m, err := openImages(args)
	if err != nil {
		return err
	}

	span := m.Bound(start, endex)

	if jsonOut {
		blocks := []dumpBlock{}
		for addr, data := range m.Blocks(memory.At(span.Start), memory.At(span.Endex)) {
			blocks = append(blocks, dumpBlock{Start: addr, Data: hex.EncodeToString(data)})
		}

		return printJSON(blocks)
	}

	for _, line := range dumpLines(m, span, dumpWidth) {
		printInfo("%s\n", line)
	}

	return nil
}

// dumpLines renders span as rows of width cells.
func dumpLines(m *memory.Memory, span memory.Span, width int) []string {
	var lines []string
	folded := false

	for row := span.Start; row < span.Endex; row += int64(width) {
		end := min(row+int64(width), span.Endex)

		var hexCol, textCol strings.Builder
		defined := false
		for c := range m.Values(memory.At(row), memory.At(end)) {
			if !c.Defined {
				hexCol.WriteString(" --")
				textCol.WriteByte(' ')
				continue
			}

			defined = true
			fmt.Fprintf(&hexCol, " %02x", c.Value)
			if c.Value >= 0x20 && c.Value < 0x7f {
				textCol.WriteByte(c.Value)
			} else {
				textCol.WriteByte('.')
			}
		}

		if !defined {
			if !folded {
				lines = append(lines, "*")
				folded = true
			}
			continue
		}
		folded = false

		pad := strings.Repeat("   ", width-int(end-row))
		lines = append(lines, fmt.Sprintf("%08x:%s%s  |%s|", row, hexCol.String(), pad, textCol.String()))
	}

	return lines
}
