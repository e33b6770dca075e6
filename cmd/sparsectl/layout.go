package main

import (
	"cmp"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/bytesparse/memory"
)

var (
	layoutStart string
	layoutEndex string
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <image>...",
		Short: "List the blocks and gaps of composed images",
		Long: `The layout command lists, in address order, every block of defined
bytes and every gap between them within the selected range.

Example:
  sparsectl layout boot.bin@0x08000000 app.bin@0x08004000
  sparsectl layout dump.bin --start 0x100 --endex 0x200 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}

	cmd.Flags().StringVar(&layoutStart, "start", "", "First address (default: image start)")
	cmd.Flags().StringVar(&layoutEndex, "endex", "", "Address after the last one (default: image end)")

	return cmd
}

// layoutEntry is one block or gap of the layout command result.
type layoutEntry struct {
	Kind  string `json:"kind"`
	Start int64  `json:"start"`
	Endex int64  `json:"endex"`
	Size  int64  `json:"size"`
}

func collectLayout(m *memory.Memory, start, endex memory.Endpoint) []layoutEntry {
	entries := []layoutEntry{}
	for span := range m.Intervals(start, endex) {
		entries = append(entries, layoutEntry{Kind: "block", Start: span.Start, Endex: span.Endex, Size: span.Len()})
	}

	for gap := range m.Gaps(start, endex, true) {
		span, ok := gap.Closed()
		if !ok || span.Len() == 0 {
			continue
		}
		entries = append(entries, layoutEntry{Kind: "gap", Start: span.Start, Endex: span.Endex, Size: span.Len()})
	}

	slices.SortFunc(entries, func(a, b layoutEntry) int {
		return cmp.Compare(a.Start, b.Start)
	})

	return entries
}

func runLayout(args []string) error {
	start, err := parseEndpoint(layoutStart)
	if err != nil {
		return err
	}
	endex, err := parseEndpoint(layoutEndex)
	if err != nil {
		return err
	}

	m, err := openImages(args)
	if err != nil {
		return err
	}

	entries := collectLayout(m, start, endex)

	if jsonOut {
		return printJSON(entries)
	}

	for _, e := range entries {
		printInfo("%-5s  0x%08x  0x%08x  %s\n", e.Kind, e.Start, e.Endex, humanize.IBytes(uint64(e.Size)))
	}

	return nil
}
