package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/bytesparse/memory"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>...",
		Short: "Report the span, size and digest of composed images",
		Long: `The info command composes the given images and reports the address
span they cover, the number of defined bytes, the number of blocks and
gaps, and the xxHash64 digest of the content.

Example:
  sparsectl info boot.bin@0x08000000 app.bin@0x08004000
  sparsectl info dump.bin --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// imageInfo is the info command result.
type imageInfo struct {
	Start      int64  `json:"start"`
	Endex      int64  `json:"endex"`
	Span       int64  `json:"span"`
	Size       int64  `json:"size"`
	Blocks     int    `json:"blocks"`
	Gaps       int    `json:"gaps"`
	Contiguous bool   `json:"contiguous"`
	Digest     string `json:"digest"`
}

func collectInfo(m *memory.Memory) imageInfo {
	gaps := 0
	for range m.Gaps(memory.Auto, memory.Auto, true) {
		gaps++
	}

	return imageInfo{
		Start:      m.Start(),
		Endex:      m.Endex(),
		Span:       m.Len(),
		Size:       m.ContentSize(),
		Blocks:     m.ContentParts(),
		Gaps:       gaps,
		Contiguous: m.Contiguous(),
		Digest:     fmt.Sprintf("%016x", m.Digest()),
	}
}

func runInfo(args []string) error {
	m, err := openImages(args)
	if err != nil {
		return err
	}

	info := collectInfo(m)

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nImage Information:\n")
	printInfo("  Span:       %#x..%#x (%s)\n", info.Start, info.Endex, humanize.IBytes(uint64(info.Span)))
	printInfo("  Size:       %s (%d bytes)\n", humanize.IBytes(uint64(info.Size)), info.Size)
	printInfo("  Blocks:     %d\n", info.Blocks)
	printInfo("  Gaps:       %d\n", info.Gaps)
	printInfo("  Contiguous: %t\n", info.Contiguous)
	printInfo("  Digest:     %s\n", info.Digest)

	return nil
}
