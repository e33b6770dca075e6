package main

import (
	"errors"
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/bytesparse/memory"
)

var (
	findHex   string
	findText  string
	findLimit int
)

func init() {
	rootCmd.AddCommand(newFindCmd())
}

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <image>...",
		Short: "Print every address where a byte sequence occurs",
		Long: `The find command searches the composed images for a byte sequence,
given either as hex with --hex or as plain text with --text, and prints the
address of every occurrence in increasing order. Occurrences may overlap.

Example:
  sparsectl find firmware.bin@0x08000000 --hex "de ad be ef"
  sparsectl find dump.bin --text "Copyright" --limit 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(args)
		},
	}

	cmd.Flags().StringVar(&findHex, "hex", "", "Byte sequence to search, as hex")
	cmd.Flags().StringVar(&findText, "text", "", "Byte sequence to search, as text")
	cmd.Flags().IntVar(&findLimit, "limit", 0, "Stop after this many matches (0 for all)")

	return cmd
}

func findToken() ([]byte, error) {
	switch {
	case findHex != "" && findText != "":
		return nil, errors.New("only one of --hex and --text is allowed")
	case findHex != "":
		return parseHex(findHex)
	case findText != "":
		return []byte(findText), nil
	default:
		return nil, errors.New("one of --hex or --text is required")
	}
}

// findAll returns the addresses of token, at most limit of them when limit
// is positive.
func findAll(m *memory.Memory, token []byte, limit int) []int64 {
	matches := []int64{}
	cursor := memory.Auto
	for limit <= 0 || len(matches) < limit {
		addr, ok := m.Find(token, cursor, memory.Auto)
		if !ok {
			break
		}
		matches = append(matches, addr)
		cursor = memory.At(addr + 1)
	}

	return matches
}

func runFind(args []string) error {
	token, err := findToken()
	if err != nil {
		return err
	}

	m, err := openImages(args)
	if err != nil {
		return err
	}

	matches := findAll(m, token, findLimit)
	level.Debug(logger).Log("msg", "search done", "token", fmt.Sprintf("%x", token), "matches", len(matches))

	if jsonOut {
		return printJSON(matches)
	}

	if len(matches) == 0 {
		printInfo("no matches\n")
		return nil
	}

	for _, addr := range matches {
		printInfo("%#x\n", addr)
	}

	return nil
}
