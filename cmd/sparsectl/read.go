package main

import (
	"errors"
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/bytesparse/endian"
	"github.com/arloliu/bytesparse/memory"
)

var (
	readAt    string
	readSize  int
	readOrder string
	readCount int
)

func init() {
	rootCmd.AddCommand(newReadCmd())
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <image>...",
		Short: "Decode unsigned integers stored in the images",
		Long: `The read command decodes count consecutive unsigned integers of the
given size, starting at --at, in the chosen byte order. Every byte read must
be defined.

Example:
  sparsectl read firmware.bin@0x08000000 --at 0x08000004 --size 4
  sparsectl read boot.bin --at 0x1fe --size 2 --order big --count 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(args)
		},
	}

	cmd.Flags().StringVar(&readAt, "at", "", "Address of the first value (required)")
	cmd.Flags().IntVar(&readSize, "size", 4, "Value size in bytes: 2, 4 or 8")
	cmd.Flags().StringVar(&readOrder, "order", "little", "Byte order: little, big or native")
	cmd.Flags().IntVar(&readCount, "count", 1, "Number of consecutive values")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

type readValue struct {
	Address int64  `json:"address"`
	Value   uint64 `json:"value"`
}

type readResult struct {
	Order  string      `json:"order"`
	Size   int         `json:"size"`
	Values []readValue `json:"values"`
}

// decodeAt reads one value of size bytes at addr.
func decodeAt(m *memory.Memory, addr int64, size int, engine endian.EndianEngine) (uint64, error) {
	switch size {
	case 2:
		v, err := m.ReadUint16(addr, engine)
		return uint64(v), err
	case 4:
		v, err := m.ReadUint32(addr, engine)
		return uint64(v), err
	case 8:
		return m.ReadUint64(addr, engine)
	default:
		return 0, fmt.Errorf("invalid size %d: want 2, 4 or 8", size)
	}
}

func runRead(args []string) error {
	if readAt == "" {
		return errors.New("--at is required")
	}
	addr, err := parseAddr(readAt)
	if err != nil {
		return err
	}
	engine, err := endian.Parse(readOrder)
	if err != nil {
		return err
	}
	if readCount <= 0 {
		return fmt.Errorf("invalid count %d", readCount)
	}

	m, err := openImages(args)
	if err != nil {
		return err
	}

	result := readResult{Order: endian.Name(engine), Size: readSize, Values: make([]readValue, 0, readCount)}
	for k := range readCount {
		at := addr + int64(k*readSize)
		v, err := decodeAt(m, at, readSize, engine)
		if err != nil {
			return fmt.Errorf("read %#x: %w", at, err)
		}
		result.Values = append(result.Values, readValue{Address: at, Value: v})
	}
	level.Debug(logger).Log("msg", "values decoded", "order", result.Order, "size", readSize, "count", len(result.Values))

	if jsonOut {
		return printJSON(result)
	}

	for _, v := range result.Values {
		printInfo("0x%08x  0x%0*x  %d\n", v.Address, 2*readSize, v.Value, v.Value)
	}

	return nil
}
