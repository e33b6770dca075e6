package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-kit/log/level"

	"github.com/arloliu/bytesparse"
	"github.com/arloliu/bytesparse/memory"
)

// imageArg is one file@address command line argument.
type imageArg struct {
	Path   string
	Offset int64
}

func parseImageArg(arg string) (imageArg, error) {
	i := strings.LastIndexByte(arg, '@')
	if i < 0 {
		return imageArg{Path: arg}, nil
	}

	offset, err := parseAddr(arg[i+1:])
	if err != nil {
		return imageArg{}, fmt.Errorf("image %q: %w", arg, err)
	}
	if i == 0 {
		return imageArg{}, fmt.Errorf("image %q: missing file name", arg)
	}

	return imageArg{Path: arg[:i], Offset: offset}, nil
}

func parseAddr(s string) (int64, error) {
	addr, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}

	return addr, nil
}

// parseEndpoint turns an optional address flag into an endpoint; an empty
// value means the matching end of the image.
func parseEndpoint(s string) (memory.Endpoint, error) {
	if s == "" {
		return memory.Auto, nil
	}

	addr, err := parseAddr(s)
	if err != nil {
		return memory.Auto, err
	}

	return memory.At(addr), nil
}

// parseHex decodes a hex byte string, ignoring spaces and a 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(s, " ", ""), "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}

	return data, nil
}

// openImages maps every image and composes them into one memory, later
// images overwriting earlier ones.
func openImages(args []string) (*memory.Memory, error) {
	out, err := memory.New(memory.WithUnsignedAddresses())
	if err != nil {
		return nil, err
	}

	for _, arg := range args {
		img, err := parseImageArg(arg)
		if err != nil {
			return nil, err
		}

		if err := loadInto(out, img); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func loadInto(out *memory.Memory, img imageArg) error {
	mapped, release, err := bytesparse.MapFile(img.Path, img.Offset, memory.WithUnsignedAddresses())
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", img.Path, err)
	}
	defer func() {
		if err := release(); err != nil {
			level.Warn(logger).Log("msg", "failed to unmap image", "path", img.Path, "err", err)
		}
	}()

	level.Debug(logger).Log("msg", "loaded image", "path", img.Path,
		"offset", fmt.Sprintf("%#x", img.Offset), "size", mapped.ContentSize())

	if overlap := overlapSize(out, mapped); overlap > 0 {
		level.Info(logger).Log("msg", "image overlaps earlier content", "path", img.Path, "bytes", overlap)
	}

	return out.UpdateFrom(mapped, false)
}

// overlapSize counts the bytes of img already defined in dst.
func overlapSize(dst, img *memory.Memory) int64 {
	var n int64
	for span := range img.Intervals(memory.Auto, memory.Auto) {
		for _, data := range dst.Blocks(memory.At(span.Start), memory.At(span.Endex)) {
			n += int64(len(data))
		}
	}

	return n
}
