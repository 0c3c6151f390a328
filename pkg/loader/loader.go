// Package loader reads intcode programs from their text form.
//
// A program is a comma-separated list of decimal integers, e.g.
// "1,9,10,3,2,3,11,0,99,30,40,50". Surrounding whitespace and a trailing
// newline are ignored. Files ending in ".zst" are zstd-decompressed before
// parsing.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// MaxProgramSize bounds the decompressed size of a program text.
const MaxProgramSize = 64 * 1024 * 1024

// Loader errors.
var (
	ErrInvalidProgram  = errors.New("invalid program")
	ErrProgramNotFound = errors.New("program not found")
	ErrTooLarge        = errors.New("program text too large")
)

// Parse parses program text. An empty or all-whitespace text is the empty
// program.
func Parse(text string) ([]int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []int64{}, nil
	}

	fields := strings.Split(text, ",")
	// Tolerate a single trailing comma.
	if strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}

	memory := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %q", ErrInvalidProgram, i, strings.TrimSpace(f))
		}
		memory[i] = v
	}
	return memory, nil
}

// Read parses program text from r.
func Read(r io.Reader) ([]int64, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	if len(data) > MaxProgramSize {
		return nil, ErrTooLarge
	}
	return Parse(string(data))
}

// LoadFile reads and parses a program file. Paths ending in ".zst" are
// decompressed with zstd.
func LoadFile(path string) ([]int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, path)
		}
		return nil, fmt.Errorf("open program: %w", err)
	}
	defer file.Close()

	if !IsCompressed(path) {
		return Read(file)
	}

	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	memory, err := Read(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return memory, nil
}

// IsCompressed reports whether path names a zstd-compressed program.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// Format renders memory in program text form, without a trailing newline.
func Format(memory []int64) string {
	var b strings.Builder
	buf := make([]byte, 0, 20)
	for i, v := range memory {
		if i > 0 {
			b.WriteByte(',')
		}
		buf = strconv.AppendInt(buf[:0], v, 10)
		b.Write(buf)
	}
	return b.String()
}

// WriteFile writes memory in program text form to path, zstd-compressing
// when the path ends in ".zst".
func WriteFile(path string, memory []int64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create program file: %w", err)
	}

	var w io.Writer = file
	var encoder *zstd.Encoder
	if IsCompressed(path) {
		encoder, err = zstd.NewWriter(file)
		if err != nil {
			file.Close()
			return fmt.Errorf("create zstd encoder: %w", err)
		}
		w = encoder
	}

	if _, err := io.WriteString(w, Format(memory)+"\n"); err != nil {
		file.Close()
		return fmt.Errorf("write program: %w", err)
	}
	if encoder != nil {
		if err := encoder.Close(); err != nil {
			file.Close()
			return fmt.Errorf("flush zstd encoder: %w", err)
		}
	}
	return file.Close()
}
