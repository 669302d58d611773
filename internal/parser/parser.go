// Package parser reads nflverse play-by-play and roster CSV exports into the
// model types. Files may be plain, gzip (.gz) or zstd (.zst) compressed.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

// Open opens path for reading, decompressing by file extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &stackedCloser{Reader: dec, close: func() error { dec.Close(); return f.Close() }}, nil
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &stackedCloser{Reader: gz, close: func() error { gz.Close(); return f.Close() }}, nil
	default:
		return f, nil
	}
}

type stackedCloser struct {
	io.Reader
	close func() error
}

func (s *stackedCloser) Close() error { return s.close() }

// ---- CSV plumbing ----

// header maps lower-cased column names to their index.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	hdr, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(hdr))
	for i, name := range hdr {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	return h, nil
}

// idx returns the index of the first of names present, or -1.
func (h header) idx(names ...string) int {
	for _, n := range names {
		if i, ok := h[n]; ok {
			return i
		}
	}
	return -1
}

func (h header) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := h[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// row wraps one record with null-aware accessors. Out-of-range or negative
// indexes read as null so optional columns need no special casing.
type row struct {
	rec  []string
	line int
}

func isNull(s string) bool {
	switch s {
	case "", "NA", "NaN", "nan", "null", "NULL", "None":
		return true
	}
	return false
}

func (r row) str(i int) string {
	if i < 0 || i >= len(r.rec) {
		return ""
	}
	s := strings.TrimSpace(r.rec[i])
	if isNull(s) {
		return ""
	}
	return s
}

func (r row) float(i int, col string) (*float64, error) {
	s := r.str(i)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("line %d: %s: %w", r.line, col, err)
	}
	return &v, nil
}

// flag reads a 0/1 indicator; null reads as false.
func (r row) flag(i int, col string) (bool, error) {
	v, err := r.float(i, col)
	if err != nil || v == nil {
		return false, err
	}
	return *v != 0, nil
}

func (r row) integer(i int, col string) (int, error) {
	v, err := r.float(i, col)
	if err != nil || v == nil {
		return 0, err
	}
	return int(*v), nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}
