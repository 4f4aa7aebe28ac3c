// Package datafile reads whitespace-delimited numeric text files such as
// the trajectories and analysis tables written by MD engines.
package datafile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/datplot/internal/fsutil"
)

// MaxFileSize is the largest input file Load accepts.
const MaxFileSize = 512 << 20

var maxFileSize int64 = MaxFileSize

var (
	// ErrNoData is returned when a file holds no data rows.
	ErrNoData = errors.New("datafile: no data rows")

	// ErrColumnOutOfRange is returned when a requested column index does
	// not exist in the file.
	ErrColumnOutOfRange = errors.New("datafile: column index out of range")

	// ErrFileTooLarge is returned when the file exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("datafile: file too large")
)

// ParseError describes a malformed record.
type ParseError struct {
	Path  string
	Line  int
	Field int // zero-based field index, -1 when the whole record is at fault
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field >= 0 {
		return fmt.Sprintf("%s:%d: field %d: %s", e.Path, e.Line, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Table holds the numeric records of one file.
type Table struct {
	Path string

	rows  [][]float64
	lines []int // source line of each row, 1-based
}

// Load reads and parses path in a single read. Blank lines and '#'
// comments are skipped.
func Load(fsys fsutil.FileSystem, path string) (*Table, error) {
	data, err := fsutil.ReadFileLimited(fsys, path, maxFileSize)
	if err != nil {
		var sizeErr *fsutil.SizeError
		if errors.As(err, &sizeErr) {
			return nil, fmt.Errorf("%w: %v", ErrFileTooLarge, sizeErr)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses the contents of a data file. path is used in errors only.
func Parse(path string, data []byte) (*Table, error) {
	t := &Table{Path: path}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineNo, Field: i, Msg: fmt.Sprintf("invalid number %q", f), Err: err}
			}
			row[i] = v
		}
		t.rows = append(t.rows, row)
		t.lines = append(t.lines, lineNo)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	if len(t.rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoData)
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Width returns the number of fields in the first row.
func (t *Table) Width() int { return len(t.rows[0]) }

// Column returns a copy of the zero-based column i.
func (t *Table) Column(i int) ([]float64, error) {
	if i < 0 || i >= t.Width() {
		return nil, fmt.Errorf("%s: %w: column %d, file has %d", t.Path, ErrColumnOutOfRange, i, t.Width())
	}
	col := make([]float64, len(t.rows))
	for r, row := range t.rows {
		if i >= len(row) {
			return nil, &ParseError{
				Path:  t.Path,
				Line:  t.lines[r],
				Field: -1,
				Msg:   fmt.Sprintf("record has %d fields, column %d requested", len(row), i),
			}
		}
		col[r] = row[i]
	}
	return col, nil
}

// Columns returns the given columns in the order requested.
func (t *Table) Columns(idx []int) ([][]float64, error) {
	cols := make([][]float64, 0, len(idx))
	for _, i := range idx {
		col, err := t.Column(i)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// Matrix returns every row. All rows must have the same width.
func (t *Table) Matrix() ([][]float64, error) {
	w := t.Width()
	out := make([][]float64, len(t.rows))
	for r, row := range t.rows {
		if len(row) != w {
			return nil, &ParseError{
				Path:  t.Path,
				Line:  t.lines[r],
				Field: -1,
				Msg:   fmt.Sprintf("matrix row has %d values, want %d", len(row), w),
			}
		}
		out[r] = append([]float64(nil), row...)
	}
	return out, nil
}
