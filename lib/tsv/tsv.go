// Copyright (C) 2023 The Reeldb Authors.
//
// This file is part of Reeldb.
//
// Reeldb is free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Reeldb is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License for
// more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Reeldb.  If not, see <https://www.gnu.org/licenses/>.

// Package tsv reads header-delimited tab-separated files in a single
// forward pass, one row at a time.
package tsv

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinel is the dataset token for a value that is not available.
const Sentinel = `\N`

var ErrMalformedRow = errors.New("malformed row")

// Reader is a non-restartable cursor over one file. The header row names
// the columns; every data row must have exactly as many fields. Fields
// equal to Sentinel are reported as absent. encoding/csv is not used here
// because rows must also be recoverable verbatim for copy-through and the
// source data contains bare quote characters.
type Reader struct {
	path    string
	file    io.Closer
	scanner *bufio.Scanner
	columns []string
	index   map[string]int
	fields  []string
	line    string
	lineno  int
	err     error
}

// Open opens path and consumes its header row. Paths ending in .gz are
// decompressed transparently.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var src io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		src, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	if !scanner.Scan() {
		f.Close()
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := scanner.Text()
	columns := strings.Split(header, "\t")
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}

	return &Reader{
		path:    path,
		file:    f,
		scanner: scanner,
		columns: columns,
		index:   index,
		lineno:  1,
	}, nil
}

// Columns returns the header column names in file order.
func (r *Reader) Columns() []string {
	return r.columns
}

// Header returns the raw header line.
func (r *Reader) Header() string {
	return strings.Join(r.columns, "\t")
}

// Next advances to the next data row, returning false at end of file or on
// error. A row whose field count differs from the header is an error, not a
// skip; downstream key sets depend on every row being seen.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.scanner.Scan() {
		r.err = r.scanner.Err()
		if r.err != nil {
			r.err = fmt.Errorf("%s: %w", r.path, r.err)
		}
		return false
	}
	r.lineno++
	r.line = r.scanner.Text()
	r.fields = strings.Split(r.line, "\t")
	if len(r.fields) != len(r.columns) {
		r.err = fmt.Errorf("%w: %s line %d: %d fields, want %d",
			ErrMalformedRow, r.path, r.lineno, len(r.fields), len(r.columns))
		return false
	}
	return true
}

// Line returns the current row exactly as it appears in the file.
func (r *Reader) Line() string {
	return r.line
}

// Field returns the named field of the current row. The second return is
// false when the column does not exist or the value is the Sentinel.
func (r *Reader) Field(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	v := r.fields[i]
	if v == Sentinel {
		return "", false
	}
	return v, true
}

// Record returns the current row as a column-keyed map with absent fields
// omitted.
func (r *Reader) Record() map[string]string {
	m := make(map[string]string, len(r.columns))
	for i, name := range r.columns {
		if r.fields[i] == Sentinel {
			continue
		}
		m[name] = r.fields[i]
	}
	return m
}

// Err reports the first error encountered, if any. io.EOF is not an error.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Close() {
	r.file.Close()
}
