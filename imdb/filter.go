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

package imdb

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/reeldb/reeldb/config"
	"github.com/reeldb/reeldb/lib/log"
	"github.com/reeldb/reeldb/lib/tsv"
)

// Filter runs the three-stage referential cascade: titles by the keep-rule,
// principals by surviving title, names by surviving principal. Stages
// depend on the complete key set of the stage before them, so they run
// strictly in order. Memory is proportional to the surviving keys, not the
// raw file sizes.
type Filter struct {
	config *config.Config
}

func NewFilter(config *config.Config) *Filter {
	return &Filter{config: config}
}

// StageResult reports one pass over one file.
type StageResult struct {
	File     string
	Total    int
	Kept     int
	Distinct int
}

type FilterResult struct {
	Titles     StageResult
	Principals StageResult
	Names      StageResult
}

// Run filters the three extracts into Dataset.FilteredDir. Output files
// keep the input header and contain surviving rows verbatim, so re-running
// on the same inputs is byte-for-byte reproducible.
func (f *Filter) Run() (*FilterResult, error) {
	d := f.config.Dataset
	if err := os.MkdirAll(d.FilteredDir, 0755); err != nil {
		return nil, err
	}

	var result FilterResult

	titles, titleKeys, err := f.filterTitles(
		ResolvePath(d.TitlesPath()), d.FilteredTitlesPath())
	if err != nil {
		return nil, err
	}
	result.Titles = titles
	log.Printf("titles: %d / %d kept (%d unique)",
		titles.Kept, titles.Total, titles.Distinct)

	principals, personKeys, err := f.filterPrincipals(
		ResolvePath(d.PrincipalsPath()), d.FilteredPrincipalsPath(), titleKeys)
	if err != nil {
		return nil, err
	}
	result.Principals = principals
	log.Printf("principals: %d / %d kept (%d unique people)",
		principals.Kept, principals.Total, principals.Distinct)

	names, err := f.filterNames(
		ResolvePath(d.NamesPath()), d.FilteredNamesPath(), personKeys)
	if err != nil {
		return nil, err
	}
	result.Names = names
	log.Printf("names: %d / %d kept", names.Kept, names.Total)

	return &result, nil
}

// keepTitle is the title keep-rule: configured type only, no adult titles,
// and a numeric release year strictly greater than the cutoff. A sentinel
// or garbage year means the row does not pass; it is not an error.
func (f *Filter) keepTitle(r *tsv.Reader) bool {
	titleType, _ := r.Field(FieldTitleType)
	if titleType != f.config.Filter.TitleType {
		return false
	}
	if adult, _ := r.Field(FieldAdult); adult == "1" {
		return false
	}
	year, ok := r.Field(FieldStartYear)
	if !ok {
		return false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	return y > f.config.Filter.YearCutoff
}

func (f *Filter) filterTitles(in, out string) (StageResult, TitleSet, error) {
	result := StageResult{File: filepath.Base(in)}
	keys := make(TitleSet)

	r, err := tsv.Open(in)
	if err != nil {
		return result, nil, err
	}
	defer r.Close()

	w, err := newStageWriter(out, r.Header())
	if err != nil {
		return result, nil, err
	}

	for r.Next() {
		result.Total++
		if !f.keepTitle(r) {
			continue
		}
		field, _ := r.Field(FieldTitleID)
		id, err := ParseTitleID(field)
		if err != nil {
			continue
		}
		if err := w.writeRow(r.Line()); err != nil {
			w.abort()
			return result, nil, err
		}
		keys.Add(id)
		result.Kept++
	}
	if err := r.Err(); err != nil {
		w.abort()
		return result, nil, err
	}
	result.Distinct = len(keys)
	return result, keys, w.close()
}

func (f *Filter) filterPrincipals(in, out string, titleKeys TitleSet) (StageResult, PersonSet, error) {
	result := StageResult{File: filepath.Base(in)}
	keys := make(PersonSet)

	r, err := tsv.Open(in)
	if err != nil {
		return result, nil, err
	}
	defer r.Close()

	w, err := newStageWriter(out, r.Header())
	if err != nil {
		return result, nil, err
	}

	for r.Next() {
		result.Total++
		tconst, _ := r.Field(FieldTitleID)
		if !titleKeys.Contains(TitleID(tconst)) {
			continue
		}
		category, _ := r.Field(FieldCategory)
		if !f.config.Filter.Allowed(category) {
			continue
		}
		field, _ := r.Field(FieldPersonID)
		id, err := ParsePersonID(field)
		if err != nil {
			continue
		}
		if err := w.writeRow(r.Line()); err != nil {
			w.abort()
			return result, nil, err
		}
		keys.Add(id)
		result.Kept++
	}
	if err := r.Err(); err != nil {
		w.abort()
		return result, nil, err
	}
	result.Distinct = len(keys)
	return result, keys, w.close()
}

func (f *Filter) filterNames(in, out string, personKeys PersonSet) (StageResult, error) {
	result := StageResult{File: filepath.Base(in)}

	r, err := tsv.Open(in)
	if err != nil {
		return result, err
	}
	defer r.Close()

	w, err := newStageWriter(out, r.Header())
	if err != nil {
		return result, err
	}

	for r.Next() {
		result.Total++
		nconst, _ := r.Field(FieldPersonID)
		if !personKeys.Contains(PersonID(nconst)) {
			continue
		}
		if err := w.writeRow(r.Line()); err != nil {
			w.abort()
			return result, err
		}
		result.Kept++
	}
	if err := r.Err(); err != nil {
		w.abort()
		return result, err
	}
	return result, w.close()
}

// stageWriter writes one filtered copy: header first, then surviving rows
// unchanged.
type stageWriter struct {
	file *os.File
	buf  *bufio.Writer
}

func newStageWriter(path, header string) (*stageWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := &stageWriter{file: f, buf: bufio.NewWriter(f)}
	if err := w.writeRow(header); err != nil {
		w.abort()
		return nil, err
	}
	return w, nil
}

func (w *stageWriter) writeRow(line string) error {
	if _, err := w.buf.WriteString(line); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

func (w *stageWriter) close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", w.file.Name(), err)
	}
	return nil
}

func (w *stageWriter) abort() {
	w.file.Close()
}
