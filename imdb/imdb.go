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

// Package imdb knows the shape of the IMDb dataset extracts: column names,
// identifier formats, and the referential filter cascade that narrows the
// three files to a mutually consistent subset.
package imdb

import (
	"fmt"
	"os"
	"regexp"
)

// Column names of the three extracts.
const (
	FieldTitleID    = "tconst"
	FieldTitleType  = "titleType"
	FieldTitle      = "primaryTitle"
	FieldAdult      = "isAdult"
	FieldStartYear  = "startYear"
	FieldRuntime    = "runtimeMinutes"
	FieldGenres     = "genres"
	FieldOrdering   = "ordering"
	FieldPersonID   = "nconst"
	FieldCategory   = "category"
	FieldCharacters = "characters"
	FieldName       = "primaryName"
	FieldBirthYear  = "birthYear"
	FieldDeathYear  = "deathYear"
	FieldProfession = "primaryProfession"
	FieldKnownFor   = "knownForTitles"
)

// TitleID is a title key, "tt" followed by digits.
type TitleID string

// PersonID is a person key, "nm" followed by digits.
type PersonID string

var (
	titleIDRegexp  = regexp.MustCompile(`^tt\d+$`)
	personIDRegexp = regexp.MustCompile(`^nm\d+$`)
)

func ParseTitleID(s string) (TitleID, error) {
	if !titleIDRegexp.MatchString(s) {
		return "", fmt.Errorf("bad title id %q", s)
	}
	return TitleID(s), nil
}

func ParsePersonID(s string) (PersonID, error) {
	if !personIDRegexp.MatchString(s) {
		return "", fmt.Errorf("bad person id %q", s)
	}
	return PersonID(s), nil
}

func (id TitleID) String() string {
	return string(id)
}

func (id PersonID) String() string {
	return string(id)
}

// TitleSet is an exact-membership key set; approximate filters would break
// the referential closure invariant.
type TitleSet map[TitleID]bool

func (s TitleSet) Add(id TitleID) {
	s[id] = true
}

func (s TitleSet) Contains(id TitleID) bool {
	return s[id]
}

// Intersect returns the titles present in both sets.
func (s TitleSet) Intersect(o TitleSet) TitleSet {
	small, large := s, o
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(TitleSet)
	for id := range small {
		if large[id] {
			out.Add(id)
		}
	}
	return out
}

func (s TitleSet) Keys() []TitleID {
	keys := make([]TitleID, 0, len(s))
	for id := range s {
		keys = append(keys, id)
	}
	return keys
}

type PersonSet map[PersonID]bool

func (s PersonSet) Add(id PersonID) {
	s[id] = true
}

func (s PersonSet) Contains(id PersonID) bool {
	return s[id]
}

// ResolvePath returns path, or path.gz when only the compressed download
// exists on disk.
func ResolvePath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if _, err := os.Stat(path + ".gz"); err == nil {
		return path + ".gz"
	}
	return path
}
