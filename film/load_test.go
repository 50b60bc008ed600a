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

package film

import (
	"testing"

	"github.com/reeldb/reeldb/config"
	"github.com/reeldb/reeldb/imdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filterCfg = config.FilterConfig{
	TitleType:  "movie",
	YearCutoff: 1990,
	Categories: []string{"actor", "actress", "director"},
}

func movieRec() map[string]string {
	return map[string]string{
		imdb.FieldTitleID:   "tt1",
		imdb.FieldTitleType: "movie",
		imdb.FieldTitle:     "First",
		imdb.FieldAdult:     "0",
		imdb.FieldStartYear: "1994",
		imdb.FieldRuntime:   "101",
		imdb.FieldGenres:    "Comedy,Drama",
	}
}

func TestMovieDoc(t *testing.T) {
	doc, ok := movieDoc(movieRec(), filterCfg)
	require.True(t, ok)
	m := doc.(Movie)
	assert.Equal(t, imdb.TitleID("tt1"), m.ID)
	assert.Equal(t, "First", m.Title)
	assert.Equal(t, 1994, m.Year)
	require.NotNil(t, m.Runtime)
	assert.Equal(t, 101, *m.Runtime)
	assert.Equal(t, []string{"Comedy", "Drama"}, m.Genres)
	assert.False(t, m.Adult)
}

func TestMovieDocKeepRule(t *testing.T) {
	reject := func(name string, mutate func(map[string]string)) {
		rec := movieRec()
		mutate(rec)
		_, ok := movieDoc(rec, filterCfg)
		assert.False(t, ok, name)
	}
	reject("wrong type", func(r map[string]string) { r[imdb.FieldTitleType] = "short" })
	reject("adult", func(r map[string]string) { r[imdb.FieldAdult] = "1" })
	reject("year at cutoff", func(r map[string]string) { r[imdb.FieldStartYear] = "1990" })
	reject("year below cutoff", func(r map[string]string) { r[imdb.FieldStartYear] = "1985" })
	reject("year absent", func(r map[string]string) { delete(r, imdb.FieldStartYear) })
	reject("year garbage", func(r map[string]string) { r[imdb.FieldStartYear] = "19xx" })
	reject("bad id", func(r map[string]string) { r[imdb.FieldTitleID] = "xx1" })

	rec := movieRec()
	rec[imdb.FieldStartYear] = "1991"
	_, ok := movieDoc(rec, filterCfg)
	assert.True(t, ok, "one past the cutoff is kept")
}

func TestMovieDocOptionalFields(t *testing.T) {
	rec := movieRec()
	delete(rec, imdb.FieldRuntime)
	delete(rec, imdb.FieldGenres)
	doc, ok := movieDoc(rec, filterCfg)
	require.True(t, ok)
	m := doc.(Movie)
	assert.Nil(t, m.Runtime, "absent runtime stays absent, never zero")
	assert.Nil(t, m.Genres)
}

func TestPrincipalDoc(t *testing.T) {
	rec := map[string]string{
		imdb.FieldTitleID:    "tt1",
		imdb.FieldPersonID:   "nm1",
		imdb.FieldCategory:   "actor",
		imdb.FieldOrdering:   "2",
		imdb.FieldCharacters: `["Lead"]`,
	}
	doc, ok := principalDoc(rec, filterCfg)
	require.True(t, ok)
	p := doc.(Principal)
	assert.Equal(t, imdb.TitleID("tt1"), p.TitleID)
	assert.Equal(t, imdb.PersonID("nm1"), p.PersonID)
	assert.Equal(t, "actor", p.Category)
	require.NotNil(t, p.Ordering)
	assert.Equal(t, 2, *p.Ordering)
	require.NotNil(t, p.Characters)
	assert.Equal(t, `["Lead"]`, *p.Characters)
}

func TestPrincipalDocSkips(t *testing.T) {
	base := map[string]string{
		imdb.FieldTitleID:  "tt1",
		imdb.FieldPersonID: "nm1",
		imdb.FieldCategory: "actor",
	}

	rec := map[string]string{}
	for k, v := range base {
		rec[k] = v
	}
	rec[imdb.FieldCategory] = "writer"
	_, ok := principalDoc(rec, filterCfg)
	assert.False(t, ok, "category outside the allow-set is skipped at load too")

	rec = map[string]string{}
	for k, v := range base {
		rec[k] = v
	}
	rec[imdb.FieldTitleID] = "bogus"
	_, ok = principalDoc(rec, filterCfg)
	assert.False(t, ok)

	doc, ok := principalDoc(base, filterCfg)
	require.True(t, ok)
	p := doc.(Principal)
	assert.Nil(t, p.Ordering)
	assert.Nil(t, p.Characters)
}

func TestPersonDoc(t *testing.T) {
	rec := map[string]string{
		imdb.FieldPersonID:   "nm1",
		imdb.FieldName:       "Ada Actor",
		imdb.FieldBirthYear:  "1960",
		imdb.FieldProfession: "actor,producer",
		imdb.FieldKnownFor:   "tt1,bogus,tt7",
	}
	doc, ok := personDoc(rec)
	require.True(t, ok)
	p := doc.(Person)
	assert.Equal(t, imdb.PersonID("nm1"), p.ID)
	assert.Equal(t, "Ada Actor", p.Name)
	require.NotNil(t, p.BirthYear)
	assert.Equal(t, 1960, *p.BirthYear)
	assert.Nil(t, p.DeathYear)
	assert.Equal(t, []string{"actor", "producer"}, p.Professions)
	assert.Equal(t, []imdb.TitleID{"tt1", "tt7"}, p.KnownFor,
		"malformed known-for keys are dropped, not kept raw")

	_, ok = personDoc(map[string]string{imdb.FieldPersonID: "tt1"})
	assert.False(t, ok)
}

func TestOptInt(t *testing.T) {
	rec := map[string]string{"a": "12", "b": "x"}
	require.NotNil(t, optInt(rec, "a"))
	assert.Equal(t, 12, *optInt(rec, "a"))
	assert.Nil(t, optInt(rec, "b"))
	assert.Nil(t, optInt(rec, "missing"))
}
