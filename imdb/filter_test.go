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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reeldb/reeldb/config"
	"github.com/reeldb/reeldb/lib/tsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const na = tsv.Sentinel

func rows(lines ...[]string) string {
	var b strings.Builder
	for _, fields := range lines {
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Dataset: config.DatasetConfig{
			Dir:         dir,
			FilteredDir: filepath.Join(dir, "filtered"),
			Titles:      "title.basics.tsv",
			Principals:  "title.principals.tsv",
			Names:       "name.basics.tsv",
		},
		Filter: config.FilterConfig{
			TitleType:  "movie",
			YearCutoff: 1990,
			Categories: []string{"actor", "actress", "director"},
		},
	}
}

func writeDataset(t *testing.T, cfg *config.Config) {
	t.Helper()
	titles := rows(
		[]string{"tconst", "titleType", "primaryTitle", "isAdult", "startYear", "runtimeMinutes", "genres"},
		[]string{"tt1", "movie", "First", "0", "1991", "100", "Drama"},
		[]string{"tt2", "movie", "At Cutoff", "0", "1990", "90", "Drama"},
		[]string{"tt3", "short", "A Short", "0", "1995", "10", "Comedy"},
		[]string{"tt4", "movie", "Adult", "1", "1995", "80", na},
		[]string{"tt5", "movie", "No Year", "0", na, "95", "Drama"},
		[]string{"tt6", "movie", "Bad Year", "0", "19xx", "95", "Drama"},
		[]string{"tt7", "movie", "Second", "0", "2000", na, "Comedy,Drama"},
	)
	principals := rows(
		[]string{"tconst", "ordering", "nconst", "category", "job", "characters"},
		[]string{"tt1", "1", "nm1", "actor", na, `["Lead"]`},
		[]string{"tt2", "1", "nm2", "actor", na, na},
		[]string{"tt1", "2", "nm3", "writer", na, na},
		[]string{"tt7", "1", "nm1", "actress", na, na},
		[]string{"tt7", "2", "nm4", "director", na, na},
	)
	names := rows(
		[]string{"nconst", "primaryName", "birthYear", "deathYear", "primaryProfession", "knownForTitles"},
		[]string{"nm1", "Ada Actor", "1960", na, "actor,producer", "tt1,tt7"},
		[]string{"nm2", "Gone Guy", "1950", "2001", "actor", "tt2"},
		[]string{"nm3", "Only Writer", na, na, "writer", na},
		[]string{"nm4", "Dora Director", "1970", na, "director", "tt7"},
	)
	require.NoError(t, ioutil.WriteFile(cfg.Dataset.TitlesPath(), []byte(titles), 0644))
	require.NoError(t, ioutil.WriteFile(cfg.Dataset.PrincipalsPath(), []byte(principals), 0644))
	require.NoError(t, ioutil.WriteFile(cfg.Dataset.NamesPath(), []byte(names), 0644))
}

func readColumn(t *testing.T, path, col string) []string {
	t.Helper()
	r, err := tsv.Open(path)
	require.NoError(t, err)
	defer r.Close()
	var values []string
	for r.Next() {
		v, _ := r.Field(col)
		values = append(values, v)
	}
	require.NoError(t, r.Err())
	return values
}

func TestFilterCascade(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeDataset(t, cfg)

	result, err := NewFilter(cfg).Run()
	require.NoError(t, err)

	// stage T: only tt1 and tt7 pass. tt2 sits exactly on the cutoff and
	// is excluded; tt3 is the wrong type; tt4 is adult; tt5/tt6 have no
	// usable year.
	assert.Equal(t, 7, result.Titles.Total)
	assert.Equal(t, 2, result.Titles.Kept)
	assert.Equal(t, 2, result.Titles.Distinct)
	assert.Equal(t, []string{"tt1", "tt7"},
		readColumn(t, cfg.Dataset.FilteredTitlesPath(), "tconst"))

	// stage C: tt2's credit follows its title out; the writer credit is
	// outside the allow-set even though tt1 survived
	assert.Equal(t, 5, result.Principals.Total)
	assert.Equal(t, 3, result.Principals.Kept)
	assert.Equal(t, 2, result.Principals.Distinct)
	assert.Equal(t, []string{"tt1", "tt7", "tt7"},
		readColumn(t, cfg.Dataset.FilteredPrincipalsPath(), "tconst"))

	// stage P: only people referenced by a surviving credit
	assert.Equal(t, 4, result.Names.Total)
	assert.Equal(t, 2, result.Names.Kept)
	assert.Equal(t, []string{"nm1", "nm4"},
		readColumn(t, cfg.Dataset.FilteredNamesPath(), "nconst"))
}

// Referential closure: every filtered credit references a filtered title,
// and every filtered person is referenced by at least one filtered credit.
func TestFilterReferentialClosure(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeDataset(t, cfg)
	_, err := NewFilter(cfg).Run()
	require.NoError(t, err)

	titleKeys := make(map[string]bool)
	for _, id := range readColumn(t, cfg.Dataset.FilteredTitlesPath(), "tconst") {
		titleKeys[id] = true
	}
	for _, id := range readColumn(t, cfg.Dataset.FilteredPrincipalsPath(), "tconst") {
		assert.True(t, titleKeys[id], "dangling title reference %s", id)
	}
	personKeys := make(map[string]bool)
	for _, id := range readColumn(t, cfg.Dataset.FilteredPrincipalsPath(), "nconst") {
		personKeys[id] = true
	}
	for _, id := range readColumn(t, cfg.Dataset.FilteredNamesPath(), "nconst") {
		assert.True(t, personKeys[id], "person %s not referenced by any credit", id)
	}
}

func TestFilterVerbatimRows(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeDataset(t, cfg)
	_, err := NewFilter(cfg).Run()
	require.NoError(t, err)

	in, err := ioutil.ReadFile(cfg.Dataset.TitlesPath())
	require.NoError(t, err)
	out, err := ioutil.ReadFile(cfg.Dataset.FilteredTitlesPath())
	require.NoError(t, err)

	inLines := strings.Split(string(in), "\n")
	assert.Equal(t, inLines[0], strings.Split(string(out), "\n")[0], "header copied through")
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		assert.Contains(t, inLines, line, "output rows are unmodified input rows")
	}
}

func TestFilterIdempotent(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeDataset(t, cfg)

	_, err := NewFilter(cfg).Run()
	require.NoError(t, err)
	first := map[string][]byte{}
	for _, p := range []string{
		cfg.Dataset.FilteredTitlesPath(),
		cfg.Dataset.FilteredPrincipalsPath(),
		cfg.Dataset.FilteredNamesPath(),
	} {
		b, err := ioutil.ReadFile(p)
		require.NoError(t, err)
		first[p] = b
	}

	_, err = NewFilter(cfg).Run()
	require.NoError(t, err)
	for p, b := range first {
		again, err := ioutil.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, b, again, "second run must be byte-identical: %s", p)
	}
}

func TestFilterMissingInput(t *testing.T) {
	cfg := testConfig(t.TempDir())
	// no dataset written
	_, err := NewFilter(cfg).Run()
	require.Error(t, err)
	_, statErr := os.Stat(cfg.Dataset.FilteredTitlesPath())
	assert.True(t, os.IsNotExist(statErr), "no partial output for a failed run")
}

func TestFilterMalformedRow(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeDataset(t, cfg)
	// append a row with a missing field
	f, err := os.OpenFile(cfg.Dataset.TitlesPath(), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("tt9\tmovie\tBroken\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = NewFilter(cfg).Run()
	require.Error(t, err)
}
