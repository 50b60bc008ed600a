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
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/reeldb/reeldb/config"
	"github.com/reeldb/reeldb/imdb"
	"github.com/reeldb/reeldb/lib/log"
	"github.com/reeldb/reeldb/lib/str"
	"github.com/reeldb/reeldb/lib/tsv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoadResult reports one collection rebuild. Skipped counts rows the
// coercer rejected; they are never part of Loaded.
type LoadResult struct {
	Collection string
	Loaded     int64
	Skipped    int64
}

// LoadAll rebuilds the three collections in order, preferring the filtered
// files when the cascade has produced them. Each collection is dropped
// first, so a re-run converges to the same state.
func (s *Store) LoadAll(ctx context.Context) ([]LoadResult, error) {
	d := s.config.Dataset
	var results []LoadResult

	movies, err := s.LoadMovies(ctx, sourcePath(d.FilteredTitlesPath(), d.TitlesPath()))
	if err != nil {
		return results, err
	}
	results = append(results, movies)

	principals, err := s.LoadPrincipals(ctx, sourcePath(d.FilteredPrincipalsPath(), d.PrincipalsPath()))
	if err != nil {
		return results, err
	}
	results = append(results, principals)

	people, err := s.LoadPeople(ctx, sourcePath(d.FilteredNamesPath(), d.NamesPath()))
	if err != nil {
		return results, err
	}
	results = append(results, people)

	return results, nil
}

func sourcePath(filtered, raw string) string {
	if _, err := os.Stat(filtered); err == nil {
		return filtered
	}
	return imdb.ResolvePath(raw)
}

func (s *Store) LoadMovies(ctx context.Context, path string) (LoadResult, error) {
	return s.load(ctx, MovieCollection, path,
		func(rec map[string]string) (interface{}, bool) {
			return movieDoc(rec, s.config.Filter)
		},
		[]mongo.IndexModel{
			{Keys: bson.D{{Key: "year", Value: 1}}},
			{Keys: bson.D{{Key: "title", Value: 1}}},
		})
}

func (s *Store) LoadPrincipals(ctx context.Context, path string) (LoadResult, error) {
	return s.load(ctx, PrincipalCollection, path,
		func(rec map[string]string) (interface{}, bool) {
			return principalDoc(rec, s.config.Filter)
		},
		[]mongo.IndexModel{
			{Keys: bson.D{{Key: "tconst", Value: 1}}},
			{Keys: bson.D{{Key: "nconst", Value: 1}}},
		})
}

func (s *Store) LoadPeople(ctx context.Context, path string) (LoadResult, error) {
	return s.load(ctx, PersonCollection, path,
		func(rec map[string]string) (interface{}, bool) {
			return personDoc(rec)
		},
		[]mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}},
		})
}

// load drops the collection, streams the file through the coercer in
// fixed-size insert batches, and builds the indexes only after the last
// batch is in. An insert failure aborts this collection; a partially
// inserted, unindexed collection is not worth continuing into, the
// operator re-runs the load.
func (s *Store) load(ctx context.Context, name, path string,
	coerce func(map[string]string) (interface{}, bool),
	indexes []mongo.IndexModel) (LoadResult, error) {

	result := LoadResult{Collection: name}
	coll := s.db.Collection(name)
	if err := coll.Drop(ctx); err != nil {
		return result, fmt.Errorf("drop %s: %w", name, err)
	}

	r, err := tsv.Open(path)
	if err != nil {
		return result, err
	}
	defer r.Close()

	batchSize := s.config.Load.BatchSize
	batch := make([]interface{}, 0, batchSize)
	opts := options.InsertMany().SetOrdered(false)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := coll.InsertMany(ctx, batch, opts); err != nil {
			return fmt.Errorf("insert %s after %d rows: %w", name, result.Loaded, err)
		}
		result.Loaded += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for r.Next() {
		doc, ok := coerce(r.Record())
		if !ok {
			result.Skipped++
			continue
		}
		batch = append(batch, doc)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return result, err
			}
			log.Printf("%s: %d rows", name, result.Loaded)
		}
	}
	if err := r.Err(); err != nil {
		return result, err
	}
	if err := flush(); err != nil {
		return result, err
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return result, fmt.Errorf("index %s: %w", name, err)
	}
	log.Printf("%s: %d loaded, %d skipped", name, result.Loaded, result.Skipped)
	return result, nil
}

// movieDoc re-applies the title keep-rule. The loader accepts raw extracts
// too, so it cannot assume its input already went through the cascade.
func movieDoc(rec map[string]string, f config.FilterConfig) (interface{}, bool) {
	if rec[imdb.FieldTitleType] != f.TitleType {
		return nil, false
	}
	if rec[imdb.FieldAdult] == "1" {
		return nil, false
	}
	year, err := strconv.Atoi(rec[imdb.FieldStartYear])
	if err != nil || year <= f.YearCutoff {
		return nil, false
	}
	id, err := imdb.ParseTitleID(rec[imdb.FieldTitleID])
	if err != nil {
		return nil, false
	}

	var genres []string
	if g, ok := rec[imdb.FieldGenres]; ok {
		genres = str.Split(g)
	}
	return Movie{
		ID:      id,
		Type:    rec[imdb.FieldTitleType],
		Title:   rec[imdb.FieldTitle],
		Year:    year,
		Runtime: optInt(rec, imdb.FieldRuntime),
		Genres:  genres,
		Adult:   false,
	}, true
}

func principalDoc(rec map[string]string, f config.FilterConfig) (interface{}, bool) {
	if !f.Allowed(rec[imdb.FieldCategory]) {
		return nil, false
	}
	tconst, err := imdb.ParseTitleID(rec[imdb.FieldTitleID])
	if err != nil {
		return nil, false
	}
	nconst, err := imdb.ParsePersonID(rec[imdb.FieldPersonID])
	if err != nil {
		return nil, false
	}

	var characters *string
	if c, ok := rec[imdb.FieldCharacters]; ok {
		characters = &c
	}
	return Principal{
		TitleID:    tconst,
		PersonID:   nconst,
		Category:   rec[imdb.FieldCategory],
		Ordering:   optInt(rec, imdb.FieldOrdering),
		Characters: characters,
	}, true
}

func personDoc(rec map[string]string) (interface{}, bool) {
	id, err := imdb.ParsePersonID(rec[imdb.FieldPersonID])
	if err != nil {
		return nil, false
	}

	var professions []string
	if p, ok := rec[imdb.FieldProfession]; ok {
		professions = str.Split(p)
	}
	var knownFor []imdb.TitleID
	if k, ok := rec[imdb.FieldKnownFor]; ok {
		for _, t := range str.Split(k) {
			if id, err := imdb.ParseTitleID(t); err == nil {
				knownFor = append(knownFor, id)
			}
		}
	}
	return Person{
		ID:          id,
		Name:        rec[imdb.FieldName],
		BirthYear:   optInt(rec, imdb.FieldBirthYear),
		DeathYear:   optInt(rec, imdb.FieldDeathYear),
		Professions: professions,
		KnownFor:    knownFor,
	}, true
}

// optInt parses an optional integer field, nil when absent or garbage.
// Never zero; zero would poison averages downstream.
func optInt(rec map[string]string, field string) *int {
	v, ok := rec[field]
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &i
}
