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
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/reeldb/reeldb/imdb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPersonNotFound distinguishes an unresolvable name from a resolvable
// name with zero matching movies.
var ErrPersonNotFound = errors.New("person not found")

// Stats are whole-database counts plus the movie year range.
type Stats struct {
	Movies     int64
	Principals int64
	People     int64
	MinYear    int
	MaxYear    int
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	var err error
	if stats.Movies, err = s.movies().CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.Principals, err = s.principals().CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.People, err = s.people().CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}

	cursor, err := s.movies().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"min": bson.M{"$min": "$year"},
			"max": bson.M{"$max": "$year"},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if cursor.Next(ctx) {
		var years struct {
			Min int `bson:"min"`
			Max int `bson:"max"`
		}
		if err := cursor.Decode(&years); err != nil {
			return nil, err
		}
		stats.MinYear = years.Min
		stats.MaxYear = years.Max
	}
	return &stats, cursor.Err()
}

// SearchQuery holds optional movie predicates; zero values are unset. All
// supplied predicates must match.
type SearchQuery struct {
	Name  string
	Year  int
	Genre string
}

// MovieResults caps the list for display; Total always reflects the
// uncapped match count.
type MovieResults struct {
	Total  int64
	Movies []Movie
}

func (s *Store) SearchMovies(ctx context.Context, q SearchQuery) (*MovieResults, error) {
	filter := bson.M{}
	if q.Name != "" {
		filter["title"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(q.Name), Options: "i"}
	}
	if q.Year != 0 {
		filter["year"] = q.Year
	}
	if q.Genre != "" {
		filter["genres"] = q.Genre
	}

	total, err := s.movies().CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "year", Value: -1}, {Key: "title", Value: 1}}).
		SetLimit(int64(s.config.Query.SearchLimit))
	cursor, err := s.movies().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var movies []Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, err
	}
	return &MovieResults{Total: total, Movies: movies}, nil
}

// Resolve finds a person by case-insensitive exact name. Names are not
// unique in the dataset; duplicates resolve to the first document in _id
// order, which is stable across loads of the same extract.
func (s *Store) Resolve(ctx context.Context, name string) (*Person, error) {
	filter := bson.M{"name": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var person Person
	err := s.people().FindOne(ctx, filter, opts).Decode(&person)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// creditTitleIDs is the first half of every join: an index lookup on the
// association collection projected to a title key set. Distinct collapses
// duplicate credit rows.
func (s *Store) creditTitleIDs(ctx context.Context, person imdb.PersonID, categories []string) (imdb.TitleSet, error) {
	filter := bson.M{"nconst": person}
	if len(categories) > 0 {
		filter["category"] = bson.M{"$in": categories}
	}
	values, err := s.principals().Distinct(ctx, "tconst", filter)
	if err != nil {
		return nil, err
	}
	set := make(imdb.TitleSet, len(values))
	for _, v := range values {
		if t, ok := v.(string); ok {
			set.Add(imdb.TitleID(t))
		}
	}
	return set, nil
}

// moviesByID is the second half: an in-set membership filter over the
// movie collection, ascending by year with title as tie-break. Storage
// order is never relied on.
func (s *Store) moviesByID(ctx context.Context, keys imdb.TitleSet) ([]Movie, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	filter := bson.M{"_id": bson.M{"$in": keys.Keys()}}
	opts := options.Find().
		SetSort(bson.D{{Key: "year", Value: 1}, {Key: "title", Value: 1}})
	cursor, err := s.movies().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var movies []Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

type Filmography struct {
	Person Person
	Movies []Movie
}

// Filmography returns every movie crediting the named person in one of the
// given categories, oldest first. Nil categories means any category.
func (s *Store) Filmography(ctx context.Context, name string, categories []string) (*Filmography, error) {
	person, err := s.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	keys, err := s.creditTitleIDs(ctx, person.ID, categories)
	if err != nil {
		return nil, err
	}
	movies, err := s.moviesByID(ctx, keys)
	if err != nil {
		return nil, err
	}
	return &Filmography{Person: *person, Movies: movies}, nil
}

type Collaboration struct {
	PersonA Person
	PersonB Person
	Movies  []Movie
}

// Collaboration intersects the credited title sets of two people. Both
// names resolving with a disjoint intersection is a normal empty result,
// not an error; the error case is one or both names failing to resolve,
// and it names every name that failed.
func (s *Store) Collaboration(ctx context.Context, nameA, nameB string) (*Collaboration, error) {
	personA, errA := s.Resolve(ctx, nameA)
	personB, errB := s.Resolve(ctx, nameB)
	if errA != nil || errB != nil {
		var missing []string
		for _, e := range []error{errA, errB} {
			if e == nil {
				continue
			}
			if !errors.Is(e, ErrPersonNotFound) {
				return nil, e
			}
			missing = append(missing, strings.TrimPrefix(e.Error(), ErrPersonNotFound.Error()+": "))
		}
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, strings.Join(missing, ", "))
	}

	keysA, err := s.creditTitleIDs(ctx, personA.ID, nil)
	if err != nil {
		return nil, err
	}
	keysB, err := s.creditTitleIDs(ctx, personB.ID, nil)
	if err != nil {
		return nil, err
	}
	movies, err := s.moviesByID(ctx, keysA.Intersect(keysB))
	if err != nil {
		return nil, err
	}
	return &Collaboration{PersonA: *personA, PersonB: *personB, Movies: movies}, nil
}

// GenreStat is one row of the genre aggregate. AvgRuntime is nil when no
// movie in the genre has a runtime; absent runtimes are excluded from the
// average rather than counted as zero.
type GenreStat struct {
	Genre      string   `bson:"_id"`
	Count      int64    `bson:"count"`
	AvgRuntime *float64 `bson:"avg_runtime"`
}

func (s *Store) GenreStats(ctx context.Context) ([]GenreStat, error) {
	cursor, err := s.movies().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$unwind", Value: "$genres"}},
		{{Key: "$match", Value: bson.M{"genres": bson.M{"$ne": nil}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$genres",
			"count":       bson.M{"$sum": 1},
			"avg_runtime": bson.M{"$avg": "$runtime_min"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	var stats []GenreStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

type YearStat struct {
	Year  int   `bson:"_id"`
	Count int64 `bson:"count"`
}

// YearStats reports which years released the most movies.
func (s *Store) YearStats(ctx context.Context) ([]YearStat, error) {
	cursor, err := s.movies().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$year",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: s.config.Query.SearchLimit}},
	})
	if err != nil {
		return nil, err
	}
	var stats []YearStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

type CreditCount struct {
	Person  Person
	Credits int64
}

// ProlificPeople ranks people by credit count within the given categories.
func (s *Store) ProlificPeople(ctx context.Context, categories []string, limit int) ([]CreditCount, error) {
	match := bson.M{}
	if len(categories) > 0 {
		match["category"] = bson.M{"$in": categories}
	}
	cursor, err := s.principals().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$nconst",
			"credits": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "credits", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	})
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID      imdb.PersonID `bson:"_id"`
		Credits int64         `bson:"credits"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	// second lookup resolves the key set to people
	ids := make([]imdb.PersonID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	people := make(map[imdb.PersonID]Person, len(ids))
	if len(ids) > 0 {
		pc, err := s.people().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		var list []Person
		if err := pc.All(ctx, &list); err != nil {
			return nil, err
		}
		for _, p := range list {
			people[p.ID] = p
		}
	}

	counts := make([]CreditCount, 0, len(rows))
	for _, r := range rows {
		person, ok := people[r.ID]
		if !ok {
			// credit references a person outside the loaded set
			person = Person{ID: r.ID, Name: r.ID.String()}
		}
		counts = append(counts, CreditCount{Person: person, Credits: r.Credits})
	}
	return counts, nil
}
