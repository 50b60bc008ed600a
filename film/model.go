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
	"github.com/reeldb/reeldb/imdb"
)

const (
	MovieCollection     = "movies"
	PrincipalCollection = "principals"
	PersonCollection    = "people"
)

// Movie is one title document. Year is always present; the keep-rule
// rejects titles without one. Runtime is nil when the source had no value,
// never zero. Genres is nil when absent.
type Movie struct {
	ID      imdb.TitleID `bson:"_id"`
	Type    string       `bson:"type"`
	Title   string       `bson:"title"`
	Year    int          `bson:"year"`
	Runtime *int         `bson:"runtime_min"`
	Genres  []string     `bson:"genres"`
	Adult   bool         `bson:"is_adult"`
}

// Principal links one movie and one person through a role category. There
// is no enforced primary key; duplicates in the source are tolerated and
// queries de-duplicate through key sets.
type Principal struct {
	TitleID    imdb.TitleID  `bson:"tconst"`
	PersonID   imdb.PersonID `bson:"nconst"`
	Category   string        `bson:"category"`
	Ordering   *int          `bson:"ordering,omitempty"`
	Characters *string       `bson:"characters,omitempty"`
}

type Person struct {
	ID          imdb.PersonID  `bson:"_id"`
	Name        string         `bson:"name"`
	BirthYear   *int           `bson:"birth_year"`
	DeathYear   *int           `bson:"death_year"`
	Professions []string       `bson:"professions,omitempty"`
	KnownFor    []imdb.TitleID `bson:"known_for,omitempty"`
}
