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

// Package film is the document store: the movie, principal and people
// collections, the batch loader that rebuilds them from the extracts, and
// the read-only query engine. The store has no native joins; every
// traversal is an index lookup producing a key set followed by an in-set
// membership filter.
package film

import (
	"context"

	"github.com/reeldb/reeldb"
	"github.com/reeldb/reeldb/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store owns the connection to one logical database. Queries are read-only
// and safe to call concurrently; the loader is not, and is expected to run
// alone before any querying.
type Store struct {
	config *config.Config
	client *mongo.Client
	db     *mongo.Database
}

func NewStore(config *config.Config) *Store {
	return &Store{config: config}
}

// Open connects and pings. The ping makes connectivity failures surface
// here, before any input file is read or any collection dropped.
func (s *Store) Open(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Store.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(s.config.Store.URI).
		SetAppName(reeldb.AppName)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return err
	}
	s.client = client
	s.db = client.Database(s.config.Store.Database)
	return nil
}

func (s *Store) Close(ctx context.Context) {
	if s.client != nil {
		s.client.Disconnect(ctx)
	}
}

func (s *Store) movies() *mongo.Collection {
	return s.db.Collection(MovieCollection)
}

func (s *Store) principals() *mongo.Collection {
	return s.db.Collection(PrincipalCollection)
}

func (s *Store) people() *mongo.Collection {
	return s.db.Collection(PersonCollection)
}
