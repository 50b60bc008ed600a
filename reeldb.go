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

// Package reeldb filters the IMDb tab-delimited extracts into a consistent
// subset, loads them into MongoDB collections, and answers filmography,
// collaboration and genre queries with key-set joins.
package reeldb

const (
	AppName = "reeldb"
	Version = "0.3.1"
	Contact = "dev@reeldb.org"
)

func UserAgent() string {
	return AppName + "/" + Version + " ( " + Contact + " ) "
}
