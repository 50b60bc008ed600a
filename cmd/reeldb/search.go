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

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/reeldb/reeldb/film"
	"github.com/spf13/cobra"
)

var searchYear int
var searchGenre string

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "search movies by title, year, and genre",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := openStore(ctx)
		defer s.Close(ctx)

		q := film.SearchQuery{Year: searchYear, Genre: searchGenre}
		if len(args) > 0 {
			q.Name = strings.Join(args, " ")
		}
		results, err := s.SearchMovies(ctx, q)
		if err != nil {
			return err
		}
		for _, m := range results.Movies {
			fmt.Printf("%d  %s  (%s)\n", m.Year, m.Title, genreList(m))
		}
		fmt.Printf("showing %d of %d\n", len(results.Movies), results.Total)
		return nil
	},
}

func genreList(m film.Movie) string {
	if len(m.Genres) == 0 {
		return "N/A"
	}
	return strings.Join(m.Genres, ", ")
}

func init() {
	searchCmd.Flags().IntVar(&searchYear, "year", 0, "exact release year")
	searchCmd.Flags().StringVar(&searchGenre, "genre", "", "genre tag")
	rootCmd.AddCommand(searchCmd)
}
