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

	"github.com/spf13/cobra"
)

var filmographyCategories []string

var filmographyCmd = &cobra.Command{
	Use:   "filmography <name>",
	Short: "movies credited to a person, oldest first",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := openStore(ctx)
		defer s.Close(ctx)

		result, err := s.Filmography(ctx, strings.Join(args, " "), filmographyCategories)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", result.Person.Name, result.Person.ID)
		for _, m := range result.Movies {
			fmt.Printf("%d  %s  (%s)\n", m.Year, m.Title, genreList(m))
		}
		fmt.Printf("%d movies\n", len(result.Movies))
		return nil
	},
}

func init() {
	filmographyCmd.Flags().StringSliceVar(&filmographyCategories, "category", nil,
		"restrict to role categories (e.g. director)")
	rootCmd.AddCommand(filmographyCmd)
}
