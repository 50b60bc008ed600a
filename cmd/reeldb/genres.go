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

	"github.com/spf13/cobra"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "movie count and average runtime per genre",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := openStore(ctx)
		defer s.Close(ctx)

		stats, err := s.GenreStats(ctx)
		if err != nil {
			return err
		}
		for _, g := range stats {
			if g.AvgRuntime != nil {
				fmt.Printf("%-20s %6d movies  avg %.1f min\n", g.Genre, g.Count, *g.AvgRuntime)
			} else {
				fmt.Printf("%-20s %6d movies\n", g.Genre, g.Count)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}
