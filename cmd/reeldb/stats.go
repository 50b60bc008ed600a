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

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "collection counts and year range",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := openStore(ctx)
		defer s.Close(ctx)
		stats, err := s.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("movies     %d\n", stats.Movies)
		fmt.Printf("principals %d\n", stats.Principals)
		fmt.Printf("people     %d\n", stats.People)
		fmt.Printf("years      %d-%d\n", stats.MinYear, stats.MaxYear)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
