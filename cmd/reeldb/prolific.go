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

var prolificCategories []string
var prolificLimit int

var prolificCmd = &cobra.Command{
	Use:   "prolific",
	Short: "people with the most credits",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := openStore(ctx)
		defer s.Close(ctx)

		counts, err := s.ProlificPeople(ctx, prolificCategories, prolificLimit)
		if err != nil {
			return err
		}
		for _, c := range counts {
			fmt.Printf("%-30s %d credits\n", c.Person.Name, c.Credits)
		}
		return nil
	},
}

func init() {
	prolificCmd.Flags().StringSliceVar(&prolificCategories, "category",
		[]string{"actor", "actress"}, "role categories to count")
	prolificCmd.Flags().IntVar(&prolificLimit, "limit", 10, "number of people")
	rootCmd.AddCommand(prolificCmd)
}
