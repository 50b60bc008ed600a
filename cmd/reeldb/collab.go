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

var collabCmd = &cobra.Command{
	Use:   "collab <name> <name>",
	Short: "movies crediting both people",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := openStore(ctx)
		defer s.Close(ctx)

		result, err := s.Collaboration(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		for _, m := range result.Movies {
			fmt.Printf("%d  %s\n", m.Year, m.Title)
		}
		fmt.Printf("%d movies with both %s and %s\n",
			len(result.Movies), result.PersonA.Name, result.PersonB.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collabCmd)
}
