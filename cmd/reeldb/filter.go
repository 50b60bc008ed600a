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
	"fmt"

	"github.com/reeldb/reeldb/imdb"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "filter the extracts to a consistent subset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		result, err := imdb.NewFilter(cfg).Run()
		if err != nil {
			return err
		}
		fmt.Printf("titles     %d / %d (%d unique)\n",
			result.Titles.Kept, result.Titles.Total, result.Titles.Distinct)
		fmt.Printf("principals %d / %d (%d unique people)\n",
			result.Principals.Kept, result.Principals.Total, result.Principals.Distinct)
		fmt.Printf("names      %d / %d\n",
			result.Names.Kept, result.Names.Total)
		fmt.Printf("filtered files written to %s\n", cfg.Dataset.FilteredDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
}
