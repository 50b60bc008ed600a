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
	"os"

	"github.com/reeldb/reeldb/config"
	"github.com/reeldb/reeldb/film"
	"github.com/reeldb/reeldb/lib/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reeldb",
	Short: "Reeldb filters and loads the IMDb extracts and answers join queries",
}

var configFile string
var configPath string
var configName string

func getConfig() *config.Config {
	if configPath == "" {
		configPath = os.Getenv("REELDB_HOME")
	}
	if configName == "" {
		configName = os.Getenv("REELDB_CONFIG")
	}
	if configFile != "" {
		config.SetConfigFile(configFile)
	} else {
		if configPath == "" {
			configPath = "."
		}
		if configName == "" {
			configName = "reeldb"
		}
		config.AddConfigPath(configPath)
		config.SetConfigName(configName)
	}
	cfg, err := config.GetConfig()
	log.CheckError(err)
	return cfg
}

// openStore connects and pings before anything else happens; a store that
// is down should fail the run before any file is touched.
func openStore(ctx context.Context) *film.Store {
	s := film.NewStore(getConfig())
	log.CheckError(s.Open(ctx))
	return s
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
