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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatasetConfig locates the three IMDb extracts. Endpoint is only used by
// the fetcher; the filter and loader work from Dir and FilteredDir.
type DatasetConfig struct {
	Endpoint    string
	Dir         string
	FilteredDir string
	Titles      string
	Principals  string
	Names       string
}

func (d DatasetConfig) TitlesPath() string {
	return filepath.Join(d.Dir, d.Titles)
}

func (d DatasetConfig) PrincipalsPath() string {
	return filepath.Join(d.Dir, d.Principals)
}

func (d DatasetConfig) NamesPath() string {
	return filepath.Join(d.Dir, d.Names)
}

func (d DatasetConfig) FilteredTitlesPath() string {
	return filepath.Join(d.FilteredDir, d.Titles)
}

func (d DatasetConfig) FilteredPrincipalsPath() string {
	return filepath.Join(d.FilteredDir, d.Principals)
}

func (d DatasetConfig) FilteredNamesPath() string {
	return filepath.Join(d.FilteredDir, d.Names)
}

// FilterConfig is the keep-rule for the cascade and the loader. YearCutoff
// is strict: a title released in the cutoff year itself is rejected.
type FilterConfig struct {
	TitleType  string
	YearCutoff int
	Categories []string
}

func (f FilterConfig) Allowed(category string) bool {
	for _, c := range f.Categories {
		if c == category {
			return true
		}
	}
	return false
}

type StoreConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type LoaderConfig struct {
	BatchSize int
}

type QueryConfig struct {
	SearchLimit int
}

type Config struct {
	DataDir string
	Dataset DatasetConfig
	Filter  FilterConfig
	Store   StoreConfig
	Load    LoaderConfig
	Query   QueryConfig
}

func configDefaults(v *viper.Viper) {
	v.SetDefault("DataDir", ".")

	v.SetDefault("Dataset.Endpoint", "https://datasets.imdbws.com")
	v.SetDefault("Dataset.Dir", ".")
	v.SetDefault("Dataset.FilteredDir", "filtered")
	v.SetDefault("Dataset.Titles", "title.basics.tsv")
	v.SetDefault("Dataset.Principals", "title.principals.tsv")
	v.SetDefault("Dataset.Names", "name.basics.tsv")

	v.SetDefault("Filter.TitleType", "movie")
	v.SetDefault("Filter.YearCutoff", "1990")
	v.SetDefault("Filter.Categories", []string{"actor", "actress", "director"})

	v.SetDefault("Store.URI", "mongodb://localhost:27017")
	v.SetDefault("Store.Database", "imdb")
	v.SetDefault("Store.Timeout", "1m")

	v.SetDefault("Load.BatchSize", "5000")

	v.SetDefault("Query.SearchLimit", "20")
}

func readConfig(v *viper.Viper) (*Config, error) {
	var config Config
	var pathRegexp = regexp.MustCompile(`(file|dir|source)$`)
	err := v.ReadInConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
		// defaults alone are a usable config
		err = nil
	}
	dir := filepath.Dir(v.ConfigFileUsed())
	for _, k := range v.AllKeys() {
		if pathRegexp.MatchString(k) {
			val := v.Get(k)
			if strings.HasPrefix(val.(string), "/") == false {
				val = fmt.Sprintf("%s/%s", dir, val.(string))
				v.Set(k, val)
			}
		}
	}
	if err == nil {
		err = v.Unmarshal(&config)
	}
	return &config, err
}

// TestConfig builds a config for integration tests from $TEST_CONFIG,
// pointing the store at a scratch database.
func TestConfig() (*Config, error) {
	testDir := os.Getenv("TEST_CONFIG")
	if testDir == "" {
		return nil, errors.New("missing test config")
	}
	v := viper.New()
	configDefaults(v)
	v.SetConfigFile(filepath.Join(testDir, "test.yaml"))
	v.SetDefault("Dataset.Dir", testDir)
	v.SetDefault("Dataset.FilteredDir", filepath.Join(testDir, "filtered"))
	v.SetDefault("Store.Database", "imdb_test")
	return readConfig(v)
}

var configFile, configPath, configName string

func SetConfigFile(path string) {
	configFile = path
}

func AddConfigPath(path string) {
	configPath = path
}

func SetConfigName(name string) {
	configName = name
}

func GetConfig() (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName != "" {
		v.SetConfigName(configName)
	}
	configDefaults(v)
	return readConfig(v)
}

func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	configDefaults(v)
	return readConfig(v)
}
