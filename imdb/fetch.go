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

package imdb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cavaliercoder/grab"
	"github.com/reeldb/reeldb"
	"github.com/reeldb/reeldb/config"
	"github.com/reeldb/reeldb/lib/log"
)

// Fetch downloads the three gzipped extracts into Dataset.Dir. Interrupted
// downloads resume; files already complete are left alone.
func Fetch(cfg *config.Config) error {
	d := cfg.Dataset
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return err
	}

	client := grab.NewClient()
	client.UserAgent = reeldb.UserAgent()

	for _, name := range []string{d.Titles, d.Principals, d.Names} {
		url := fmt.Sprintf("%s/%s.gz", d.Endpoint, name)
		dst := filepath.Join(d.Dir, name+".gz")
		if err := fetchFile(client, url, dst); err != nil {
			return fmt.Errorf("fetch %s: %w", url, err)
		}
	}
	return nil
}

func fetchFile(client *grab.Client, url, dst string) error {
	req, err := grab.NewRequest(dst, url)
	if err != nil {
		return err
	}

	log.Printf("fetching %s", url)
	resp := client.Do(req)

	t := time.NewTicker(5 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			log.Printf("  %s %.1f%%", filepath.Base(dst), 100*resp.Progress())
		case <-resp.Done:
			if err := resp.Err(); err != nil {
				return err
			}
			log.Printf("  %s done (%d bytes)", filepath.Base(dst), resp.BytesComplete())
			return nil
		}
	}
}
