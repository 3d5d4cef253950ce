// Copyright (C) 2023 The PodPulse Authors.
//
// This file is part of PodPulse.
//
// PodPulse is free software: you can redistribute it and/or modify it under
// the terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// PodPulse is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License for
// more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with PodPulse.  If not, see <https://www.gnu.org/licenses/>.

package podcast

import (
	"path/filepath"
	"testing"

	"github.com/podpulse/podpulse/config"
)

func testService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig %s", err)
	}
	cfg.Client.CacheDir = filepath.Join(dir, ".httpcache")
	cfg.Podcast.Client.UseCache = false
	cfg.Podcast.DB.Source = filepath.Join(dir, "podpulse.db")
	cfg.Podcast.DownloadDir = filepath.Join(dir, "downloads")
	cfg.Podcast.MigrationsDir = filepath.Join(dir, "migrations")
	cfg.Search.BleveDir = dir

	s := NewService(cfg)
	err = s.Open()
	if err != nil {
		t.Fatalf("Open %s", err)
	}
	t.Cleanup(s.Close)
	return s
}
