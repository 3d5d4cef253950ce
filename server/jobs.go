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

package server

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/podpulse/podpulse/config"
	"github.com/podpulse/podpulse/lib/log"
	"github.com/podpulse/podpulse/podcast"
)

func schedule(config *config.Config) {
	scheduler := gocron.NewScheduler(time.UTC)

	scheduler.Every(config.Podcast.SyncInterval).WaitForSchedule().Do(func() {
		err := syncPodcasts(config)
		if err != nil {
			log.Println(err)
		}
	})

	scheduler.StartAsync()
}

func syncPodcasts(config *config.Config) error {
	log.Printf("sync podcasts\n")
	p := podcast.NewService(config)
	err := p.Open()
	if err != nil {
		return err
	}
	defer p.Close()
	_, err = p.Sync(context.Background(), podcast.NewSyncOptions())
	return err
}
