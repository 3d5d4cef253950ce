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
	"context"
	"time"

	"github.com/podpulse/podpulse/lib/date"
	"github.com/podpulse/podpulse/lib/log"
)

type SyncOptions struct {
	Limit  int  // cap on successful downloads, 0 is unlimited
	DryRun bool // resolve filenames without transfers
}

func NewSyncOptions() *SyncOptions {
	return &SyncOptions{}
}

// Sync is one full reconciliation pass: refresh every active feed, then
// download pending episodes. Returns the number of episodes downloaded or,
// in dry-run, resolved. Single-unit failures are logged and skipped.
func (s *Service) Sync(ctx context.Context, options *SyncOptions) (int, error) {
	s.RefreshFeeds()
	return s.Downloads(ctx, options)
}

// RefreshFeeds fetches and reconciles the feed of every non-suspended
// podcast. One podcast failing never aborts the pass.
func (s *Service) RefreshFeeds() {
	for _, p := range s.activePodcasts() {
		added, err := s.refreshPodcast(p)
		if err != nil {
			log.Printf("sync %s: %s\n", p.Title, err)
			continue
		}
		if added > 0 {
			log.Printf("sync %s: %d new episodes\n", p.Title, added)
		}
	}
}

// RefreshPodcast reconciles a single podcast's feed, suspended or not.
func (s *Service) RefreshPodcast(id int) (int, error) {
	p, err := s.LookupPodcast(id)
	if err != nil {
		return 0, err
	}
	return s.refreshPodcast(p)
}

func (s *Service) activePodcasts() []Podcast {
	var podcasts []Podcast
	s.db.Where("suspended = 0 and rss_url <> ''").Find(&podcasts)
	return podcasts
}

func (s *Service) refreshPodcast(p Podcast) (int, error) {
	feed, err := s.FetchFeed(p.RSSURL)
	if err != nil {
		return 0, err
	}

	added := 0
	var created []Episode
	for _, entry := range feed.Entries {
		if entry.PublishTime.IsZero() {
			log.Printf("skipping %q: no publish date\n", entry.Title)
			continue
		}
		e := episodeFrom(p, entry)
		e, isNew, err := s.createEpisodeIfNew(e)
		if err != nil {
			return added, err
		}
		if isNew {
			added++
			created = append(created, e)
		}
	}
	s.indexEpisodes(created)
	return added, nil
}

// episodeFrom derives the stored episode for a feed entry. The track id is
// the day-truncated publish instant in milliseconds; entries published the
// same day collapse to one row.
func episodeFrom(p Podcast, entry FeedEntry) Episode {
	e := Episode{
		PodcastID:   p.ID,
		TrackID:     date.TrackID(entry.PublishTime),
		GUID:        entry.GUID,
		Title:       entry.Title,
		Desc:        entry.Desc,
		Keywords:    entry.Keywords,
		Author:      entry.Author,
		MediaURL:    entry.MediaURL,
		ImageURL:    entry.ImageURL,
		PublishDate: date.StartOfDay(entry.PublishTime).Unix(),
	}
	if e.Title == "" {
		e.Title = "No title"
	}
	if e.Author == "" {
		e.Author = p.Artist
	}
	if e.ImageURL == "" {
		e.ImageURL = p.ImageURL
	}
	return e
}

// Subscribe creates the podcast unless its external identity already exists,
// then reconciles its feed. Both the API create path and the CLI import/add
// commands go through here.
func (s *Service) Subscribe(p Podcast) (Podcast, error) {
	if p.Date == 0 {
		p.Date = time.Now().Unix()
	}
	p, err := s.CreatePodcast(p)
	if err != nil {
		return Podcast{}, err
	}
	_, err = s.refreshPodcast(p)
	return p, err
}

// ImportFeed subscribes to a bare RSS location (URL or file) with no iTunes
// identity; the channel metadata fills in the podcast row. The feed is
// fetched and validated before anything is stored.
func (s *Service) ImportFeed(location string) (Podcast, error) {
	if existing := s.findPodcastByRSS(location); existing != nil {
		return *existing, nil
	}
	feed, err := s.FetchFeed(location)
	if err != nil {
		return Podcast{}, err
	}
	return s.Subscribe(Podcast{
		Title:    feed.Info.Title,
		Artist:   feed.Info.Author,
		Genre:    feed.Info.Genre,
		RSSURL:   location,
		ImageURL: feed.Info.ImageURL,
	})
}
