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
	"testing"
	"time"

	"github.com/podpulse/podpulse/lib/date"
)

func TestImportFeed(t *testing.T) {
	s := testService(t)
	path := writeTestFeed(t)

	p, err := s.ImportFeed(path)
	if err != nil {
		t.Fatalf("ImportFeed %s", err)
	}
	if p.Title != "Test Cast" {
		t.Errorf("unexpected title %q", p.Title)
	}
	if p.Artist != "The Hosts" {
		t.Errorf("unexpected artist %q", p.Artist)
	}
	if p.RSSURL != path {
		t.Errorf("unexpected rss url %q", p.RSSURL)
	}

	// two same-day entries collapse to one track, the undated one is skipped
	episodes := s.PodcastEpisodes(p.ID)
	if len(episodes) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(episodes))
	}

	// the existing row wins on repeat import
	again, err := s.ImportFeed(path)
	if err != nil {
		t.Fatalf("ImportFeed %s", err)
	}
	if again.ID != p.ID {
		t.Errorf("expected podcast %d, got %d", p.ID, again.ID)
	}
	if s.PodcastCount() != 1 {
		t.Errorf("expected 1 podcast, got %d", s.PodcastCount())
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	s := testService(t)
	path := writeTestFeed(t)

	p, err := s.ImportFeed(path)
	if err != nil {
		t.Fatalf("ImportFeed %s", err)
	}

	added, err := s.RefreshPodcast(int(p.ID))
	if err != nil {
		t.Fatalf("RefreshPodcast %s", err)
	}
	if added != 0 {
		t.Errorf("no new episodes expected, got %d", added)
	}
	if len(s.PodcastEpisodes(p.ID)) != 2 {
		t.Errorf("episode count should be unchanged")
	}
}

func TestEpisodeFrom(t *testing.T) {
	p := Podcast{
		Artist:   "Fallback Host",
		ImageURL: "https://example.com/cover.jpg",
	}
	p.ID = 5

	published := time.Date(2023, 5, 3, 22, 15, 0, 0, time.UTC)
	e := episodeFrom(p, FeedEntry{
		Title:       "Second Episode",
		PublishTime: published,
	})

	if e.PodcastID != 5 {
		t.Errorf("unexpected podcast id %d", e.PodcastID)
	}
	if e.TrackID != date.TrackID(published) {
		t.Errorf("unexpected track id %d", e.TrackID)
	}
	if e.PublishDate != date.StartOfDay(published).Unix() {
		t.Errorf("publish date should be day-truncated")
	}
	if e.Author != "Fallback Host" {
		t.Errorf("author should default to podcast artist, got %q", e.Author)
	}
	if e.ImageURL != "https://example.com/cover.jpg" {
		t.Errorf("image should default to podcast image, got %q", e.ImageURL)
	}

	e = episodeFrom(p, FeedEntry{PublishTime: published})
	if e.Title != "No title" {
		t.Errorf("expected title default, got %q", e.Title)
	}
}

func TestSearchEpisodes(t *testing.T) {
	s := testService(t)

	p, err := s.ImportFeed(writeTestFeed(t))
	if err != nil {
		t.Fatalf("ImportFeed %s", err)
	}

	podcasts, episodes := s.Search("title:first", 10)
	if len(episodes) != 1 {
		t.Fatalf("expected 1 episode hit, got %d", len(episodes))
	}
	if episodes[0].Title != "First Episode" {
		t.Errorf("unexpected hit %q", episodes[0].Title)
	}
	if len(podcasts) != 1 || podcasts[0].ID != p.ID {
		t.Errorf("expected the owning podcast in results")
	}
}
