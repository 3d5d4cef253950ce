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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeFilename(t *testing.T) {
	cases := map[string]string{
		"My Show: Episode #1!":  "My-Show-Episode-1",
		"  plain  ":             "plain",
		"tabs\tand\nnewlines":   "tabs-and-newlines",
		"dots.keep_under-score": "dots.keep_under-score",
		"":                      "",
	}
	for name, expect := range cases {
		if got := SafeFilename(name); got != expect {
			t.Errorf("SafeFilename(%q) = %q, want %q", name, got, expect)
		}
	}

	long := SafeFilename(strings.Repeat("x", 500))
	if len(long) != 240 {
		t.Errorf("expected 240 chars, got %d", len(long))
	}
}

func TestEpisodeFilename(t *testing.T) {
	e := Episode{
		PodcastID: 3,
		TrackID:   1683072000000,
		Title:     "Big News Day",
		MediaURL:  "https://example.com/media/ep.m4a?token=abc",
	}
	if got := EpisodeFilename(e); got != "pod3-trk1683072000000-Big-News-Day.m4a" {
		t.Errorf("unexpected filename %q", got)
	}

	e.MediaURL = "https://example.com/media/stream"
	if got := EpisodeFilename(e); got != "pod3-trk1683072000000-Big-News-Day.mp3" {
		t.Errorf("expected .mp3 default, got %q", got)
	}

	e.Title = "!!!"
	if got := EpisodeFilename(e); got != "pod3-trk1683072000000-track-1683072000000.mp3" {
		t.Errorf("expected track fallback, got %q", got)
	}
}

func TestPosterFilename(t *testing.T) {
	p := Podcast{ImageURL: "https://example.com/art.png?s=600"}
	p.ID = 7
	if got := PosterFilename(p); got != "pod7-poster.png" {
		t.Errorf("unexpected poster name %q", got)
	}
	p.ImageURL = "https://example.com/art"
	if got := PosterFilename(p); got != "pod7-poster.jpg" {
		t.Errorf("expected .jpg default, got %q", got)
	}
}

func TestDownloads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("fake audio bytes"))
		}))
	defer server.Close()

	s := testService(t)
	p, _ := s.CreatePodcast(Podcast{Title: "Test Cast", Artist: "Host", ITunesID: 1})
	e, _, _ := s.createEpisodeIfNew(Episode{
		PodcastID:   p.ID,
		TrackID:     1683072000000,
		Title:       "First Episode",
		MediaURL:    server.URL + "/media/ep1.mp3",
		PublishDate: 1683072000,
	})

	updated, err := s.Downloads(context.Background(), NewSyncOptions())
	if err != nil {
		t.Fatalf("Downloads %s", err)
	}
	if updated != 1 {
		t.Errorf("expected 1 downloaded, got %d", updated)
	}

	e, err = s.LookupEpisode(int(e.ID))
	if err != nil {
		t.Fatalf("LookupEpisode %s", err)
	}
	if !e.IsDownloaded() {
		t.Error("episode should be downloaded")
	}
	if e.Filename != "pod1-trk1683072000000-First-Episode.mp3" {
		t.Errorf("unexpected filename %q", e.Filename)
	}
	if _, err := os.Stat(filepath.Join(s.config.Podcast.DownloadDir, e.Filename)); err != nil {
		t.Errorf("media file missing: %s", err)
	}

	if len(s.PendingEpisodes()) != 0 {
		t.Error("nothing should be pending")
	}
}

func TestDownloadsFailureStaysPending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			// promise more than is sent so the transfer fails mid-stream
			w.Header().Set("Content-Length", "100000")
			w.Write([]byte("truncated"))
		}))
	defer server.Close()

	s := testService(t)
	p, _ := s.CreatePodcast(Podcast{Title: "Test Cast", ITunesID: 1})
	e, _, _ := s.createEpisodeIfNew(Episode{
		PodcastID: p.ID,
		TrackID:   1683072000000,
		Title:     "Flaky Episode",
		MediaURL:  server.URL + "/media/ep1.mp3",
	})

	updated, err := s.Downloads(context.Background(), NewSyncOptions())
	if err != nil {
		t.Fatalf("Downloads %s", err)
	}
	if updated != 0 {
		t.Errorf("failed transfer should not count, got %d", updated)
	}

	e, _ = s.LookupEpisode(int(e.ID))
	if e.IsDownloaded() {
		t.Error("episode should remain pending")
	}

	entries, _ := os.ReadDir(s.config.Podcast.DownloadDir)
	for _, entry := range entries {
		t.Errorf("no file should remain, found %s", entry.Name())
	}
}

func TestDownloadsDryRun(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Write([]byte("fake audio bytes"))
		}))
	defer server.Close()

	s := testService(t)
	p, _ := s.CreatePodcast(Podcast{Title: "Test Cast", ITunesID: 1})
	e, _, _ := s.createEpisodeIfNew(Episode{
		PodcastID: p.ID,
		TrackID:   1683072000000,
		Title:     "First Episode",
		MediaURL:  server.URL + "/media/ep1.mp3",
	})

	options := NewSyncOptions()
	options.DryRun = true
	updated, err := s.Downloads(context.Background(), options)
	if err != nil {
		t.Fatalf("Downloads %s", err)
	}
	if updated != 0 {
		t.Errorf("dry-run should not count downloads, got %d", updated)
	}
	if hits != 0 {
		t.Errorf("dry-run should not touch the network, got %d hits", hits)
	}

	e, _ = s.LookupEpisode(int(e.ID))
	if e.Filename == "" {
		t.Error("dry-run should record the resolved filename")
	}
	if e.IsDownloaded() {
		t.Error("dry-run should leave the episode pending")
	}
}

func TestDownloadsTaggingBestEffort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/art/") {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte("fake audio bytes"))
		}))
	defer server.Close()

	s := testService(t)
	p, _ := s.CreatePodcast(Podcast{Title: "Test Cast", Artist: "Host", ITunesID: 1})
	e, _, _ := s.createEpisodeIfNew(Episode{
		PodcastID: p.ID,
		TrackID:   1683072000000,
		Title:     "First Episode",
		MediaURL:  server.URL + "/media/ep1.mp3",
		ImageURL:  server.URL + "/art/missing.jpg",
	})

	updated, err := s.Downloads(context.Background(), NewSyncOptions())
	if err != nil {
		t.Fatalf("Downloads %s", err)
	}
	if updated != 1 {
		t.Errorf("cover trouble should not block the download, got %d", updated)
	}
	e, _ = s.LookupEpisode(int(e.ID))
	if !e.IsDownloaded() {
		t.Error("episode should be downloaded despite tagging trouble")
	}
}

func TestDownloadsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("fake audio bytes"))
		}))
	defer server.Close()

	s := testService(t)
	p, _ := s.CreatePodcast(Podcast{Title: "Test Cast", ITunesID: 1})
	for i := 0; i < 3; i++ {
		s.createEpisodeIfNew(Episode{
			PodcastID: p.ID,
			TrackID:   int64(1000 + i),
			Title:     "Episode",
			MediaURL:  server.URL + "/media/ep.mp3",
		})
	}

	options := NewSyncOptions()
	options.Limit = 2
	updated, err := s.Downloads(context.Background(), options)
	if err != nil {
		t.Fatalf("Downloads %s", err)
	}
	if updated != 2 {
		t.Errorf("expected 2 downloads, got %d", updated)
	}
	if len(s.PendingEpisodes()) != 1 {
		t.Errorf("expected 1 still pending, got %d", len(s.PendingEpisodes()))
	}
}
