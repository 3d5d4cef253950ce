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
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
<title>Test Cast</title>
<itunes:author>The Hosts</itunes:author>
<image><url>https://example.com/cover.jpg</url></image>
<item>
<title>First Episode</title>
<guid>ep-1</guid>
<description>getting started</description>
<pubDate>Tue, 02 May 2023 09:30:00 +0000</pubDate>
<enclosure url="https://example.com/media/ep1.mp3" length="123" type="audio/mpeg"/>
</item>
<item>
<title>Second Episode</title>
<guid>ep-2</guid>
<pubDate>Wed, 03 May 2023 10:00:00 +0000</pubDate>
<enclosure url="https://example.com/media/ep2.mp3" length="123" type="audio/mpeg"/>
</item>
<item>
<title>Same Day Repost</title>
<guid>ep-3</guid>
<pubDate>Wed, 03 May 2023 22:00:00 +0000</pubDate>
<enclosure url="https://example.com/media/ep3.mp3" length="123" type="audio/mpeg"/>
</item>
<item>
<title>Undated</title>
<guid>ep-4</guid>
</item>
</channel>
</rss>`

func writeTestFeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.xml")
	if err := os.WriteFile(path, []byte(testFeed), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFetchFeedFile(t *testing.T) {
	s := testService(t)

	feed, err := s.FetchFeed(writeTestFeed(t))
	if err != nil {
		t.Fatalf("FetchFeed %s", err)
	}
	if feed.Info.Title != "Test Cast" {
		t.Errorf("unexpected title %q", feed.Info.Title)
	}
	if feed.Info.Author != "The Hosts" {
		t.Errorf("expected itunes author, got %q", feed.Info.Author)
	}
	if feed.Info.ImageURL != "https://example.com/cover.jpg" {
		t.Errorf("unexpected image %q", feed.Info.ImageURL)
	}
	if len(feed.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(feed.Entries))
	}

	first := feed.Entries[0]
	if first.MediaURL != "https://example.com/media/ep1.mp3" {
		t.Errorf("unexpected media url %q", first.MediaURL)
	}
	if first.GUID != "ep-1" {
		t.Errorf("unexpected guid %q", first.GUID)
	}
	if first.PublishTime.IsZero() {
		t.Error("expected parsed publish time")
	}
	if feed.Entries[3].PublishTime.IsZero() == false {
		t.Error("undated entry should have zero publish time")
	}
}

func TestFetchFeedInvalidSource(t *testing.T) {
	s := testService(t)

	_, err := s.FetchFeed("/no/such/feed.xml")
	if !errors.Is(err, ErrInvalidSource) {
		t.Errorf("expected ErrInvalidSource, got %v", err)
	}
}

func TestFetchFeedParseError(t *testing.T) {
	s := testService(t)

	path := filepath.Join(t.TempDir(), "bad.xml")
	if err := os.WriteFile(path, []byte("this is not xml"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := s.FetchFeed(path)
	if !errors.Is(err, ErrFeedParse) {
		t.Errorf("expected ErrFeedParse, got %v", err)
	}
}
