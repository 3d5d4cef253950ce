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
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/podpulse/podpulse/lib/date"
	"github.com/podpulse/podpulse/lib/str"
)

// FeedInfo is the channel-level metadata of a fetched feed.
type FeedInfo struct {
	Title    string
	Author   string
	Genre    string
	ImageURL string
}

// FeedEntry is one normalized feed item. A pure parse result; identity
// derivation and persistence happen elsewhere.
type FeedEntry struct {
	Title       string
	Desc        string
	Author      string
	Keywords    string
	MediaURL    string
	ImageURL    string
	GUID        string
	PublishTime time.Time
}

// Feed is the parsed form of one RSS/Atom document.
type Feed struct {
	Info    FeedInfo
	Entries []FeedEntry
}

// FetchFeed retrieves and parses the feed at location, which is either an
// http(s) URL or a local file path. A location that is neither fails with
// ErrInvalidSource before any network I/O.
func (s *Service) FetchFeed(location string) (*Feed, error) {
	var data []byte
	if strings.HasPrefix(location, "http") {
		_, body, err := s.client.Get(location)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrTransfer, err)
		}
		data = body
	} else {
		body, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSource, location)
		}
		data = body
	}
	return parseFeed(data)
}

func parseFeed(data []byte) (*Feed, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFeedParse, err)
	}

	feed := &Feed{Info: feedInfo(parsed)}
	for _, item := range parsed.Items {
		feed.Entries = append(feed.Entries, feedEntry(item))
	}
	return feed, nil
}

func feedInfo(f *gofeed.Feed) FeedInfo {
	info := FeedInfo{
		Title: f.Title,
		Genre: str.Join(f.Categories),
	}
	if f.Author != nil {
		info.Author = f.Author.Name
	}
	if f.Image != nil {
		info.ImageURL = f.Image.URL
	}
	if f.ITunesExt != nil {
		if info.Author == "" {
			info.Author = f.ITunesExt.Author
		}
		if info.ImageURL == "" {
			info.ImageURL = f.ITunesExt.Image
		}
	}
	return info
}

func feedEntry(item *gofeed.Item) FeedEntry {
	entry := FeedEntry{
		Title:    item.Title,
		Desc:     item.Description,
		Keywords: str.Join(item.Categories),
		GUID:     item.GUID,
	}
	if item.Author != nil {
		entry.Author = item.Author.Name
	}
	if len(item.Enclosures) > 0 {
		entry.MediaURL = item.Enclosures[0].URL
	}
	if item.Image != nil {
		entry.ImageURL = item.Image.URL
	}
	if item.ITunesExt != nil {
		if entry.Author == "" {
			entry.Author = item.ITunesExt.Author
		}
		if entry.ImageURL == "" {
			entry.ImageURL = item.ITunesExt.Image
		}
		if item.ITunesExt.Keywords != "" {
			entry.Keywords = item.ITunesExt.Keywords
		}
	}
	if item.PublishedParsed != nil {
		entry.PublishTime = *item.PublishedParsed
	} else {
		entry.PublishTime = date.ParseRFC1123(item.Published)
	}
	return entry
}
