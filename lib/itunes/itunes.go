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

package itunes

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/podpulse/podpulse/config"
	"github.com/podpulse/podpulse/lib/client"
)

// ITunes talks to the iTunes Search API to find podcasts and resolve
// collection ids to feed URLs.
//
// https://developer.apple.com/library/archive/documentation/AudioVideo/Conceptual/iTuneSearchAPI/
type ITunes struct {
	config *config.Config
	client *client.Client
}

func NewITunes(config *config.Config) *ITunes {
	return &ITunes{
		config: config,
		client: client.NewClient(&config.Client),
	}
}

type Result struct {
	CollectionID     int64    `json:"collectionId"`
	CollectionName   string   `json:"collectionName"`
	ArtistName       string   `json:"artistName"`
	ArtworkUrl60     string   `json:"artworkUrl60"`
	ArtworkUrl100    string   `json:"artworkUrl100"`
	ArtworkUrl600    string   `json:"artworkUrl600"`
	FeedURL          string   `json:"feedUrl"`
	TrackCount       int      `json:"trackCount"`
	PrimaryGenreName string   `json:"primaryGenreName"`
	Genres           []string `json:"genres"`
}

type Results struct {
	ResultCount int      `json:"resultCount"`
	Results     []Result `json:"results"`
}

var ErrNotFound = errors.New("itunes id not found")

func (i *ITunes) Search(term string, limit int) (*Results, error) {
	if limit <= 0 {
		limit = i.config.ITunes.SearchLimit
	}
	v := url.Values{}
	v.Set("term", term)
	v.Set("media", "podcast")
	v.Set("entity", "podcast")
	v.Set("limit", fmt.Sprintf("%d", limit))

	var result Results
	err := i.client.GetJson(
		"https://itunes.apple.com/search?"+v.Encode(), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (i *ITunes) Lookup(ids string) (*Results, error) {
	v := url.Values{}
	v.Set("id", ids)

	var result Results
	err := i.client.GetJson(
		"https://itunes.apple.com/lookup?"+v.Encode(), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// LookupPodcast resolves a single collection id.
func (i *ITunes) LookupPodcast(id int64) (Result, error) {
	result, err := i.Lookup(fmt.Sprintf("%d", id))
	if err != nil {
		return Result{}, err
	}
	if result.ResultCount != 1 || len(result.Results) != 1 {
		return Result{}, ErrNotFound
	}
	return result.Results[0], nil
}
