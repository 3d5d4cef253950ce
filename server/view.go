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
	"github.com/podpulse/podpulse/podcast"
)

// PodcastView is a podcast row plus its episode count for listing screens.
type PodcastView struct {
	podcast.Podcast
	TrackCount int64 `json:"trackCount"`
}

type PodcastDetailView struct {
	Podcast PodcastView       `json:"podcast"`
	Items   []podcast.Episode `json:"items"`
}

// FavoriteView attaches the episode rows currently carrying the favorite's
// track id.
type FavoriteView struct {
	podcast.FavoriteEpisode
	Items []podcast.Episode `json:"items"`
}

type WatchedView struct {
	Watched []int64 `json:"watched"`
}

type SearchView struct {
	Podcasts []podcast.Podcast `json:"podcasts"`
	Episodes []podcast.Episode `json:"episodes"`
}

type UpdatedView struct {
	Updated int `json:"updated"`
}
