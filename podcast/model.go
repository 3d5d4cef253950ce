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
	"github.com/podpulse/podpulse/lib/gorm"
)

type Podcast struct {
	gorm.Model
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Genre     string `json:"genre"`
	RSSURL    string `gorm:"column:rss_url" json:"rss_url"`
	ImageURL  string `gorm:"column:image_url" json:"image_url"`
	ITunesID  int64  `gorm:"column:itunes_id;index" json:"itunes_id"` // 0 for manual imports
	Date      int64  `json:"date"`                                    // creation epoch seconds
	Suspended int    `json:"suspended"`                               // 1 excludes from sync
}

func (Podcast) TableName() string {
	return "podcasts"
}

func (p Podcast) IsSuspended() bool {
	return p.Suspended != 0
}

type Episode struct {
	gorm.Model
	PodcastID   uint   `gorm:"column:podcast_id;uniqueIndex:idx_episode_track" json:"podcast_id"`
	TrackID     int64  `gorm:"column:track_id;uniqueIndex:idx_episode_track" json:"track_id"` // derived day key
	GUID        string `gorm:"column:guid" json:"guid"`                                       // feed-native id, display only
	Title       string `json:"title"`
	Desc        string `json:"desc"`
	Keywords    string `json:"keywords"`
	Author      string `json:"author"`
	MediaURL    string `gorm:"column:media_url" json:"media_url"`
	ImageURL    string `gorm:"column:image_url" json:"image_url"`
	PublishDate int64  `gorm:"column:publish_date" json:"publish_date"` // epoch seconds, day granularity
	Filename    string `json:"filename"`
	Downloaded  int    `json:"downloaded"`
	Watched     int    `json:"watched"`
}

func (Episode) TableName() string {
	return "podcasts_items"
}

func (e Episode) HasMedia() bool {
	return e.MediaURL != ""
}

func (e Episode) IsDownloaded() bool {
	return e.Downloaded != 0
}

// FavoriteEpisode references episodes by track_id only. The same track_id can
// appear on multiple episode rows across re-imports, so a favorite survives an
// episode row being replaced.
type FavoriteEpisode struct {
	gorm.Model
	TrackID int64  `gorm:"column:track_id" json:"track_id"`
	AddedAt int64  `gorm:"column:added_at" json:"added_at"`
	Note    string `json:"note"`
}

func (FavoriteEpisode) TableName() string {
	return "favorites_episodes"
}

// Migration records an applied schema migration filename so each script runs
// exactly once across restarts.
type Migration struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Filename  string `gorm:"uniqueIndex" json:"filename"`
	AppliedAt int64  `gorm:"column:applied_at" json:"applied_at"`
}

func (Migration) TableName() string {
	return "migrations_applied"
}
