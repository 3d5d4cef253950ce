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

	"github.com/podpulse/podpulse/config"
	"github.com/podpulse/podpulse/lib/client"
	"github.com/podpulse/podpulse/search"
	"gorm.io/gorm"
)

var (
	ErrInvalidSource    = errors.New("feed source is not a url or file")
	ErrFeedParse        = errors.New("unable to parse feed")
	ErrTransfer         = errors.New("transfer failed")
	ErrPodcastNotFound  = errors.New("podcast not found")
	ErrEpisodeNotFound  = errors.New("episode not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrNoTrackID        = errors.New("episode has no track id")
)

// Service owns the catalog store, the feed client and the episode search
// index. There is one per process; handlers and commands receive it
// explicitly.
type Service struct {
	config *config.Config
	db     *gorm.DB
	client *client.Client
}

func NewService(config *config.Config) *Service {
	c := client.NewClient(mergeClientConfig(config))
	c.SetTimeout(config.Podcast.DownloadTimeout)
	return &Service{
		config: config,
		client: c,
	}
}

func mergeClientConfig(cfg *config.Config) *config.ClientConfig {
	var merged config.ClientConfig
	merged = cfg.Client
	merged.Merge(cfg.Podcast.Client)
	return &merged
}

func (s *Service) Open() (err error) {
	err = s.openDB()
	return
}

func (s *Service) Close() {
	s.closeDB()
}

func (s *Service) newSearch() (*search.Search, error) {
	idx := search.NewSearch(s.config)
	// keywords need exact matching; title, author and desc stay full text
	idx.Keywords = []string{
		FieldKeywords,
	}
	err := idx.Open("podcast")
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Search runs a bleve query over indexed episodes and resolves hits back to
// episode rows, along with the distinct podcasts they belong to.
func (s *Service) Search(q string, limit ...int) (podcasts []Podcast, episodes []Episode) {
	idx, err := s.newSearch()
	if err != nil {
		return
	}
	defer idx.Close()

	l := s.config.Podcast.SearchLimit
	if len(limit) == 1 {
		l = limit[0]
	}

	keys, err := idx.Search(q, l)
	if err != nil {
		return
	}

	podcastMap := make(map[uint]bool)

	// split potentially large # of result keys into chunks to query
	chunkSize := 100
	for i := 0; i < len(keys); i += chunkSize {
		end := i + chunkSize
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[i:end]
		episodes = append(episodes, s.episodesFor(chunk)...)
	}
	for _, e := range episodes {
		podcastMap[e.PodcastID] = true
	}

	// include unique podcasts for episode results
	ids := make([]uint, 0, len(podcastMap))
	for k := range podcastMap {
		ids = append(ids, k)
	}
	podcasts = s.podcastsFor(ids)

	return podcasts, episodes
}

func (s *Service) HasPodcasts() bool {
	return s.PodcastCount() > 0
}
