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
	"strconv"

	"github.com/podpulse/podpulse/lib/log"
	"github.com/podpulse/podpulse/search"
)

const (
	FieldAuthor      = "author"
	FieldDescription = "desc"
	FieldKeywords    = "keywords"
	FieldTitle       = "title"
)

func episodeFields(e Episode) search.FieldMap {
	return search.FieldMap{
		FieldAuthor:      e.Author,
		FieldDescription: e.Desc,
		FieldKeywords:    e.Keywords,
		FieldTitle:       e.Title,
	}
}

// indexEpisodes adds newly created episodes to the bleve index, keyed by the
// episode row id. Index trouble is logged, never fatal to a sync.
func (s *Service) indexEpisodes(episodes []Episode) {
	if len(episodes) == 0 {
		return
	}
	idx, err := s.newSearch()
	if err != nil {
		log.Printf("index open: %s\n", err)
		return
	}
	defer idx.Close()

	m := make(search.IndexMap)
	for _, e := range episodes {
		key := strconv.FormatUint(uint64(e.ID), 10)
		m[key] = episodeFields(e)
	}
	idx.Index(m)
}
