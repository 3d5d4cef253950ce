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
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/podpulse/podpulse/lib/date"
	"github.com/podpulse/podpulse/lib/log"
)

// tagEpisode writes basic ID3 fields and cover art onto a downloaded media
// file. Best effort: the caller logs and drops the error, tagging never
// fails a download.
func (s *Service) tagEpisode(ctx context.Context, p Podcast, e Episode, path string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetArtist(p.Artist)
	tag.SetAlbum(p.Title)
	tag.SetTitle(e.Title)
	released := time.Unix(e.PublishDate, 0).UTC()
	tag.AddTextFrame(tag.CommonID("Recording time"), tag.DefaultEncoding(),
		date.FormatDay(released))

	if e.ImageURL != "" {
		art, err := s.fetchImage(ctx, e.ImageURL)
		if err != nil {
			log.Printf("cover %s: %s\n", e.ImageURL, err)
		} else {
			tag.AddAttachedPicture(id3v2.PictureFrame{
				Encoding:    id3v2.EncodingUTF8,
				MimeType:    imageMime(e.ImageURL),
				PictureType: id3v2.PTFrontCover,
				Description: "cover",
				Picture:     art,
			})
		}
	}

	return tag.Save()
}

func imageMime(url string) string {
	if strings.HasSuffix(strings.SplitN(url, "?", 2)[0], ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
