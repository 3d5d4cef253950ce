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
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/podpulse/podpulse/lib/log"
)

var (
	whitespaceRegexp = regexp.MustCompile(`\s+`)
	unsafeRegexp     = regexp.MustCompile(`[^A-Za-z0-9.\-_]`)
)

const maxFilename = 240

// SafeFilename collapses whitespace runs to single hyphens, strips everything
// outside [A-Za-z0-9.-_] and truncates to 240 characters.
func SafeFilename(name string) string {
	name = whitespaceRegexp.ReplaceAllString(strings.TrimSpace(name), "-")
	name = unsafeRegexp.ReplaceAllString(name, "")
	if len(name) > maxFilename {
		name = name[:maxFilename]
	}
	return name
}

// EpisodeFilename derives the local media name,
// pod<podcast_id>-trk<track_id>-<safe_title><ext>. The extension comes from
// the media url path with any query string stripped, defaulting to .mp3.
func EpisodeFilename(e Episode) string {
	ext := path.Ext(strings.SplitN(e.MediaURL, "?", 2)[0])
	if ext == "" {
		ext = ".mp3"
	}
	title := SafeFilename(e.Title)
	if title == "" {
		title = fmt.Sprintf("track-%d", e.TrackID)
	}
	return fmt.Sprintf("pod%d-trk%d-%s%s", e.PodcastID, e.TrackID, title, ext)
}

// PosterFilename names the per-podcast cover image, pod<id>-poster<ext>.
func PosterFilename(p Podcast) string {
	ext := path.Ext(strings.SplitN(p.ImageURL, "?", 2)[0])
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("pod%d-poster%s", p.ID, ext)
}

// Downloads reconciles pending episodes against local media files: newest
// pending episode first, streamed transfer, tag, then mark downloaded. A
// failed transfer leaves the episode pending for the next run and does not
// consume the limit, which counts successes only. Returns the number of
// episodes downloaded and updated.
func (s *Service) Downloads(ctx context.Context, options *SyncOptions) (int, error) {
	dir := s.config.Podcast.DownloadDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	pending := s.PendingEpisodes()
	log.Printf("found %d undownloaded episodes\n", len(pending))

	podcasts := make(map[uint]Podcast)
	posterDone := make(map[uint]bool)
	updated := 0
	for i := range pending {
		e := pending[i]
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if options.Limit > 0 && updated >= options.Limit {
			break
		}
		if !e.HasMedia() {
			log.Printf("skipping id=%d trk=%d: no media url\n", e.ID, e.TrackID)
			continue
		}

		p, ok := podcasts[e.PodcastID]
		if !ok {
			p, _ = s.LookupPodcast(int(e.PodcastID))
			podcasts[e.PodcastID] = p
		}

		fname := EpisodeFilename(e)
		if options.DryRun {
			log.Printf("dry-run: would download %s to %s\n", e.MediaURL, fname)
			if err := s.setFilename(&e, fname); err != nil {
				return updated, err
			}
			continue
		}

		if !posterDone[e.PodcastID] {
			s.downloadPoster(ctx, p)
			posterDone[e.PodcastID] = true
		}

		dest := filepath.Join(dir, fname)
		err := s.downloadEpisode(ctx, e, dest)
		if err != nil {
			// stays pending, retried next run
			log.Printf("download %s: %s\n", e.MediaURL, err)
			continue
		}

		if err := s.tagEpisode(ctx, p, e, dest); err != nil {
			log.Printf("tagging %s: %s\n", fname, err)
		}
		if err := s.markDownloaded(&e, fname); err != nil {
			return updated, err
		}
		updated++
		log.Printf("downloaded %s\n", fname)
	}
	return updated, nil
}

// downloadEpisode streams the enclosure to dest. The body is copied to a
// temporary file renamed into place only on success, so a failed transfer
// never leaves a partial file behind. An existing dest is reused without a
// transfer.
func (s *Service) downloadEpisode(ctx context.Context, e Episode, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return nil
	}

	resp, err := s.client.Download(ctx, e.MediaURL)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTransfer, err)
	}
	defer resp.Body.Close()

	part := dest + ".part"
	out, err := os.Create(part)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, resp.Body)
	if err != nil {
		out.Close()
		os.Remove(part)
		return fmt.Errorf("%w: %s", ErrTransfer, err)
	}
	if err = out.Close(); err != nil {
		os.Remove(part)
		return err
	}
	return os.Rename(part, dest)
}

// downloadPoster fetches the podcast cover once; failures only log.
func (s *Service) downloadPoster(ctx context.Context, p Podcast) {
	if p.ImageURL == "" {
		return
	}
	dest := filepath.Join(s.config.Podcast.DownloadDir, PosterFilename(p))
	if _, err := os.Stat(dest); err == nil {
		return
	}
	data, err := s.fetchImage(ctx, p.ImageURL)
	if err != nil {
		log.Printf("poster %s: %s\n", p.ImageURL, err)
		return
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		log.Printf("poster %s: %s\n", dest, err)
	}
}

func (s *Service) fetchImage(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.client.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
