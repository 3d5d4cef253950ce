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
	"sort"
	"strings"
	"time"

	"github.com/podpulse/podpulse/lib/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func (s *Service) openDB() (err error) {
	var glog logger.Interface
	if s.config.Podcast.DB.LogMode == false {
		glog = logger.Discard
	} else {
		glog = logger.Default
	}
	cfg := &gorm.Config{
		Logger: glog,
	}

	if s.config.Podcast.DB.Driver == "sqlite3" {
		s.db, err = gorm.Open(sqlite.Open(s.config.Podcast.DB.Source), cfg)
	} else {
		err = errors.New("driver not supported")
	}

	if err != nil {
		return
	}

	err = s.db.AutoMigrate(&Podcast{}, &Episode{}, &FavoriteEpisode{}, &Migration{})
	if err != nil {
		return
	}
	return s.applyMigrations()
}

func (s *Service) closeDB() {
	if s.db == nil {
		return
	}
	conn, err := s.db.DB()
	if err != nil {
		return
	}
	conn.Close()
}

// applyMigrations runs each *.sql file from the migrations dir exactly once,
// recording applied filenames in migrations_applied.
func (s *Service) applyMigrations() error {
	dir := s.config.Podcast.MigrationsDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		// no migrations dir is fine
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		var count int64
		s.db.Model(&Migration{}).Where("filename = ?", name).Count(&count)
		if count > 0 {
			continue
		}
		stmts, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(stmts)).Error; err != nil {
				return err
			}
			return tx.Create(&Migration{
				Filename:  name,
				AppliedAt: time.Now().Unix(),
			}).Error
		})
		if err != nil {
			return err
		}
		log.Printf("applied migration %s\n", name)
	}
	return nil
}

func (s *Service) Podcasts() []Podcast {
	var podcasts []Podcast
	s.db.Order("title").Find(&podcasts)
	return podcasts
}

func (s *Service) PodcastCount() int64 {
	var count int64
	s.db.Model(&Podcast{}).Count(&count)
	return count
}

func (s *Service) LookupPodcast(id int) (Podcast, error) {
	var p Podcast
	err := s.db.First(&p, id).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return Podcast{}, ErrPodcastNotFound
	}
	return p, err
}

func (s *Service) findPodcastByITunesID(id int64) *Podcast {
	var list []Podcast
	s.db.Where("itunes_id = ?", id).Find(&list)
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}

func (s *Service) findPodcastByRSS(url string) *Podcast {
	var list []Podcast
	s.db.Where("rss_url = ? and itunes_id = 0", url).Find(&list)
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}

// CreatePodcast inserts p unless a row with the same external identity
// already exists; the existing row is returned unchanged. Identity is the
// iTunes collection id, or the feed url for manual imports.
func (s *Service) CreatePodcast(p Podcast) (Podcast, error) {
	if p.ITunesID != 0 {
		if existing := s.findPodcastByITunesID(p.ITunesID); existing != nil {
			return *existing, nil
		}
	} else {
		if existing := s.findPodcastByRSS(p.RSSURL); existing != nil {
			return *existing, nil
		}
	}
	err := s.db.Create(&p).Error
	return p, err
}

func (s *Service) SuspendPodcast(id int, suspended int) (Podcast, error) {
	var p Podcast
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&p, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPodcastNotFound
			}
			return err
		}
		p.Suspended = suspended
		return tx.Save(&p).Error
	})
	return p, err
}

// DeletePodcast removes the podcast, all of its episodes, and favorites whose
// track_id matched one of those episodes, in one transaction. Returns false
// when the podcast does not exist.
func (s *Service) DeletePodcast(id int) (bool, error) {
	var found bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var p Podcast
		err := tx.First(&p, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		var trackIDs []int64
		err = tx.Model(&Episode{}).Where("podcast_id = ?", p.ID).
			Pluck("track_id", &trackIDs).Error
		if err != nil {
			return err
		}

		err = tx.Unscoped().Where("podcast_id = ?", p.ID).Delete(&Episode{}).Error
		if err != nil {
			return err
		}
		if len(trackIDs) > 0 {
			err = tx.Unscoped().Where("track_id in (?)", trackIDs).
				Delete(&FavoriteEpisode{}).Error
			if err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&p).Error
	})
	return found, err
}

// Episodes lists episodes ordered by publish date, optionally filtered by
// podcast and capped. Order is "asc" or "desc" (default); a non-positive
// limit is ignored and the full result set returned.
func (s *Service) Episodes(podcastID int, order string, limit int) []Episode {
	q := s.db.Model(&Episode{})
	if podcastID > 0 {
		q = q.Where("podcast_id = ?", podcastID)
	}
	if strings.EqualFold(order, "asc") {
		q = q.Order("publish_date asc")
	} else {
		q = q.Order("publish_date desc")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var episodes []Episode
	q.Find(&episodes)
	return episodes
}

func (s *Service) PodcastEpisodes(podcastID uint) []Episode {
	var episodes []Episode
	s.db.Where("podcast_id = ?", podcastID).
		Order("publish_date desc").Find(&episodes)
	return episodes
}

func (s *Service) RecentEpisodes() []Episode {
	var episodes []Episode
	s.db.Order("publish_date desc").
		Limit(s.config.Podcast.RecentLimit).
		Find(&episodes)
	return episodes
}

// EpisodeCounts returns episode counts per podcast with a single GROUP BY;
// ids without episodes are absent from the result.
func (s *Service) EpisodeCounts(ids []uint) map[uint]int64 {
	counts := make(map[uint]int64)
	if len(ids) == 0 {
		return counts
	}
	rows, err := s.db.Model(&Episode{}).
		Select("podcast_id, count(*) as total").
		Where("podcast_id in (?)", ids).
		Group("podcast_id").Rows()
	if err != nil {
		return counts
	}
	defer rows.Close()
	for rows.Next() {
		var id uint
		var total int64
		if err := rows.Scan(&id, &total); err == nil {
			counts[id] = total
		}
	}
	return counts
}

func (s *Service) LookupEpisode(id int) (Episode, error) {
	var e Episode
	err := s.db.First(&e, id).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return Episode{}, ErrEpisodeNotFound
	}
	return e, err
}

func (s *Service) findEpisode(podcastID uint, trackID int64) *Episode {
	var list []Episode
	s.db.Where("podcast_id = ? and track_id = ?", podcastID, trackID).Find(&list)
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}

// createEpisodeIfNew is the dedup-insert: an existing (podcast_id, track_id)
// row is returned as-is, never updated in place. A unique index conflict from
// a concurrent run is resolved the same way.
func (s *Service) createEpisodeIfNew(e Episode) (Episode, bool, error) {
	if existing := s.findEpisode(e.PodcastID, e.TrackID); existing != nil {
		return *existing, false, nil
	}
	err := s.db.Create(&e).Error
	if err != nil {
		if existing := s.findEpisode(e.PodcastID, e.TrackID); existing != nil {
			return *existing, false, nil
		}
		return Episode{}, false, err
	}
	return e, true, nil
}

// PendingEpisodes returns episodes still needing media retrieval, newest
// insert first. Suspended podcasts are excluded.
func (s *Service) PendingEpisodes() []Episode {
	var episodes []Episode
	s.db.Joins("inner join podcasts on podcasts.id = podcasts_items.podcast_id").
		Where("(podcasts_items.downloaded = 0 or podcasts_items.downloaded is null)").
		Where("podcasts.suspended = 0").
		Order("podcasts_items.id desc").
		Find(&episodes)
	return episodes
}

func (s *Service) markDownloaded(e *Episode, filename string) error {
	e.Filename = filename
	e.Downloaded = 1
	return s.db.Save(e).Error
}

// setFilename records the intended filename without a downloaded flag; used
// by dry-run.
func (s *Service) setFilename(e *Episode, filename string) error {
	e.Filename = filename
	return s.db.Save(e).Error
}

func (s *Service) setWatched(id int, watched int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var e Episode
		err := tx.First(&e, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEpisodeNotFound
			}
			return err
		}
		e.Watched = watched
		return tx.Save(&e).Error
	})
}

func (s *Service) MarkWatched(id int) error {
	return s.setWatched(id, 1)
}

func (s *Service) UnmarkWatched(id int) error {
	return s.setWatched(id, 0)
}

// WatchedTrackIDs lists distinct track ids with watched=1, optionally scoped
// to one podcast.
func (s *Service) WatchedTrackIDs(podcastID int) []int64 {
	q := s.db.Model(&Episode{}).Where("watched = 1")
	if podcastID > 0 {
		q = q.Where("podcast_id = ?", podcastID)
	}
	var ids []int64
	q.Distinct().Pluck("track_id", &ids)
	return ids
}

func (s *Service) Favorites() []FavoriteEpisode {
	var favorites []FavoriteEpisode
	s.db.Order("added_at desc").Find(&favorites)
	return favorites
}

func (s *Service) EpisodesByTrack(trackID int64) []Episode {
	var episodes []Episode
	s.db.Where("track_id = ?", trackID).Find(&episodes)
	return episodes
}

func (s *Service) AddFavorite(trackID int64, note string) (FavoriteEpisode, error) {
	fav := FavoriteEpisode{
		TrackID: trackID,
		AddedAt: time.Now().Unix(),
		Note:    note,
	}
	err := s.db.Create(&fav).Error
	return fav, err
}

func (s *Service) RemoveFavorite(trackID int64) error {
	result := s.db.Unscoped().Where("track_id = ?", trackID).
		Delete(&FavoriteEpisode{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *Service) episodesFor(keys []string) []Episode {
	var episodes []Episode
	s.db.Where("id in (?)", keys).Find(&episodes)
	return episodes
}

func (s *Service) podcastsFor(ids []uint) []Podcast {
	var podcasts []Podcast
	if len(ids) == 0 {
		return podcasts
	}
	s.db.Where("id in (?)", ids).Find(&podcasts)
	return podcasts
}
