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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/podpulse/podpulse/lib/str"
	"github.com/podpulse/podpulse/podcast"
)

type podcastIn struct {
	ITunesID int64  `json:"itunes_id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Genre    string `json:"genre"`
	RSSURL   string `json:"rss_url"`
	ImageURL string `json:"image_url"`
}

type favoriteIn struct {
	Note string `json:"note"`
}

func writeJson(w http.ResponseWriter, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.Encode(result)
}

// POST /api/podcasts < podcastIn{} > Podcast{}
// 200: created or already subscribed
// 400: bad feed location
func (h *Handler) apiPodcastCreate(w http.ResponseWriter, r *http.Request) {
	var in podcastIn
	body, _ := io.ReadAll(r.Body)
	err := json.Unmarshal(body, &in)
	if err != nil {
		badRequestErr(w, err)
		return
	}
	if in.RSSURL == "" {
		badRequestErr(w, errors.New("rss_url required"))
		return
	}

	p, err := h.podcast.Subscribe(podcast.Podcast{
		Title:    in.Title,
		Artist:   in.Artist,
		Genre:    in.Genre,
		RSSURL:   in.RSSURL,
		ImageURL: in.ImageURL,
		ITunesID: in.ITunesID,
	})
	if err != nil {
		domainErr(w, err)
		return
	}
	writeJson(w, p)
}

// GET /api/podcasts > []PodcastView
func (h *Handler) apiPodcasts(w http.ResponseWriter, r *http.Request) {
	pods := h.podcast.Podcasts()
	ids := make([]uint, 0, len(pods))
	for _, p := range pods {
		ids = append(ids, p.ID)
	}
	counts := h.podcast.EpisodeCounts(ids)

	views := make([]PodcastView, 0, len(pods))
	for _, p := range pods {
		views = append(views, PodcastView{p, counts[p.ID]})
	}
	writeJson(w, views)
}

// GET /api/podcasts/:id > PodcastDetailView{}
// 404: podcast not found
func (h *Handler) apiPodcastGet(w http.ResponseWriter, r *http.Request) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	p, err := h.podcast.LookupPodcast(id)
	if err != nil {
		domainErr(w, err)
		return
	}
	items := h.podcast.PodcastEpisodes(p.ID)
	writeJson(w, PodcastDetailView{
		Podcast: PodcastView{p, int64(len(items))},
		Items:   items,
	})
}

// GET /api/podcasts/:id/episodes > []Episode
func (h *Handler) apiPodcastEpisodes(w http.ResponseWriter, r *http.Request) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	p, err := h.podcast.LookupPodcast(id)
	if err != nil {
		domainErr(w, err)
		return
	}
	writeJson(w, h.podcast.PodcastEpisodes(p.ID))
}

// PATCH /api/podcasts/:id/suspend > Podcast{}
func (h *Handler) apiPodcastSuspend(w http.ResponseWriter, r *http.Request) {
	h.suspend(w, r, 1)
}

// PATCH /api/podcasts/:id/continue > Podcast{}
func (h *Handler) apiPodcastContinue(w http.ResponseWriter, r *http.Request) {
	h.suspend(w, r, 0)
}

func (h *Handler) suspend(w http.ResponseWriter, r *http.Request, suspended int) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	p, err := h.podcast.SuspendPodcast(id, suspended)
	if err != nil {
		domainErr(w, err)
		return
	}
	writeJson(w, p)
}

// DELETE /api/podcasts/:id
// 204: podcast, episodes and matching favorites removed
// 404: podcast not found
func (h *Handler) apiPodcastDelete(w http.ResponseWriter, r *http.Request) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	found, err := h.podcast.DeletePodcast(id)
	if err != nil {
		serverErr(w, err)
		return
	}
	if !found {
		notFoundErr(w, podcast.ErrPodcastNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/episodes?podcastId=&order=&limit= > []Episode
// order is asc or desc (default), an unparsable limit is ignored
func (h *Handler) apiEpisodes(w http.ResponseWriter, r *http.Request) {
	podcastID := str.Atoi(r.URL.Query().Get("podcastId"))
	order := r.URL.Query().Get("order")
	limit := str.Atoi(r.URL.Query().Get("limit"))
	writeJson(w, h.podcast.Episodes(podcastID, order, limit))
}

// GET /api/episodes/recent > []Episode
// The newest episodes across all podcasts, capped by Podcast.RecentLimit.
func (h *Handler) apiRecentEpisodes(w http.ResponseWriter, r *http.Request) {
	writeJson(w, h.podcast.RecentEpisodes())
}

// POST /api/episodes/:id/watched > UpdatedView{}
func (h *Handler) apiEpisodeWatch(w http.ResponseWriter, r *http.Request) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	err := h.podcast.MarkWatched(id)
	if err != nil {
		domainErr(w, err)
		return
	}
	writeJson(w, UpdatedView{Updated: 1})
}

// DELETE /api/episodes/:id/watched
func (h *Handler) apiEpisodeUnwatch(w http.ResponseWriter, r *http.Request) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	err := h.podcast.UnmarkWatched(id)
	if err != nil {
		domainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/episodes/watched?podcastId= > WatchedView{}
func (h *Handler) apiWatched(w http.ResponseWriter, r *http.Request) {
	podcastID := str.Atoi(r.URL.Query().Get("podcastId"))
	writeJson(w, WatchedView{Watched: h.podcast.WatchedTrackIDs(podcastID)})
}

// GET /api/episodes/favorites > []FavoriteView
func (h *Handler) apiFavorites(w http.ResponseWriter, r *http.Request) {
	favs := h.podcast.Favorites()
	views := make([]FavoriteView, 0, len(favs))
	for _, f := range favs {
		views = append(views, FavoriteView{f, h.podcast.EpisodesByTrack(f.TrackID)})
	}
	writeJson(w, views)
}

// POST /api/episodes/:id/favorite < favoriteIn{} > FavoriteEpisode{}
// 400: episode has no track id
// 404: episode not found
func (h *Handler) apiEpisodeFavorite(w http.ResponseWriter, r *http.Request) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	e, err := h.podcast.LookupEpisode(id)
	if err != nil {
		domainErr(w, err)
		return
	}
	if e.TrackID == 0 {
		domainErr(w, podcast.ErrNoTrackID)
		return
	}

	var in favoriteIn
	body, _ := io.ReadAll(r.Body)
	json.Unmarshal(body, &in)

	fav, err := h.podcast.AddFavorite(e.TrackID, in.Note)
	if err != nil {
		serverErr(w, err)
		return
	}
	writeJson(w, fav)
}

// DELETE /api/episodes/:id/favorite
func (h *Handler) apiEpisodeUnfavorite(w http.ResponseWriter, r *http.Request) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	e, err := h.podcast.LookupEpisode(id)
	if err != nil {
		domainErr(w, err)
		return
	}
	err = h.podcast.RemoveFavorite(e.TrackID)
	if err != nil {
		domainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/episodes/:id/download > media file
// 400: nothing downloaded for the episode
// 404: episode or file missing
func (h *Handler) apiEpisodeDownload(w http.ResponseWriter, r *http.Request) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	e, err := h.podcast.LookupEpisode(id)
	if err != nil {
		domainErr(w, err)
		return
	}
	if e.Filename == "" || !e.IsDownloaded() {
		badRequestErr(w, errors.New("episode not downloaded"))
		return
	}
	path := filepath.Join(h.config.Podcast.DownloadDir, e.Filename)
	if _, err := os.Stat(path); err != nil {
		notFoundErr(w, errors.New("downloaded file not found"))
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+e.Filename)
	http.ServeFile(w, r, path)
}

// GET /api/search?q=&limit= > SearchView{}
func (h *Handler) apiSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		badRequestErr(w, errors.New("q required"))
		return
	}
	var podcasts []podcast.Podcast
	var episodes []podcast.Episode
	if limit := str.Atoi(r.URL.Query().Get("limit")); limit > 0 {
		podcasts, episodes = h.podcast.Search(q, limit)
	} else {
		podcasts, episodes = h.podcast.Search(q)
	}
	writeJson(w, SearchView{Podcasts: podcasts, Episodes: episodes})
}

// GET /api/itunes/search?q=&limit= > itunes.Results{}
// Passthrough proxy; exists to keep browser clients same-origin.
func (h *Handler) apiITunesSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		badRequestErr(w, errors.New("q required"))
		return
	}
	limit := str.Atoi(r.URL.Query().Get("limit"))
	result, err := h.itunes.Search(q, limit)
	if err != nil {
		gatewayErr(w, err)
		return
	}
	writeJson(w, result)
}

// GET /api/itunes/lookup?id= > itunes.Results{}
// Accepts comma-separated collection ids.
func (h *Handler) apiITunesLookup(w http.ResponseWriter, r *http.Request) {
	ids := r.URL.Query().Get("id")
	if ids == "" {
		badRequestErr(w, errors.New("id required"))
		return
	}
	result, err := h.itunes.Lookup(ids)
	if err != nil {
		gatewayErr(w, err)
		return
	}
	writeJson(w, result)
}
