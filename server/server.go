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
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/podpulse/podpulse/config"
	"github.com/podpulse/podpulse/lib/itunes"
	"github.com/podpulse/podpulse/lib/log"
	"github.com/podpulse/podpulse/podcast"
)

// Handler carries the dependencies each request needs; no globals.
type Handler struct {
	config  *config.Config
	podcast *podcast.Service
	itunes  *itunes.ITunes
}

func NewHandler(config *config.Config, p *podcast.Service) *Handler {
	return &Handler{
		config:  config,
		podcast: p,
		itunes:  itunes.NewITunes(config),
	}
}

// Mux builds the API routes. Fixed /api/episodes/* paths are registered
// before the parameterized ones; pat matches in registration order.
func (h *Handler) Mux() *pat.PatternServeMux {
	mux := pat.New()

	mux.Post("/api/podcasts", http.HandlerFunc(h.apiPodcastCreate))
	mux.Get("/api/podcasts/:id/episodes", http.HandlerFunc(h.apiPodcastEpisodes))
	mux.Patch("/api/podcasts/:id/suspend", http.HandlerFunc(h.apiPodcastSuspend))
	mux.Patch("/api/podcasts/:id/continue", http.HandlerFunc(h.apiPodcastContinue))
	mux.Del("/api/podcasts/:id", http.HandlerFunc(h.apiPodcastDelete))
	mux.Get("/api/podcasts/:id", http.HandlerFunc(h.apiPodcastGet))
	mux.Get("/api/podcasts", http.HandlerFunc(h.apiPodcasts))

	mux.Get("/api/episodes/recent", http.HandlerFunc(h.apiRecentEpisodes))
	mux.Get("/api/episodes/favorites", http.HandlerFunc(h.apiFavorites))
	mux.Get("/api/episodes/watched", http.HandlerFunc(h.apiWatched))
	mux.Post("/api/episodes/:id/watched", http.HandlerFunc(h.apiEpisodeWatch))
	mux.Del("/api/episodes/:id/watched", http.HandlerFunc(h.apiEpisodeUnwatch))
	mux.Post("/api/episodes/:id/favorite", http.HandlerFunc(h.apiEpisodeFavorite))
	mux.Del("/api/episodes/:id/favorite", http.HandlerFunc(h.apiEpisodeUnfavorite))
	mux.Get("/api/episodes/:id/download", http.HandlerFunc(h.apiEpisodeDownload))
	mux.Get("/api/episodes", http.HandlerFunc(h.apiEpisodes))

	mux.Get("/api/search", http.HandlerFunc(h.apiSearch))
	mux.Get("/api/itunes/search", http.HandlerFunc(h.apiITunesSearch))
	mux.Get("/api/itunes/lookup", http.HandlerFunc(h.apiITunesLookup))

	return mux
}

// Serve opens the catalog, schedules periodic sync and blocks serving the
// API.
func Serve(config *config.Config) error {
	p := podcast.NewService(config)
	err := p.Open()
	if err != nil {
		return err
	}
	defer p.Close()

	schedule(config)

	handler := NewHandler(config, p)
	http.Handle("/", handler.Mux())
	log.Printf("listening on %s\n", config.Server.Listen)
	return http.ListenAndServe(config.Server.Listen, nil)
}
