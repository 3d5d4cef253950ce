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
	"errors"
	"net/http"

	"github.com/podpulse/podpulse/podcast"
)

var ErrInvalidMethod = errors.New("invalid request method")

func serverErr(w http.ResponseWriter, err error) {
	if err != nil {
		handleErr(w, err.Error(), http.StatusInternalServerError)
	}
}

func notFoundErr(w http.ResponseWriter, err error) {
	handleErr(w, err.Error(), http.StatusNotFound)
}

func badRequestErr(w http.ResponseWriter, err error) {
	handleErr(w, err.Error(), http.StatusBadRequest)
}

func gatewayErr(w http.ResponseWriter, err error) {
	handleErr(w, err.Error(), http.StatusBadGateway)
}

func handleErr(w http.ResponseWriter, msg string, code int) {
	http.Error(w, msg, code)
}

// domainErr maps catalog errors to responses; not-found is a distinct
// outcome, invalid feed sources are the caller's fault, everything else is
// ours.
func domainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, podcast.ErrPodcastNotFound),
		errors.Is(err, podcast.ErrEpisodeNotFound),
		errors.Is(err, podcast.ErrFavoriteNotFound):
		notFoundErr(w, err)
	case errors.Is(err, podcast.ErrInvalidSource),
		errors.Is(err, podcast.ErrNoTrackID):
		badRequestErr(w, err)
	case errors.Is(err, podcast.ErrFeedParse),
		errors.Is(err, podcast.ErrTransfer):
		gatewayErr(w, err)
	default:
		serverErr(w, err)
	}
}
