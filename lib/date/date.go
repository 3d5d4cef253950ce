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

package date

import (
	"time"
)

// StartOfDay truncates t to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TrackID derives the stable per-episode key used throughout PodPulse:
// milliseconds since epoch of midnight UTC on the publish day. Two episodes
// published the same day share a key; see the favorites semantics before
// changing this.
func TrackID(published time.Time) int64 {
	return StartOfDay(published).UnixNano() / int64(time.Millisecond)
}

// Mon, 02 Jan 2006 15:04:05 MST
// Tue, 07 Dec 2021 19:57:22 -0500
func ParseRFC1123(date string) (t time.Time) {
	if date == "" {
		return t
	}
	var err error
	t, err = time.Parse(time.RFC1123, date)
	if err != nil {
		t, err = time.Parse(time.RFC1123Z, date)
		if err != nil {
			t = time.Time{}
		}
	}
	return t
}

const SimpleDay = "2006-01-02"

// FormatDay renders t as yyyy-mm-dd, the layout used for release-date tags
// and CLI listings.
func FormatDay(t time.Time) string {
	return t.Format(SimpleDay)
}

func FormatJson(t time.Time) string {
	return t.Format(time.RFC3339)
}
