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
	"testing"
	"time"
)

func TestParse1123(t *testing.T) {
	s := "Fri, 6 Nov 2020 19:32:35 +0000"
	d := ParseRFC1123(s)
	t.Logf("got %s\n", d.String())
	if d.Day() != 6 {
		t.Errorf("wrong day got %d\n", d.Day())
	}
	if d.Month() != time.November {
		t.Errorf("wrong month got %s\n", d.Month())
	}
	if d.Year() != 2020 {
		t.Errorf("wrong year got %d\n", d.Year())
	}
}

func TestTrackID(t *testing.T) {
	published := time.Date(2021, time.December, 7, 19, 57, 22, 0, time.UTC)
	id := TrackID(published)
	midnight := time.Date(2021, time.December, 7, 0, 0, 0, 0, time.UTC)
	if id != midnight.Unix()*1000 {
		t.Errorf("got %d want %d\n", id, midnight.Unix()*1000)
	}
}

func TestTrackIDSameDay(t *testing.T) {
	morning := time.Date(2021, time.December, 7, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2021, time.December, 7, 22, 30, 0, 0, time.UTC)
	if TrackID(morning) != TrackID(evening) {
		t.Errorf("same day should derive the same key")
	}
}

func TestTrackIDTimezone(t *testing.T) {
	// -0500 on Dec 7 is still Dec 8 UTC
	est := time.FixedZone("EST", -5*60*60)
	published := time.Date(2021, time.December, 7, 23, 0, 0, 0, est)
	midnight := time.Date(2021, time.December, 8, 0, 0, 0, 0, time.UTC)
	if TrackID(published) != midnight.Unix()*1000 {
		t.Errorf("expected truncation to UTC day")
	}
}
