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

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/podpulse/podpulse/lib/itunes"
	"github.com/podpulse/podpulse/podcast"
)

var addCmd = &cobra.Command{
	Use:   "add [itunes-id]",
	Short: "subscribe to a podcast by iTunes collection id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return add(id)
	},
}

func add(id int64) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	i := itunes.NewITunes(cfg)
	result, err := i.LookupPodcast(id)
	if err != nil {
		return err
	}

	p := podcast.NewService(cfg)
	err = p.Open()
	if err != nil {
		return err
	}
	defer p.Close()

	created, err := p.Subscribe(podcast.Podcast{
		Title:    result.CollectionName,
		Artist:   result.ArtistName,
		Genre:    result.PrimaryGenreName,
		RSSURL:   result.FeedURL,
		ImageURL: result.ArtworkUrl600,
		ITunesID: result.CollectionID,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%d %s\n", created.ID, created.Title)
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
}
