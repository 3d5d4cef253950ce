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
	"strings"

	"github.com/spf13/cobra"

	"github.com/podpulse/podpulse/lib/itunes"
	"github.com/podpulse/podpulse/podcast"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms]",
	Short: "search the iTunes podcast directory, or --local for the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := strings.Join(args, " ")
		if searchLocal {
			return searchCatalog(q)
		}
		return searchDirectory(q)
	},
}

var searchLimit int
var searchLocal bool

func searchDirectory(term string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	i := itunes.NewITunes(cfg)
	results, err := i.Search(term, searchLimit)
	if err != nil {
		return err
	}
	for _, r := range results.Results {
		fmt.Printf("%-12d %s - %s\n", r.CollectionID, r.CollectionName, r.ArtistName)
		fmt.Printf("             %s\n", r.FeedURL)
	}
	return nil
}

func searchCatalog(q string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	p := podcast.NewService(cfg)
	err = p.Open()
	if err != nil {
		return err
	}
	defer p.Close()

	var episodes []podcast.Episode
	if searchLimit > 0 {
		_, episodes = p.Search(q, searchLimit)
	} else {
		_, episodes = p.Search(q)
	}
	for _, e := range episodes {
		fmt.Printf("%4d pod%d trk%d %s\n", e.ID, e.PodcastID, e.TrackID, e.Title)
	}
	return nil
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "max results")
	searchCmd.Flags().BoolVar(&searchLocal, "local", false, "search indexed episodes instead of iTunes")
	rootCmd.AddCommand(searchCmd)
}
