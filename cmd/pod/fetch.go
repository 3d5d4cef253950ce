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

	"github.com/spf13/cobra"

	"github.com/podpulse/podpulse/lib/str"
	"github.com/podpulse/podpulse/podcast"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [id]",
	Short: "refresh feeds without downloading",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fetch(args)
	},
}

func fetch(args []string) error {
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

	if len(args) > 0 {
		created, err := p.RefreshPodcast(str.Atoi(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("%d new\n", created)
		return nil
	}
	p.RefreshFeeds()
	return nil
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
