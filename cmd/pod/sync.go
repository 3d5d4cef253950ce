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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podpulse/podpulse/podcast"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "refresh feeds and download new episodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync()
	},
}

var syncLimit int
var syncDryRun bool

func runSync() error {
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

	options := podcast.NewSyncOptions()
	options.Limit = syncLimit
	options.DryRun = syncDryRun
	updated, err := p.Sync(context.Background(), options)
	if err != nil {
		return err
	}
	fmt.Printf("%d downloaded\n", updated)
	return nil
}

func init() {
	syncCmd.Flags().IntVarP(&syncLimit, "limit", "l", 0, "max downloads, 0 for unlimited")
	syncCmd.Flags().BoolVarP(&syncDryRun, "dry-run", "n", false, "resolve filenames without downloading")
	rootCmd.AddCommand(syncCmd)
}
