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

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "download pending episodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return download()
	},
}

var downloadLimit int
var downloadDryRun bool

func download() error {
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
	options.Limit = downloadLimit
	options.DryRun = downloadDryRun
	updated, err := p.Downloads(context.Background(), options)
	if err != nil {
		return err
	}
	fmt.Printf("%d downloaded\n", updated)
	return nil
}

func init() {
	downloadCmd.Flags().IntVarP(&downloadLimit, "limit", "l", 0, "max downloads, 0 for unlimited")
	downloadCmd.Flags().BoolVarP(&downloadDryRun, "dry-run", "n", false, "resolve filenames without downloading")
	rootCmd.AddCommand(downloadCmd)
}
