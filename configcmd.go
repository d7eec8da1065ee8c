// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package main

import (
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configWrite string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configWrite, "write", "", "Save the configuration to this file instead of printing it")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: `Prints the configuration merged from defaults, the config file, BIASEDURN_*
environment variables and flags, in the config file format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configWrite != "" {
			if err := conf.WriteFile(configWrite); err != nil {
				return errors.Annotate(err, "writing config")
			}
			log.WithField("file", configWrite).Info("Configuration saved")
			return nil
		}
		return errors.Trace(conf.Encode(cmd.OutOrStdout()))
	},
}
