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
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type tableResult struct {
	Length      int       `json:"length"`
	Cutoff      float64   `json:"cutoff"`
	First       int       `json:"xfirst"`
	Last        int       `json:"xlast"`
	Mean        float64   `json:"mean"`
	Variance    float64   `json:"variance"`
	Probability []float64 `json:"probability"`
}

func init() {
	rootCmd.AddCommand(tableCmd)
	initUnivariateFlags(tableCmd)
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Table of the two color probability function around its mode",
	Long: `Builds the table of non-negligible probabilities of Fisher's noncentral
hypergeometric distribution, normalized to sum to one. The buffer length
comes from --table-length, or the length needed when zero. Tails below
--cutoff, relative to the mode, are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newUnivariate()
		if err != nil {
			return err
		}
		length := conf.TableLength
		if length <= 0 {
			length = d.TableLength()
		}
		cutoff := conf.Cutoff
		if cutoff < 0 {
			cutoff = d.DefaultCutoff()
		}
		table := make([]float64, length)
		sum, xfirst, xlast, err := d.MakeTable(table, cutoff)
		if err != nil {
			return errors.Annotate(err, "table")
		}
		probs := table[:xlast-xfirst+1]
		floats.Scale(1/sum, probs)
		xs := make([]float64, len(probs))
		for i := range xs {
			xs[i] = float64(xfirst + i)
		}
		res := tableResult{
			Length:      length,
			Cutoff:      cutoff,
			First:       xfirst,
			Last:        xlast,
			Probability: probs,
		}
		res.Mean, res.Variance = stat.PopMeanVariance(xs, probs)
		log.WithFields(log.Fields{"length": length, "used": len(probs), "sum": sum}).Debug("Table built")

		return printResult(cmd.OutOrStdout(), res, func(w io.Writer) {
			fmt.Fprintf(w, "buffer: %s, x: %d..%d, mean %.8g, variance %.8g\n",
				humanize.Comma(int64(length)), xfirst, xlast, res.Mean, res.Variance)
			for i, p := range probs {
				fmt.Fprintf(w, "%8d  %.10g\n", xfirst+i, p)
			}
		})
	},
}
