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
	"github.com/spf13/cobra"

	"github.com/signal18/biasedurn/fnchyp"
	"github.com/signal18/biasedurn/utils/misc"
)

var (
	multiDraws  int
	multiCounts string
	multiOdds   string
	multiX      string
	multiApprox bool
)

type multivariateResult struct {
	Draws          int       `json:"n"`
	Counts         []int     `json:"m"`
	Odds           []float64 `json:"odds"`
	UsedColors     int       `json:"used-colors"`
	MeanApprox     []float64 `json:"mean-approx"`
	VarianceApprox []float64 `json:"variance-approx"`
	Mean           []float64 `json:"mean,omitempty"`
	Variance       []float64 `json:"variance,omitempty"`
	Combinations   int       `json:"combinations,omitempty"`
	X              []int     `json:"x,omitempty"`
	Probability    *float64  `json:"probability,omitempty"`
}

func init() {
	rootCmd.AddCommand(multivariateCmd)
	multivariateCmd.Flags().IntVarP(&multiDraws, "draws", "n", 0, "Number of items drawn")
	multivariateCmd.Flags().StringVarP(&multiCounts, "counts", "m", "", "Number of items of each color, e.g. 10,15,5")
	multivariateCmd.Flags().StringVarP(&multiOdds, "odds", "w", "", "Odds of each color, e.g. 1,2,10")
	multivariateCmd.Flags().StringVarP(&multiX, "x", "x", "", "Number of items drawn of each color to evaluate, e.g. 2,3,3")
	multivariateCmd.Flags().BoolVar(&multiApprox, "approx", false, "Skip the exact moments, which enumerate every combination")
}

var multivariateCmd = &cobra.Command{
	Use:   "multivariate",
	Short: "Moments and probabilities of the multi color distribution",
	Long: `Computes approximate and exact moments of the multivariate Fisher's noncentral
hypergeometric distribution, and optionally the probability of one combination.
Exact results enumerate every combination that is not negligible.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := misc.ParseInts(multiCounts)
		if err != nil {
			return errors.Annotate(err, "counts")
		}
		odds, err := misc.ParseFloats(multiOdds)
		if err != nil {
			return errors.Annotate(err, "odds")
		}
		d, err := fnchyp.NewMultivariate(multiDraws, m, odds, conf.Accuracy)
		if err != nil {
			return errors.Annotate(err, "multivariate")
		}
		res := multivariateResult{
			Draws:      multiDraws,
			Counts:     m,
			Odds:       odds,
			UsedColors: d.UsedColors(),
		}
		res.VarianceApprox, res.MeanApprox, err = d.Variance()
		if err != nil {
			return errors.Annotate(err, "approximate moments")
		}
		if !multiApprox {
			res.Mean, res.Variance, res.Combinations, err = d.Moments()
			if err != nil {
				return errors.Annotate(err, "moments")
			}
		}
		if multiX != "" {
			res.X, err = misc.ParseInts(multiX)
			if err != nil {
				return errors.Annotate(err, "x")
			}
			p, err := d.Probability(res.X)
			if err != nil {
				return errors.Annotate(err, "probability")
			}
			res.Probability = &p
		}

		return printResult(cmd.OutOrStdout(), res, func(w io.Writer) {
			fmt.Fprintf(w, "colors: %d, used: %d\n", d.Colors(), res.UsedColors)
			fmt.Fprintf(w, "%6s %10s %12s %12s %14s %14s\n", "color", "m", "odds", "mean~", "mean", "variance")
			for i := range m {
				mean, variance := "-", "-"
				if res.Mean != nil {
					mean = fmt.Sprintf("%.8g", res.Mean[i])
					variance = fmt.Sprintf("%.8g", res.Variance[i])
				}
				fmt.Fprintf(w, "%6d %10s %12g %12.6f %14s %14s\n", i, humanize.Comma(int64(m[i])), odds[i], res.MeanApprox[i], mean, variance)
			}
			if res.Combinations > 0 {
				fmt.Fprintf(w, "combinations: %s\n", humanize.Comma(int64(res.Combinations)))
			}
			if res.Probability != nil {
				fmt.Fprintf(w, "P(x=%v) = %.10g\n", res.X, *res.Probability)
			}
		})
	},
}
