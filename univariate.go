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

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/signal18/biasedurn/fnchyp"
	"github.com/signal18/biasedurn/utils/misc"
)

var (
	uniDraws    int
	uniMarked   int
	uniTotal    int
	uniOdds     float64
	uniRange    string
	uniQuantile float64
)

type univariatePoint struct {
	X           int     `json:"x"`
	Probability float64 `json:"probability"`
	CDF         float64 `json:"cdf"`
}

type univariateResult struct {
	Draws          int               `json:"n"`
	Marked         int               `json:"m"`
	Total          int               `json:"N"`
	Odds           float64           `json:"odds"`
	Xmin           int               `json:"xmin"`
	Xmax           int               `json:"xmax"`
	Mode           int               `json:"mode"`
	MeanApprox     float64           `json:"mean-approx"`
	VarianceApprox float64           `json:"variance-approx"`
	Mean           float64           `json:"mean"`
	Variance       float64           `json:"variance"`
	Points         []univariatePoint `json:"points,omitempty"`
	Quantile       *int              `json:"quantile,omitempty"`
}

func init() {
	rootCmd.AddCommand(univariateCmd)
	initUnivariateFlags(univariateCmd)
	univariateCmd.Flags().StringVarP(&uniRange, "x", "x", "", "Values of x to evaluate, e.g. 3:12")
	univariateCmd.Flags().Float64Var(&uniQuantile, "quantile", -1, "Print the smallest x with CDF(x) >= quantile")
}

// initUnivariateFlags declares the urn parameters shared by the two color
// commands.
func initUnivariateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&uniDraws, "draws", "n", 0, "Number of items drawn")
	cmd.Flags().IntVarP(&uniMarked, "marked", "m", 0, "Number of items of color A in the urn")
	cmd.Flags().IntVarP(&uniTotal, "total", "N", 0, "Total number of items in the urn")
	cmd.Flags().Float64VarP(&uniOdds, "odds", "w", 1, "Odds of color A relative to the other color")
}

func newUnivariate() (*fnchyp.Univariate, error) {
	d, err := fnchyp.NewUnivariate(uniDraws, uniMarked, uniTotal, uniOdds, conf.Accuracy)
	if err != nil {
		return nil, errors.Annotate(err, "univariate")
	}
	return d, nil
}

var univariateCmd = &cobra.Command{
	Use:   "univariate",
	Short: "Moments and probabilities of the two color distribution",
	Long: `Computes the mode, approximate and exact moments of Fisher's noncentral
hypergeometric distribution, and optionally the probability function and CDF
over a range of x.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newUnivariate()
		if err != nil {
			return err
		}
		res := univariateResult{
			Draws:          uniDraws,
			Marked:         uniMarked,
			Total:          uniTotal,
			Odds:           uniOdds,
			Mode:           d.Mode(),
			MeanApprox:     d.Mean(),
			VarianceApprox: d.Variance(),
		}
		res.Xmin, res.Xmax = d.Support()
		var sum float64
		res.Mean, res.Variance, sum, err = d.Moments()
		if err != nil {
			return errors.Annotate(err, "moments")
		}
		log.WithFields(log.Fields{"sum": sum, "mean": res.Mean}).Debug("Univariate moments")

		if uniRange != "" {
			lo, hi, err := misc.ParseRange(uniRange)
			if err != nil {
				return err
			}
			for x := lo; x <= hi; x++ {
				p, err := d.Probability(x)
				if err != nil {
					return errors.Annotatef(err, "x=%d", x)
				}
				c, err := d.CDF(x)
				if err != nil {
					return errors.Annotatef(err, "x=%d", x)
				}
				res.Points = append(res.Points, univariatePoint{X: x, Probability: p, CDF: c})
			}
		}
		if uniQuantile >= 0 {
			q, err := d.Quantile(uniQuantile)
			if err != nil {
				return errors.Trace(err)
			}
			res.Quantile = &q
		}

		return printResult(cmd.OutOrStdout(), res, func(w io.Writer) {
			fmt.Fprintf(w, "support:           %d..%d\n", res.Xmin, res.Xmax)
			fmt.Fprintf(w, "mode:              %d\n", res.Mode)
			fmt.Fprintf(w, "mean (approx):     %.6f\n", res.MeanApprox)
			fmt.Fprintf(w, "variance (approx): %.6f\n", res.VarianceApprox)
			fmt.Fprintf(w, "mean:              %.10g\n", res.Mean)
			fmt.Fprintf(w, "variance:          %.10g\n", res.Variance)
			if res.Quantile != nil {
				fmt.Fprintf(w, "quantile(%g):     %d\n", uniQuantile, *res.Quantile)
			}
			for _, pt := range res.Points {
				fmt.Fprintf(w, "%8d  %-14.8g %.8g\n", pt.X, pt.Probability, pt.CDF)
			}
		})
	},
}
