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
	"bytes"
	"encoding/json"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/signal18/biasedurn/fnchyp"
)

func execute(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return &buf, err
}

func TestUnivariateCmd(t *testing.T) {
	assert := assert.New(t)

	out, err := execute(t, "univariate", "-n", "15", "-m", "20", "-N", "50", "-w", "2.5",
		"--x", "0:15", "--quantile", "0.5", "--output", "json")
	require.NoError(t, err)

	var res univariateResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(0, res.Xmin)
	assert.Equal(15, res.Xmax)
	assert.Len(res.Points, 16)
	sum := 0.
	for _, pt := range res.Points {
		sum += pt.Probability
	}
	assert.InDelta(1., sum, 1e-7)
	assert.Equal(1., res.Points[15].CDF)
	require.NotNil(t, res.Quantile)
	assert.True(*res.Quantile >= res.Xmin && *res.Quantile <= res.Xmax)
	assert.InDelta(res.Mean, res.MeanApprox, 0.3)
}

func TestMultivariateCmd(t *testing.T) {
	assert := assert.New(t)

	out, err := execute(t, "multivariate", "-n", "6", "-m", "5,5,5", "-w", "1,2,10",
		"--x", "1,2,3", "--output", "json")
	require.NoError(t, err)

	var res multivariateResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(3, res.UsedColors)
	assert.True(res.Combinations > 0)
	assert.InDelta(6., floats.Sum(res.Mean), 1e-8)
	require.NotNil(t, res.Probability)
	assert.True(*res.Probability > 0 && *res.Probability < 1)

	out, err = execute(t, "multivariate", "-n", "6", "-m", "5,5,5", "-w", "1,2,10",
		"--x", "", "--output", "text")
	require.NoError(t, err)
	assert.Contains(out.String(), "combinations:")
}

func TestTableCmd(t *testing.T) {
	assert := assert.New(t)

	out, err := execute(t, "table", "-n", "60", "-m", "80", "-N", "200", "-w", "3",
		"--accuracy", "1e-10", "--output", "json")
	require.NoError(t, err)

	var res tableResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Len(res.Probability, res.Last-res.First+1)
	assert.InDelta(1., floats.Sum(res.Probability), 1e-12)

	d, err := fnchyp.NewUnivariate(60, 80, 200, 3, 1e-10)
	require.NoError(t, err)
	mean, variance, _, err := d.Moments()
	require.NoError(t, err)
	assert.InDelta(mean, res.Mean, 1e-6)
	assert.InDelta(variance, res.Variance, 1e-5)
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, "config", "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[default]")
	assert.Contains(t, out.String(), "accuracy")
}

func TestExitCode(t *testing.T) {
	assert := assert.New(t)

	_, err := execute(t, "univariate", "-n", "60", "-m", "80", "-N", "50", "--x", "", "--output", "text")
	require.Error(t, err)
	assert.Equal(2, exitCode(err))

	_, err = fnchyp.NewMultivariate(3, []int{1}, []float64{1, 2}, 1e-8)
	assert.Equal(2, exitCode(errors.Annotate(err, "multivariate")))
	assert.Equal(1, exitCode(errors.New("other")))
}
