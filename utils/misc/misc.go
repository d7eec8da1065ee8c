// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package misc

import (
	"strconv"
	"strings"

	"github.com/juju/errors"
)

/* Returns generic items from a pair, e.g. low:high */
func SplitPair(s string) (string, string) {
	items := strings.Split(s, ":")
	if len(items) == 1 {
		return items[0], ""
	}
	if len(items) > 2 {
		return items[0], strings.Join(items[1:], ":")
	}
	return items[0], items[1]
}

/* Returns the bounds of an inclusive range, e.g. 3:12, or a single value */
func ParseRange(s string) (int, int, error) {
	lo, hi := SplitPair(strings.TrimSpace(s))
	a, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, errors.Annotatef(err, "range %q", s)
	}
	if hi == "" {
		return a, a, nil
	}
	b, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, errors.Annotatef(err, "range %q", s)
	}
	if b < a {
		return 0, 0, errors.Errorf("range %q is empty", s)
	}
	return a, b, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

/* Parses a comma separated list of integers, e.g. 10,15,5 */
func ParseInts(s string) ([]int, error) {
	items := splitList(s)
	values := make([]int, len(items))
	for i, item := range items {
		v, err := strconv.Atoi(item)
		if err != nil {
			return nil, errors.Annotatef(err, "item %d of %q", i+1, s)
		}
		values[i] = v
	}
	return values, nil
}

/* Parses a comma separated list of floats, e.g. 1,2.5,0.3 */
func ParseFloats(s string) ([]float64, error) {
	items := splitList(s)
	values := make([]float64, len(items))
	for i, item := range items {
		v, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, errors.Annotatef(err, "item %d of %q", i+1, s)
		}
		values[i] = v
	}
	return values, nil
}
