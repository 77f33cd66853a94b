// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package lof

import (
	"math"
	"testing"
)

func TestFilterEmpty(t *testing.T) {
	out:=Filter(nil, 0.4, 20)
	if len(out)!=0 { t.Errorf("filter(nil) returned %d values; want 0", len(out)) }
}

// Sets smaller than the neighborhood size pass through unchanged
func TestFilterSmallSet(t *testing.T) {
	in:=[]float64{1, 2, 3, 1000}
	out:=Filter(in, 0.4, 20)
	if len(out)!=len(in) {
		t.Fatalf("small set filtered to %d values; want %d unchanged", len(out), len(in))
	}
	for i,v:=range out {
		if v!=in[i] { t.Errorf("out[%d]=%f; want %f", i, v, in[i]) }
	}
}

func TestFilterRemovesIsolatedPoint(t *testing.T) {
	// dense cluster of 40 points plus one far outlier
	in:=make([]float64, 0, 41)
	for i:=0; i<40; i++ {
		in=append(in, 10+0.1*float64(i))
	}
	in=append(in, 500)

	out:=Filter(in, 0.4, 20)
	if len(out)>len(in) {
		t.Fatalf("filter increased set size from %d to %d", len(in), len(out))
	}
	for _,v:=range out {
		if v==500 { t.Errorf("isolated point 500 survived filtering") }
	}

	// contamination caps removals at 40% of the set
	minKept:=len(in)-int(0.4*float64(len(in)))-1
	if len(out)<minKept {
		t.Errorf("filter kept %d of %d values; want at least %d", len(out), len(in), minKept)
	}
}

// Output must be a subsequence of the input in original order
func TestFilterPreservesOrder(t *testing.T) {
	in:=make([]float64, 0, 41)
	for i:=40; i>0; i-- {
		in=append(in, float64(i))
	}
	in=append(in, 10000)

	out:=Filter(in, 0.4, 20)
	pos:=0
	for _,v:=range out {
		found:=false
		for ; pos<len(in); pos++ {
			if in[pos]==v { found=true; pos++; break }
		}
		if !found { t.Fatalf("output value %f out of input order", v) }
	}
}

// Duplicate-heavy sets must not divide by zero
func TestFilterDuplicates(t *testing.T) {
	in:=make([]float64, 50)
	for i:=range in { in[i]=7 }
	out:=Filter(in, 0.4, 20)
	if len(out)==0 {
		t.Errorf("all-duplicate set filtered to empty; want most values kept")
	}
	for _,v:=range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("filter produced non-finite value %f", v)
		}
	}
}

func TestScoresInlierNearOne(t *testing.T) {
	// evenly spaced values have near-uniform density away from the edges
	in:=make([]float64, 100)
	for i:=range in { in[i]=float64(i) }
	scores:=Scores(in, 20)
	if len(scores)!=len(in) {
		t.Fatalf("scores length %d; want %d", len(scores), len(in))
	}
	for i:=30; i<70; i++ {
		if scores[i]<0.5 || scores[i]>1.5 {
			t.Errorf("interior score[%d]=%f; want near 1", i, scores[i])
		}
	}
}
