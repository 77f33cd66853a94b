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

package stats

import (
	"math"
	"testing"
	"github.com/valyala/fastrand"
)

func TestNewStats(t *testing.T) {
	epsilon:=1e-5
	data:=[]float32{2, 4, 4, 4, 5, 5, 7, 9}
	s:=NewStats(data)
	if s.Min!=2 { t.Errorf("min=%f; want 2", s.Min) }
	if s.Max!=9 { t.Errorf("max=%f; want 9", s.Max) }
	if math.Abs(float64(s.Mean-5))>epsilon { t.Errorf("mean=%f; want 5", s.Mean) }
	if math.Abs(float64(s.StdDev-2))>epsilon { t.Errorf("stdDev=%f; want 2", s.StdDev) }
}

func TestNewStatsEmpty(t *testing.T) {
	s:=NewStats(nil)
	if s.Min!=0 || s.Max!=0 || s.Mean!=0 || s.StdDev!=0 {
		t.Errorf("empty stats %v; want all zero", s)
	}
}

// Both kernel variants must agree on randomized data
func TestKernelsAgree(t *testing.T) {
	epsilon:=1e-3
	rng:=fastrand.RNG{}
	for _,n:=range []int{1, 2, 3, 4, 5, 7, 8, 63, 64, 65, 1000} {
		data:=make([]float32, n)
		for i:=range data {
			data[i]=float32(rng.Uint32n(65536))/65536.0
		}
		pg, wide:=PureGoKernels(), WideKernels()

		pgMin, pgMax:=pg.MinMax(data)
		wMin, wMax:=wide.MinMax(data)
		if pgMin!=wMin || pgMax!=wMax {
			t.Errorf("n=%d minmax purego (%f,%f) wide (%f,%f)", n, pgMin, pgMax, wMin, wMax)
		}
		if math.Abs(pg.Sum(data)-wide.Sum(data))>epsilon {
			t.Errorf("n=%d sum purego %f wide %f", n, pg.Sum(data), wide.Sum(data))
		}
		mean:=float32(pg.Sum(data)/float64(n))
		if math.Abs(pg.SumSqDiff(data, mean)-wide.SumSqDiff(data, mean))>epsilon {
			t.Errorf("n=%d sumSqDiff purego %f wide %f", n, pg.SumSqDiff(data, mean), wide.SumSqDiff(data, mean))
		}
	}
}

func TestSetKernels(t *testing.T) {
	prev:=SetKernels(PureGoKernels())
	defer SetKernels(prev)
	if ActiveKernels().Name!="purego" {
		t.Errorf("active kernels %s; want purego", ActiveKernels().Name)
	}
}

func TestNormalize(t *testing.T) {
	out:=Normalize([]float32{2, 4, 6})
	want:=[]float32{0, 0.5, 1}
	for i,v:=range out {
		if v!=want[i] { t.Errorf("normalize[%d]=%f; want %f", i, v, want[i]) }
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	out:=Normalize([]float32{3, 3, 3, 3})
	for i,v:=range out {
		if v!=1 { t.Errorf("normalize[%d]=%f; want 1", i, v) }
	}
}

func TestNormalizeDoesNotMutate(t *testing.T) {
	in:=[]float32{2, 4, 6}
	Normalize(in)
	if in[0]!=2 || in[1]!=4 || in[2]!=6 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestNormalizeInto(t *testing.T) {
	tcs:=[]struct{ value, lo, hi, want float32 }{
		{-1,   0, 0.4, 0},
		{0,    0, 0.4, 0},
		{0.05, 0, 0.4, 0.125},
		{0.2,  0, 0.4, 0.5},
		{0.4,  0, 0.4, 1},
		{0.5,  0, 0.4, 1},
		{7,    3, 3,   1},     // degenerate interval
	}
	epsilon:=1e-6
	for _,tc:=range tcs {
		got:=NormalizeInto(tc.value, tc.lo, tc.hi)
		if math.Abs(float64(got-tc.want))>epsilon {
			t.Errorf("normalizeInto(%f,%f,%f)=%f; want %f", tc.value, tc.lo, tc.hi, got, tc.want)
		}
	}
}
