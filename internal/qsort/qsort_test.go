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


package qsort

import (
	"testing"
	"github.com/valyala/fastrand"
)

// prepare array of given length with a random permutation of 1..n
func randomPermutation(n int, rng *fastrand.RNG) []float64 {
	arr:=make([]float64, n)
	for j:=0; j<len(arr); j++ {
		arr[j]=float64(j+1)
	}
	for j:=0; j<len(arr); j++ {
		k:=rng.Uint32n(uint32(len(arr)))
		arr[j], arr[k] = arr[k], arr[j]
	}
	return arr
}

func TestQSelect(t *testing.T) {
	rng:=fastrand.RNG{}
	for i:=1; i<200; i++ {
		arr:=randomPermutation(i, &rng)
		k:=int(rng.Uint32n(uint32(i)))
		res:=QSelectFloat64(arr, k)
		if res!=float64(k+1) {
			t.Logf("select(1..%d, %d) got %f expect %d\n", i, k, res, k+1)
			t.Fail()
		}
	}
}

func TestQLargestK(t *testing.T) {
	rng:=fastrand.RNG{}
	for i:=1; i<200; i++ {
		arr:=randomPermutation(i, &rng)
		k:=int(rng.Uint32n(uint32(i+5)))

		largest:=QLargestKFloat64(arr, k)
		wantLen:=k
		if wantLen>i { wantLen=i }
		if len(largest)!=wantLen {
			t.Fatalf("largestK(1..%d, %d) returned %d elements; want %d", i, k, len(largest), wantLen)
		}

		// the k largest of 1..n are n-k+1..n
		sum:=0.0
		for _,v:=range largest {
			if v<float64(i-wantLen+1) {
				t.Errorf("largestK(1..%d, %d) contains %f", i, k, v)
			}
			sum+=v
		}
		wantSum:=0.0
		for j:=i-wantLen+1; j<=i; j++ { wantSum+=float64(j) }
		if sum!=wantSum {
			t.Errorf("largestK(1..%d, %d) sums to %f; want %f", i, k, sum, wantSum)
		}
	}
}

func TestQLargestKEmpty(t *testing.T) {
	if got:=QLargestKFloat64(nil, 5); len(got)!=0 {
		t.Errorf("largestK(nil, 5) returned %d elements; want 0", len(got))
	}
	if got:=QLargestKFloat64([]float64{3, 1, 2}, 0); len(got)!=0 {
		t.Errorf("largestK(3, 0) returned %d elements; want 0", len(got))
	}
}
