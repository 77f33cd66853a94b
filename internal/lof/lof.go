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


// Package lof removes local-density outliers from one-dimensional value
// sets using the local outlier factor technique: a point is anomalous when
// its local neighborhood density is substantially lower than that of its
// k nearest neighbors.
package lof

import (
	"math"
	"sort"
	"gonum.org/v1/gonum/stat"
)

// Number of nearest neighbors considered per point
const DefaultNeighbors=20

// Guards the local reachability density against zero mean reachability
// distance, which occurs in sets with k+1 or more duplicates of a value
const lrdEpsilon=1e-10

// Filter returns the values that are not local-density outliers, as a
// freshly allocated subsequence of the input in original order.
// contamination in [0,1] caps the fraction of points that may be removed:
// points whose outlier factor exceeds the empirical (1-contamination)
// quantile of all factors are dropped. Inputs with fewer than k+1 points
// are returned unchanged, and an empty input yields an empty output
func Filter(values []float64, contamination float64, k int) []float64 {
	if k<1 { k=DefaultNeighbors }
	out:=make([]float64, 0, len(values))
	if len(values)==0 { return out }
	if len(values)<k+1 || contamination<=0 {
		return append(out, values...)
	}

	scores:=Scores(values, k)

	sorted:=append([]float64(nil), scores...)
	sort.Float64s(sorted)
	threshold:=stat.Quantile(1-contamination, stat.Empirical, sorted, nil)

	for i,v:=range values {
		if scores[i]<=threshold {
			out=append(out, v)
		}
	}
	return out
}

// Scores calculates the local outlier factor for each value, index-aligned
// with the input. Factors near 1 indicate inliers; substantially larger
// factors indicate points in sparse neighborhoods. Requires len(values)>k
func Scores(values []float64, k int) []float64 {
	n:=len(values)

	// sort once; k nearest neighbors of a point are contiguous around it
	order:=make([]int, n)
	for i:=range order { order[i]=i }
	sort.SliceStable(order, func(i, j int) bool { return values[order[i]]<values[order[j]] })
	sorted:=make([]float64, n)
	for i,idx:=range order { sorted[i]=values[idx] }

	neighbors:=make([][]int, n)     // neighbor positions in sorted domain
	kDist   :=make([]float64, n)    // distance to the k-th nearest neighbor
	for i:=0; i<n; i++ {
		neighbors[i], kDist[i]=nearestK(sorted, i, k)
	}

	// local reachability density per point
	lrd:=make([]float64, n)
	for i:=0; i<n; i++ {
		sum:=0.0
		for _,j:=range neighbors[i] {
			reach:=math.Abs(sorted[i]-sorted[j])
			if kDist[j]>reach { reach=kDist[j] }
			sum+=reach
		}
		lrd[i]=1/(sum/float64(len(neighbors[i]))+lrdEpsilon)
	}

	// outlier factor: mean neighbor density over own density
	scores:=make([]float64, n)
	for i:=0; i<n; i++ {
		sum:=0.0
		for _,j:=range neighbors[i] {
			sum+=lrd[j]
		}
		scores[order[i]]=sum/float64(len(neighbors[i]))/lrd[i]
	}
	return scores
}

// Returns the positions of the k nearest neighbors of sorted[i] within the
// sorted array, and the distance to the farthest of them. Ties resolve to
// the left neighbor first for determinism
func nearestK(sorted []float64, i, k int) (positions []int, kDist float64) {
	positions=make([]int, 0, k)
	lo, hi:=i-1, i+1
	for len(positions)<k {
		switch {
		case lo<0 && hi>=len(sorted):
			return positions, kDist
		case hi>=len(sorted),
			lo>=0 && sorted[i]-sorted[lo]<=sorted[hi]-sorted[i]:
			d:=sorted[i]-sorted[lo]
			if d>kDist { kDist=d }
			positions=append(positions, lo)
			lo--
		default:
			d:=sorted[hi]-sorted[i]
			if d>kDist { kDist=d }
			positions=append(positions, hi)
			hi++
		}
	}
	return positions, kDist
}
