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

// Returns the k-th smallest element of a, with k in [0, len(a)).
// Partially reorders the elements in place.
// Array must not contain IEEE NaN
func QSelectFloat64(a []float64, k int) float64 {
	lo, hi:=0, len(a)-1
	for lo<hi {
		p:=partitionFloat64(a, lo, hi)
		if      k<p { hi=p-1
		} else if k>p { lo=p+1
		} else      { break }
	}
	return a[k]
}

// Returns the k largest elements of a as a subslice of a, in no particular
// order. Returns all of a if k>=len(a). Partially reorders the elements in place.
// Array must not contain IEEE NaN
func QLargestKFloat64(a []float64, k int) []float64 {
	if k<=0        { return a[len(a):] }
	if k>=len(a)   { return a          }
	QSelectFloat64(a, len(a)-k)
	return a[len(a)-k:]
}

// Partitions a[lo:hi+1] around a median-of-three pivot.
// Returns the final pivot position; smaller elements end up left of it
func partitionFloat64(a []float64, lo, hi int) int {
	mid:=lo+(hi-lo)/2
	if a[mid]<a[lo]  { a[mid], a[lo] = a[lo],  a[mid] }
	if a[hi] <a[lo]  { a[hi],  a[lo] = a[lo],  a[hi]  }
	if a[hi] <a[mid] { a[hi],  a[mid]= a[mid], a[hi]  }
	a[mid], a[hi] = a[hi], a[mid]

	pivot:=a[hi]
	i:=lo
	for j:=lo; j<hi; j++ {
		if a[j]<pivot {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]
	return i
}
