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
	"github.com/klauspost/cpuid"
)

// Kernels bundles the hot array reductions behind an explicit strategy,
// selected once at startup rather than resolved per call.
// All variants are pure Go and numerically equivalent
type Kernels struct {
	Name      string
	MinMax    func(data []float32) (min, max float32)
	Sum       func(data []float32) (sum float64)
	SumSqDiff func(data []float32, mean float32) (sum float64)
}

// The active kernel set. Defaults to the wide variant on CPUs with AVX2,
// which keeps the four parallel accumulator chains in vector registers
var active=selectKernels()

func selectKernels() Kernels {
	if cpuid.CPU.AVX2() {
		return WideKernels()
	}
	return PureGoKernels()
}

// Replaces the active kernel set, e.g. to pin a variant in tests.
// Returns the previously active set
func SetKernels(k Kernels) (previous Kernels) {
	previous=active
	active=k
	return previous
}

// Returns the active kernel set
func ActiveKernels() Kernels { return active }

// Straightforward scalar kernels
func PureGoKernels() Kernels {
	return Kernels{
		Name:      "purego",
		MinMax:    minMaxPureGo,
		Sum:       sumPureGo,
		SumSqDiff: sumSqDiffPureGo,
	}
}

// Kernels with 4-way unrolled loops and independent accumulators
func WideKernels() Kernels {
	return Kernels{
		Name:      "wide",
		MinMax:    minMaxWide,
		Sum:       sumWide,
		SumSqDiff: sumSqDiffWide,
	}
}

func minMaxPureGo(data []float32) (min, max float32) {
	min, max=data[0], data[0]
	for _,v:=range data {
		if v<min { min=v }
		if v>max { max=v }
	}
	return min, max
}

func sumPureGo(data []float32) (sum float64) {
	for _,v:=range data { sum+=float64(v) }
	return sum
}

func sumSqDiffPureGo(data []float32, mean float32) (sum float64) {
	for _,v:=range data {
		diff:=float64(v-mean)
		sum+=diff*diff
	}
	return sum
}

func minMaxWide(data []float32) (min, max float32) {
	min0, min1, min2, min3:=data[0], data[0], data[0], data[0]
	max0, max1, max2, max3:=data[0], data[0], data[0], data[0]
	i:=0
	for ; i+4<=len(data); i+=4 {
		v0, v1, v2, v3:=data[i], data[i+1], data[i+2], data[i+3]
		if v0<min0 { min0=v0 }
		if v1<min1 { min1=v1 }
		if v2<min2 { min2=v2 }
		if v3<min3 { min3=v3 }
		if v0>max0 { max0=v0 }
		if v1>max1 { max1=v1 }
		if v2>max2 { max2=v2 }
		if v3>max3 { max3=v3 }
	}
	if min1<min0 { min0=min1 }
	if min3<min2 { min2=min3 }
	if min2<min0 { min0=min2 }
	if max1>max0 { max0=max1 }
	if max3>max2 { max2=max3 }
	if max2>max0 { max0=max2 }
	for ; i<len(data); i++ {
		v:=data[i]
		if v<min0 { min0=v }
		if v>max0 { max0=v }
	}
	return min0, max0
}

func sumWide(data []float32) (sum float64) {
	var s0, s1, s2, s3 float64
	i:=0
	for ; i+4<=len(data); i+=4 {
		s0+=float64(data[i  ])
		s1+=float64(data[i+1])
		s2+=float64(data[i+2])
		s3+=float64(data[i+3])
	}
	sum=(s0+s1)+(s2+s3)
	for ; i<len(data); i++ {
		sum+=float64(data[i])
	}
	return sum
}

func sumSqDiffWide(data []float32, mean float32) (sum float64) {
	var s0, s1, s2, s3 float64
	i:=0
	for ; i+4<=len(data); i+=4 {
		d0:=float64(data[i  ]-mean)
		d1:=float64(data[i+1]-mean)
		d2:=float64(data[i+2]-mean)
		d3:=float64(data[i+3]-mean)
		s0+=d0*d0
		s1+=d1*d1
		s2+=d2*d2
		s3+=d3*d3
	}
	sum=(s0+s1)+(s2+s3)
	for ; i<len(data); i++ {
		d:=float64(data[i]-mean)
		sum+=d*d
	}
	return sum
}
