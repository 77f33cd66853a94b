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
	"fmt"
	"math"
)

// Basic statistics on a float32 data array
type Stats struct {
	Min    float32  // Minimum
	Max    float32  // Maximum
	Mean   float32  // Mean (average)
	StdDev float32  // Standard deviation (norm 2, sigma)
}

// Calculates basic statistics for a data array via the active kernels.
// Returns zero stats for an empty array
func NewStats(data []float32) *Stats {
	s:=&Stats{}
	if len(data)==0 { return s }
	s.Min, s.Max=active.MinMax(data)
	s.Mean=float32(active.Sum(data)/float64(len(data)))

	variance:=active.SumSqDiff(data, s.Mean)/float64(len(data))
	s.StdDev=float32(math.Sqrt(variance))
	return s
}

// Pretty print basic stats to string
func (s *Stats) String() string {
	return fmt.Sprintf("Min %.6g Max %.6g Mean %.6g StdDev %.6g",
	                 	s.Min, s.Max,   s.Mean,   s.StdDev)
}

// Normalizes a data array into the range [0,1], returning a freshly
// allocated array. A degenerate input with min==max maps to all ones,
// avoiding the division by zero
func Normalize(data []float32) []float32 {
	out:=make([]float32, len(data))
	if len(data)==0 { return out }

	min, max:=active.MinMax(data)
	if max-min<1e-12 {
		for i:=range out { out[i]=1 }
		return out
	}

	mult:=1/(max-min)
	for i,v:=range data {
		out[i]=(v-min)*mult
	}
	return out
}

// Linearly rescales value from [lo,hi] into [0,1], clamping outside values
// to the boundaries. Values at lo map to exactly 0, values at hi to exactly 1.
// A degenerate interval with hi<=lo maps everything to 1
func NormalizeInto(value, lo, hi float32) float32 {
	if hi<=lo { return 1 }
	v:=(value-lo)/(hi-lo)
	if v<0 { return 0 }
	if v>1 { return 1 }
	return v
}
