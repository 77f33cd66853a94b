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


// Package pattern scores how pattern-like a magnitude spectrum is, i.e. how
// strongly the underlying image exhibits regular, repeating visual structure.
//
// High-intensity frequencies are extracted from the spectrum together with
// their distances from the spectrum center. Spatial outliers among those
// distances are removed with a local outlier factor criterion, and the
// surviving maximum distances define a disk within which the density of
// high-intensity frequencies is measured. Pattern-like images concentrate
// their energy in few strong periodic components and exhibit a smaller
// density than non-pattern-like images; the density is finally rescaled
// into a score in [0,1], where 1 means strongly pattern-like.
package pattern

import (
	"fmt"
	"math"
	"gonum.org/v1/gonum/floats"
	"github.com/mlnoga/patternscore/internal/lof"
	"github.com/mlnoga/patternscore/internal/qsort"
	"github.com/mlnoga/patternscore/internal/stats"
)

// Fixed energy threshold above which a spectrum cell counts as a strong
// periodic component. Calibrated against the [0,1] normalization of the
// upstream magnitude spectrum, not user-configurable
const IntensityThreshold=0.7

// Raw densities below this map to a score of exactly 1 (strict comparison)
const lowDensity=0.05

// Raw densities above this map to a score of exactly 0 (strict comparison)
const highDensity=0.4

// Tuning knobs for the outlier rejection and radius estimation stages
type Options struct {
	Contamination float64  // max fraction of distances excised as outliers
	Neighbors     int      // neighborhood size for the outlier criterion
	TopK          int      // number of largest distances averaged into the radius
}

// The parameters of the original calibration
func DefaultOptions() Options {
	return Options{
		Contamination: 0.4,
		Neighbors:     lof.DefaultNeighbors,
		TopK:          20,
	}
}

// DistanceField returns a width x height row-major array where cell (y,x)
// holds the squared euclidean distance from (x,y) to the array center
// (width/2, height/2). Centers are continuous, so odd dimensions keep
// their sub-pixel symmetry
func DistanceField(width, height int32) []float32 {
	field:=make([]float32, int(width)*int(height))
	cx, cy:=float32(width)/2, float32(height)/2
	i:=0
	for y:=int32(0); y<height; y++ {
		dy:=float32(y)-cy
		for x:=int32(0); x<width; x++ {
			dx:=float32(x)-cx
			field[i]=dx*dx+dy*dy
			i++
		}
	}
	return field
}

// HighIntensityMask marks the spectrum cells that exceed the fixed
// intensity threshold
func HighIntensityMask(spectrum []float32) []bool {
	mask:=make([]bool, len(spectrum))
	for i,v:=range spectrum {
		mask[i]=v>IntensityThreshold
	}
	return mask
}

// DistanceSet extracts the center distances of the masked cells in
// row-major order. The order carries no meaning downstream, but is
// deterministic for reproducibility
func DistanceSet(field []float32, mask []bool) []float64 {
	set:=make([]float64, 0, len(mask)/8)
	for i,m:=range mask {
		if m {
			set=append(set, math.Sqrt(float64(field[i])))
		}
	}
	return set
}

// EstimateRadius returns the mean of the topK largest distances, or of all
// distances if fewer exist. An empty set yields radius 0, which downstream
// produces an empty inner disk rather than propagating NaN
func EstimateRadius(distances []float64, topK int) float64 {
	if len(distances)==0 { return 0 }
	work:=append([]float64(nil), distances...)
	largest:=qsort.QLargestKFloat64(work, topK)
	return floats.Sum(largest)/float64(len(largest))
}

// Density returns the fraction of cells inside the disk of given radius
// (strictly field<radius^2) that are high-intensity. An empty disk yields
// density 0 rather than dividing by zero
func Density(mask []bool, field []float32, radius float64) float32 {
	radiusSq:=float32(radius*radius)
	intensePoints, allPoints:=0, 0
	for i,d:=range field {
		if d<radiusSq {
			allPoints++
			if mask[i] { intensePoints++ }
		}
	}
	if allPoints==0 { return 0 }
	return float32(intensePoints)/float32(allPoints)
}

// ScalePrediction remaps the raw density into the final score. Densities
// strictly below 0.05 are strongly pattern-like and saturate to 1;
// densities strictly above 0.4 saturate to 0; the band in between maps
// linearly and monotonically decreasing
func ScalePrediction(density float32) float32 {
	if density<lowDensity  { return 1 }
	if density>highDensity { return 0 }
	return 1-stats.NormalizeInto(density, 0, highDensity)
}

// Score runs the full pipeline on a magnitude spectrum with default options
func Score(spectrum []float32, width int32) (float32, error) {
	return ScoreWith(spectrum, width, DefaultOptions())
}

// ScoreWith runs the full pipeline: distance field, intensity thresholding,
// outlier rejection, radius estimation, density measurement and rescaling.
// The spectrum must be normalized to [0,1] and is not modified. An empty
// spectrum is degenerate, not an error, and scores the sentinel 1.
// A shape mismatch between data and width fails fast
func ScoreWith(spectrum []float32, width int32, opt Options) (float32, error) {
	if width<=0 {
		return 0, fmt.Errorf("invalid spectrum width %d", width)
	}
	if len(spectrum)==0 {
		return ScalePrediction(0), nil
	}
	if len(spectrum)%int(width)!=0 {
		return 0, fmt.Errorf("invalid spectrum shape: %d values for width %d", len(spectrum), width)
	}
	height:=int32(len(spectrum)/int(width))

	field:=DistanceField(width, height)
	mask:=HighIntensityMask(spectrum)
	set:=DistanceSet(field, mask)
	kept:=lof.Filter(set, opt.Contamination, opt.Neighbors)
	radius:=EstimateRadius(kept, opt.TopK)
	density:=Density(mask, field, radius)
	return ScalePrediction(density), nil
}
