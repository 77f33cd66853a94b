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

package pre

import (
	"encoding/json"
	"fmt"
	"github.com/mlnoga/patternscore/internal/img"
	"github.com/mlnoga/patternscore/internal/ops"
)

const reduceBins=256

// Reduces a grayscale image to two levels {0,1} with Otsu thresholding,
// maximizing the inter-class variance over a 256-bin intensity histogram.
// https://en.wikipedia.org/wiki/Otsu%27s_method
type OpReduceColors struct {
	ops.OpUnaryBase
}

func init() {
	ops.SetOperatorFactory(func() ops.Operator { return NewOpReduceColorsDefaults() }) // register the operator for JSON decoding
	ops.SetCapabilityProvider("reduceColors", func() ops.Operator { return NewOpReduceColorsDefaults() })
}

func NewOpReduceColorsDefaults() *OpReduceColors { return NewOpReduceColors() }

func NewOpReduceColors() *OpReduceColors {
	op:=&OpReduceColors{
		OpUnaryBase : ops.OpUnaryBase{OpBase : ops.OpBase{Type: "reduceColors", Active: true}},
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return op
}

func (op *OpReduceColors) Requires() []string { return []string{"gray"} }
func (op *OpReduceColors) Provides() []string { return []string{"reduceColors"} }

// Unmarshal the type from JSON with default values for missing entries
func (op *OpReduceColors) UnmarshalJSON(data []byte) error {
	type defaults OpReduceColors
	def:=defaults( *NewOpReduceColorsDefaults() )
	err:=json.Unmarshal(data, &def)
	if err!=nil { return err }
	*op=OpReduceColors(def)
	op.OpUnaryBase.Apply=op.Apply // make method receiver point to op, not def
	return nil
}

func (op *OpReduceColors) Apply(f *img.Image, c *ops.Context) (result *img.Image, err error) {
	if !f.IsGray() {
		return nil, fmt.Errorf("%d: cannot reduce colors of %d-channel image", f.ID, f.Channels())
	}

	threshold:=otsuThreshold(f.Data)
	data:=make([]float32, len(f.Data))
	for i,v:=range f.Data {
		if v>=threshold { data[i]=1 }
	}

	result=img.NewImageFromNaxisn(f.Naxisn, data)
	result.ID=f.ID
	result.FileName=f.FileName
	result.Scores=f.Scores
	fmt.Fprintf(c.Log, "%d: Reduced to two levels at threshold %.4f\n", f.ID, threshold)
	return result, nil
}

// otsuThreshold picks the histogram bin boundary maximizing the inter-class
// variance of the binary split. Bimodal histograms with an empty gap between
// the modes yield a plateau of equally good splits; ties break to the middle
// of that plateau. Returns the lower edge of the first bin counted as
// foreground, so callers classify with v>=threshold
func otsuThreshold(data []float32) float32 {
	var histo [reduceBins]int
	for _,v:=range data {
		bin:=int(v*reduceBins)
		if bin<0 { bin=0 } else if bin>=reduceBins { bin=reduceBins-1 }
		histo[bin]++
	}

	totalPixels:=len(data)
	totalWeightedSum:=0
	for bin,pixels:=range histo {
		totalWeightedSum+=bin*pixels
	}

	bestFirst, bestLast, bestVariance:=0, 0, 0.0
	blkPixels, blkWeightedSum:=0, 0
	for bin,pixels:=range histo {
		blkPixels+=pixels
		blkWeightedSum+=bin*pixels

		wtePixels:=totalPixels-blkPixels
		wteWeightedSum:=totalWeightedSum-blkWeightedSum

		// all pixels on one side of the split carry no variance
		if blkPixels==0 || wtePixels==0 { continue }

		blkMean:=blkWeightedSum/blkPixels
		wteMean:=wteWeightedSum/wtePixels
		diff:=float64(blkMean-wteMean)
		// pixel counts squared overflow int on large images, so work in float64
		variance:=float64(blkPixels)*float64(wtePixels)*diff*diff
		if variance>bestVariance {
			bestVariance=variance
			bestFirst, bestLast=bin, bin
		} else if variance==bestVariance && bestVariance>0 {
			bestLast=bin
		}
	}
	bestThreshold:=(bestFirst+bestLast)/2
	return float32(bestThreshold+1)/reduceBins
}
