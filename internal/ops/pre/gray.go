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
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mlnoga/patternscore/internal/img"
	"github.com/mlnoga/patternscore/internal/ops"
)


// Converts color images to a single perceptual lightness channel.
// Grayscale inputs pass through unchanged
type OpGray struct {
	ops.OpUnaryBase
}

func init() {
	ops.SetOperatorFactory(func() ops.Operator { return NewOpGrayDefaults() }) // register the operator for JSON decoding
	ops.SetCapabilityProvider("gray", func() ops.Operator { return NewOpGrayDefaults() })
}

func NewOpGrayDefaults() *OpGray { return NewOpGray() }

func NewOpGray() *OpGray {
	op:=&OpGray{
		OpUnaryBase : ops.OpUnaryBase{OpBase : ops.OpBase{Type: "gray", Active: true}},
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return op
}

func (op *OpGray) Provides() []string { return []string{"gray"} }

// Unmarshal the type from JSON with default values for missing entries
func (op *OpGray) UnmarshalJSON(data []byte) error {
	type defaults OpGray
	def:=defaults( *NewOpGrayDefaults() )
	err:=json.Unmarshal(data, &def)
	if err!=nil { return err }
	*op=OpGray(def)
	op.OpUnaryBase.Apply=op.Apply // make method receiver point to op, not def
	return nil
}

func (op *OpGray) Apply(f *img.Image, c *ops.Context) (result *img.Image, err error) {
	if f.IsGray() { return f, nil }
	if f.Channels()!=3 {
		return nil, fmt.Errorf("%d: cannot convert %d-channel image to gray", f.ID, f.Channels())
	}

	w, h:=f.Width(), f.Height()
	data:=make([]float32, int(w)*int(h))
	for i:=range data {
		offset:=i*3
		col:=colorful.Color{
			R: float64(f.Data[offset  ]),
			G: float64(f.Data[offset+1]),
			B: float64(f.Data[offset+2]),
		}
		l, _, _:=col.Lab()
		if l<0 { l=0 } else if l>1 { l=1 }
		data[i]=float32(l)
	}

	result=img.NewImageFromNaxisn([]int32{w, h}, data)
	result.ID=f.ID
	result.FileName=f.FileName
	result.Scores=f.Scores
	fmt.Fprintf(c.Log, "%d: Converted %s color image to grayscale lightness\n", f.ID, img.DimensionsToString(f.Naxisn))
	return result, nil
}
