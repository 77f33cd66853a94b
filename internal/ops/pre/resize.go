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


// Caps the longer image edge at MaxDim pixels, preserving the aspect ratio.
// Keeps frequency analysis tractable on large inputs
type OpResize struct {
	ops.OpUnaryBase
	MaxDim      int32     `json:"maxDim"`
}

func init() { ops.SetOperatorFactory(func() ops.Operator { return NewOpResizeDefaults() })} // register the operator for JSON decoding

func NewOpResizeDefaults() *OpResize { return NewOpResize(1024) }

func NewOpResize(maxDim int32) *OpResize {
	op:=&OpResize{
		OpUnaryBase : ops.OpUnaryBase{OpBase : ops.OpBase{Type: "resize", Active: maxDim>0}},
		MaxDim      : maxDim,
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return op
}

// Unmarshal the type from JSON with default values for missing entries
func (op *OpResize) UnmarshalJSON(data []byte) error {
	type defaults OpResize
	def:=defaults( *NewOpResizeDefaults() )
	err:=json.Unmarshal(data, &def)
	if err!=nil { return err }
	*op=OpResize(def)
	op.OpUnaryBase.Apply=op.Apply // make method receiver point to op, not def
	return nil
}

func (op *OpResize) Apply(f *img.Image, c *ops.Context) (result *img.Image, err error) {
	if !op.Active || op.MaxDim<=0 { return f, nil }
	result=f.Resize(op.MaxDim)
	if result!=f {
		fmt.Fprintf(c.Log, "%d: Resized %s image to %s\n", f.ID,
		            img.DimensionsToString(f.Naxisn), img.DimensionsToString(result.Naxisn))
	}
	return result, nil
}
