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


// Package score provides operators attaching named analysis scores to images.
package score

import (
	"encoding/json"
	"fmt"
	"github.com/mlnoga/patternscore/internal/img"
	"github.com/mlnoga/patternscore/internal/ops"
	"github.com/mlnoga/patternscore/internal/pattern"
	"github.com/mlnoga/patternscore/internal/spectrum"
)

// The key under which the pattern-likeness score is attached to an image
const ScoreKey="pattern"

// Scores how pattern-like an image is via its frequency spectrum, and
// attaches the result in [0,1] under the "pattern" score key.
// Expects a two-level grayscale input; the capability resolver inserts
// the preparation steps when they are missing from a chain
type OpPatternScore struct {
	ops.OpUnaryBase
	Contamination float64 `json:"contamination"`
	Neighbors     int     `json:"neighbors"`
	TopK          int     `json:"topK"`
}

func init() { ops.SetOperatorFactory(func() ops.Operator { return NewOpPatternScoreDefaults() })} // register the operator for JSON decoding

func NewOpPatternScoreDefaults() *OpPatternScore {
	def:=pattern.DefaultOptions()
	return NewOpPatternScore(def.Contamination, def.Neighbors, def.TopK)
}

func NewOpPatternScore(contamination float64, neighbors, topK int) *OpPatternScore {
	op:=&OpPatternScore{
		OpUnaryBase   : ops.OpUnaryBase{OpBase : ops.OpBase{Type: "patternScore", Active: true}},
		Contamination : contamination,
		Neighbors     : neighbors,
		TopK          : topK,
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return op
}

func (op *OpPatternScore) Requires() []string { return []string{"reduceColors"} }

// Unmarshal the type from JSON with default values for missing entries
func (op *OpPatternScore) UnmarshalJSON(data []byte) error {
	type defaults OpPatternScore
	def:=defaults( *NewOpPatternScoreDefaults() )
	err:=json.Unmarshal(data, &def)
	if err!=nil { return err }
	*op=OpPatternScore(def)
	op.OpUnaryBase.Apply=op.Apply // make method receiver point to op, not def
	return nil
}

func (op *OpPatternScore) Apply(f *img.Image, c *ops.Context) (result *img.Image, err error) {
	if !f.IsGray() {
		return nil, fmt.Errorf("%d: pattern scoring needs a grayscale image, got %d channels", f.ID, f.Channels())
	}

	mag, err:=spectrum.Magnitude(f.Data, f.Width())
	if err!=nil { return nil, fmt.Errorf("%d: %s", f.ID, err.Error()) }

	opt:=pattern.Options{
		Contamination: op.Contamination,
		Neighbors:     op.Neighbors,
		TopK:          op.TopK,
	}
	value, err:=pattern.ScoreWith(mag, f.Width(), opt)
	if err!=nil { return nil, fmt.Errorf("%d: %s", f.ID, err.Error()) }

	f.SetScore(ScoreKey, value)
	fmt.Fprintf(c.Log, "%d: Pattern score %.4f for %s\n", f.ID, value, f.FileName)
	return f, nil
}
