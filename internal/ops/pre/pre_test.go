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
	"io"
	"testing"
	"github.com/mlnoga/patternscore/internal/img"
	"github.com/mlnoga/patternscore/internal/ops"
)

func testContext() *ops.Context { return ops.NewContext(io.Discard) }

func TestOpGrayPassesGrayThrough(t *testing.T) {
	f:=img.NewImageFromNaxisn([]int32{4, 4}, nil)
	out, err:=NewOpGray().Apply(f, testContext())
	if err!=nil { t.Fatalf("gray failed: %s", err.Error()) }
	if out!=f { t.Errorf("grayscale input was not passed through unchanged") }
}

func TestOpGrayConvertsColor(t *testing.T) {
	// black, white and a saturated red pixel
	data:=[]float32{0, 0, 0, 1, 1, 1, 1, 0, 0}
	f:=img.NewImageFromNaxisn([]int32{3, 1, 3}, data)
	out, err:=NewOpGray().Apply(f, testContext())
	if err!=nil { t.Fatalf("gray failed: %s", err.Error()) }

	if !out.IsGray() || out.Width()!=3 || out.Height()!=1 {
		t.Fatalf("gray conversion produced %s raster", img.DimensionsToString(out.Naxisn))
	}
	if out.Data[0]>0.01 {
		t.Errorf("black converted to lightness %f; want 0", out.Data[0])
	}
	if out.Data[1]<0.99 {
		t.Errorf("white converted to lightness %f; want 1", out.Data[1])
	}
	// red is mid-lightness, far from both extremes
	if out.Data[2]<0.2 || out.Data[2]>0.8 {
		t.Errorf("red converted to lightness %f; want mid-range", out.Data[2])
	}
}

func TestOpResize(t *testing.T) {
	f:=img.NewImageFromNaxisn([]int32{64, 32}, nil)
	out, err:=NewOpResize(16).Apply(f, testContext())
	if err!=nil { t.Fatalf("resize failed: %s", err.Error()) }
	if out.Width()!=16 || out.Height()!=8 {
		t.Errorf("resized to %s; want 16x8", img.DimensionsToString(out.Naxisn))
	}

	out, err=NewOpResize(0).Apply(f, testContext())
	if err!=nil { t.Fatalf("resize failed: %s", err.Error()) }
	if out!=f { t.Errorf("inactive resize did not pass input through") }
}

func TestOtsuThresholdBimodal(t *testing.T) {
	// two well separated intensity clusters around 0.2 and 0.8. Every split
	// in the empty gap is equally good; the tie must break to its middle,
	// not to the lower cluster's edge
	data:=make([]float32, 0, 64)
	for i:=0; i<32; i++ { data=append(data, 0.2+0.001*float32(i%4)) }
	for i:=0; i<32; i++ { data=append(data, 0.8+0.001*float32(i%4)) }

	threshold:=otsuThreshold(data)
	if threshold<0.3 || threshold>0.7 {
		t.Errorf("bimodal threshold %f; want near the middle of the gap", threshold)
	}
	for i,v:=range data {
		if got:=v>=threshold; got!=(v>0.5) {
			t.Errorf("value %d (%f) classified %v by threshold %f", i, v, got, threshold)
		}
	}
}

func TestOpReduceColors(t *testing.T) {
	data:=make([]float32, 64)
	for i:=range data {
		if i%2==0 { data[i]=0.9 } else { data[i]=0.1 }
	}
	f:=img.NewImageFromNaxisn([]int32{8, 8}, data)

	out, err:=NewOpReduceColors().Apply(f, testContext())
	if err!=nil { t.Fatalf("reduce failed: %s", err.Error()) }
	for i,v:=range out.Data {
		if v!=0 && v!=1 { t.Fatalf("reduced value %d is %f; want 0 or 1", i, v) }
		want:=float32(0)
		if i%2==0 { want=1 }
		if v!=want { t.Errorf("reduced value %d is %f; want %f", i, v, want) }
	}

	// input raster untouched
	if f.Data[0]!=0.9 || f.Data[1]!=0.1 {
		t.Errorf("reduce mutated its input")
	}
}

func TestOpReduceColorsRejectsColor(t *testing.T) {
	f:=img.NewImageFromNaxisn([]int32{2, 2, 3}, nil)
	if _, err:=NewOpReduceColors().Apply(f, testContext()); err==nil {
		t.Errorf("color input did not fail")
	}
}

func TestResolveRequirementsInsertsProviders(t *testing.T) {
	steps, err:=ops.ResolveRequirements([]ops.Operator{NewOpReduceColors()})
	if err!=nil { t.Fatalf("resolve failed: %s", err.Error()) }
	if len(steps)!=2 {
		t.Fatalf("resolved to %d steps; want gray+reduceColors", len(steps))
	}
	if steps[0].GetType()!="gray" || steps[1].GetType()!="reduceColors" {
		t.Errorf("resolved to %s,%s; want gray,reduceColors", steps[0].GetType(), steps[1].GetType())
	}

	// an explicit provider earlier in the chain suppresses insertion
	steps, err=ops.ResolveRequirements([]ops.Operator{NewOpGray(), NewOpReduceColors()})
	if err!=nil { t.Fatalf("resolve failed: %s", err.Error()) }
	if len(steps)!=2 {
		t.Errorf("resolved to %d steps; want no duplicate gray", len(steps))
	}
}
