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


// Package img holds the in-memory raster representation shared by all
// processing operators, plus loading and saving.
package img

import (
	"fmt"
	"strings"
	"github.com/mlnoga/patternscore/internal/stats"
)

// An image as a float32 raster with pixel values in [0,1].
type Image struct {
	ID       int         // Sequential ID number, for log output. Counted upwards from 0
	FileName string      // Original file name, if any, for log output.

	Naxisn []int32       // Axis dimensions. Most quickly varying dimension first (i.e. X,Y[,C])
	Pixels int32         // Number of values in the image. Product of Naxisn[]

	Data   []float32     // The image data, row-major. Channels interleaved if present

	Stats  *stats.Stats  // Basic image statistics: min, mean, max

	Scores map[string]float32 // Named analysis scores attached by scoring operators
}

// Creates an image from given naxisn. Data is not copied, allocated if nil. naxisn is deep copied
func NewImageFromNaxisn(naxisn []int32, data []float32) *Image {
	numPixels:=int32(1)
	for _,naxis:=range(naxisn) {
		numPixels*=naxis
	}
	if data==nil {
		data=make([]float32, numPixels)
	}
	return &Image{
		ID:       0,
		FileName: "",
		Naxisn:   append([]int32(nil), naxisn...), // clone slice
		Pixels:   numPixels,
		Data:     data,
		Stats:    stats.NewStats(data),
		Scores:   nil,
	}
}

// Creates an image with the shape and metadata of the given image.
// A new data array is allocated; scores are cloned, not shared
func NewImageFromImage(im *Image) *Image {
	data:=make([]float32, im.Pixels)
	var scores map[string]float32
	if im.Scores!=nil {
		scores=make(map[string]float32, len(im.Scores))
		for k,v:=range im.Scores { scores[k]=v }
	}
	return &Image{
		ID:       im.ID,
		FileName: im.FileName,
		Naxisn:   append([]int32(nil), im.Naxisn...), // clone slice
		Pixels:   im.Pixels,
		Data:     data,
		Stats:    stats.NewStats(data),
		Scores:   scores,
	}
}

// Width of the image in pixels, i.e. the most quickly varying dimension
func (im *Image) Width() int32 {
	if len(im.Naxisn)==0 { return 0 }
	return im.Naxisn[0]
}

// Height of the image in pixels
func (im *Image) Height() int32 {
	if len(im.Naxisn)<2 { return 1 }
	return im.Naxisn[1]
}

// Number of color channels. Grayscale images have one
func (im *Image) Channels() int32 {
	if len(im.Naxisn)<3 { return 1 }
	return im.Naxisn[2]
}

// IsGray is true if the image has a single color channel
func (im *Image) IsGray() bool {
	return im.Channels()==1
}

// SetScore attaches a named analysis score, allocating the map on first use
func (im *Image) SetScore(name string, value float32) {
	if im.Scores==nil { im.Scores=make(map[string]float32) }
	im.Scores[name]=value
}

// DimensionsToString returns a "WxHxC" display string of the given dimensions
func DimensionsToString(naxisn []int32) string {
	b:=strings.Builder{}
	for i,naxis:=range(naxisn) {
		if i>0 {
			fmt.Fprintf(&b, "x%d", naxis)
		} else {
			fmt.Fprintf(&b, "%d", naxis)
		}
	}
	return b.String()
}
