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


package img

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	_ "image/jpeg" // registers the JPEG decoder with image.Decode
	"os"
	xdraw "golang.org/x/image/draw"
	"github.com/mlnoga/patternscore/internal/stats"
)

// Load reads a PNG or JPEG file into a float32 raster with values in [0,1].
// Grayscale sources yield one channel, color sources three interleaved
// RGB channels
func Load(id int, fileName string) (*Image, error) {
	f, err:=os.Open(fileName)
	if err!=nil { return nil, err }
	defer f.Close()

	src, _, err:=image.Decode(f)
	if err!=nil { return nil, fmt.Errorf("%s: %s", fileName, err.Error()) }

	im:=FromGoImage(src)
	im.ID=id
	im.FileName=fileName
	return im, nil
}

// FromGoImage converts a decoded standard library image into a raster
func FromGoImage(src image.Image) *Image {
	bounds:=src.Bounds()
	w, h:=bounds.Dx(), bounds.Dy()

	switch src.(type) {
	case *image.Gray, *image.Gray16:
		data:=make([]float32, w*h)
		for y:=0; y<h; y++ {
			for x:=0; x<w; x++ {
				g, _, _, _:=src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				data[y*w+x]=float32(g)/65535
			}
		}
		return NewImageFromNaxisn([]int32{int32(w), int32(h)}, data)
	}

	data:=make([]float32, w*h*3)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			r, g, b, _:=src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			offset:=(y*w+x)*3
			data[offset  ]=float32(r)/65535
			data[offset+1]=float32(g)/65535
			data[offset+2]=float32(b)/65535
		}
	}
	return NewImageFromNaxisn([]int32{int32(w), int32(h), 3}, data)
}

// ToGoImage converts the raster into a standard library image for
// encoding or resampling. Values outside [0,1] are clamped
func (im *Image) ToGoImage() image.Image {
	w, h:=int(im.Width()), int(im.Height())
	if im.IsGray() {
		dst:=image.NewGray16(image.Rect(0, 0, w, h))
		for y:=0; y<h; y++ {
			for x:=0; x<w; x++ {
				dst.SetGray16(x, y, color.Gray16{Y: quantize(im.Data[y*w+x])})
			}
		}
		return dst
	}
	dst:=image.NewRGBA64(image.Rect(0, 0, w, h))
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			offset:=(y*w+x)*3
			dst.SetRGBA64(x, y, color.RGBA64{
				R: quantize(im.Data[offset  ]),
				G: quantize(im.Data[offset+1]),
				B: quantize(im.Data[offset+2]),
				A: 65535,
			})
		}
	}
	return dst
}

func quantize(v float32) uint16 {
	if v<=0 { return 0 }
	if v>=1 { return 65535 }
	return uint16(v*65535+0.5)
}

// Save writes the raster as a PNG file
func (im *Image) Save(fileName string) error {
	f, err:=os.Create(fileName)
	if err!=nil { return err }
	defer f.Close()
	return png.Encode(f, im.ToGoImage())
}

// Resize resamples the raster with Catmull-Rom interpolation so its longer
// edge equals maxDim. Images already at or below maxDim are returned
// unchanged
func (im *Image) Resize(maxDim int32) *Image {
	w, h:=im.Width(), im.Height()
	longer:=w
	if h>longer { longer=h }
	if maxDim<=0 || longer<=maxDim { return im }

	newW:=int(int64(w)*int64(maxDim)/int64(longer))
	newH:=int(int64(h)*int64(maxDim)/int64(longer))
	if newW<1 { newW=1 }
	if newH<1 { newH=1 }

	src:=im.ToGoImage()
	var dst xdraw.Image
	if im.IsGray() {
		dst=image.NewGray16(image.Rect(0, 0, newW, newH))
	} else {
		dst=image.NewRGBA64(image.Rect(0, 0, newW, newH))
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	res:=FromGoImage(dst)
	res.ID=im.ID
	res.FileName=im.FileName
	res.Scores=im.Scores
	res.Stats=stats.NewStats(res.Data)
	return res
}
