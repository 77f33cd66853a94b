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


// Package spectrum builds frequency-domain magnitude spectra of grayscale
// rasters, center-shifted so low frequencies sit at the geometric center
// and normalized into [0,1].
package spectrum

import (
	"fmt"
	"math"
	"gonum.org/v1/gonum/dsp/fourier"
	"github.com/mlnoga/patternscore/internal/stats"
)

// Magnitude computes the centered log-magnitude spectrum of a grayscale
// raster in row-major layout with the given line width. The output is a
// freshly allocated array of the same shape with values in [0,1]; a
// degenerate all-equal magnitude maps to all ones. Fails if the data shape
// and width disagree
func Magnitude(data []float32, width int32) ([]float32, error) {
	w:=int(width)
	if w<=0 || len(data)==0 || len(data)%w!=0 {
		return nil, fmt.Errorf("invalid raster shape: %d values for width %d", len(data), w)
	}
	h:=len(data)/w

	buf:=make([]complex128, len(data))
	for i,v:=range data {
		buf[i]=complex(float64(v), 0)
	}

	// 2D transform as a row pass followed by a column pass
	rowFFT:=fourier.NewCmplxFFT(w)
	tmp:=make([]complex128, w)
	for y:=0; y<h; y++ {
		row:=buf[y*w:(y+1)*w]
		rowFFT.Coefficients(tmp, row)
		copy(row, tmp)
	}

	colFFT:=fourier.NewCmplxFFT(h)
	col, dst:=make([]complex128, h), make([]complex128, h)
	for x:=0; x<w; x++ {
		for y:=0; y<h; y++ { col[y]=buf[y*w+x] }
		colFFT.Coefficients(dst, col)
		for y:=0; y<h; y++ { buf[y*w+x]=dst[y] }
	}

	// shift the zero-frequency bin to the center, compress with log(1+m)
	out:=make([]float32, len(data))
	for y:=0; y<h; y++ {
		sy:=(y-h/2+h)%h
		for x:=0; x<w; x++ {
			sx:=(x-w/2+w)%w
			c:=buf[sy*w+sx]
			m:=math.Hypot(real(c), imag(c))
			out[y*w+x]=float32(math.Log1p(m))
		}
	}
	return stats.Normalize(out), nil
}
