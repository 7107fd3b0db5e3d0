/*
 * xrd.go, part of goxrd.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * Goxrd is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package xrd

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

//Keys for the metadata fields the readers can recover. Not every file
//contains every field; a missing field is simply absent from the map.
const (
	SampleID      = "sample_id"
	StartTime     = "start_time"
	EndTime       = "end_time"
	WavelengthKa1 = "wavelength_ka1"
	WavelengthKa2 = "wavelength_ka2"
	WavelengthKb  = "wavelength_kb"
	Ka2Ka1Ratio   = "ka2_ka1_ratio"
	TubeType      = "tube_type"
	Voltage       = "voltage"
	Current       = "current"
	GonioRadius   = "gonio_radius"
	Temperature   = "temperature"
)

//Metadata maps field names to scalar values (string or float64).
//Optional fields that the source file does not carry are not present
//in the map, there are no sentinel values.
type Metadata map[string]interface{}

//Float returns the value for key as a float64 and whether the key
//is present and holds a float.
func (M Metadata) Float(key string) (float64, bool) {
	v, ok := M[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

//String returns the value for key as a string and whether the key
//is present and holds a string.
func (M Metadata) String(key string) (string, bool) {
	v, ok := M[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

//Pattern represents one diffraction pattern: an angular axis (2theta,
//in degrees), the measured intensities, and the metadata recovered from
//the source file. TwoTheta and Intensity always have the same length.
type Pattern struct {
	TwoTheta  []float64
	Intensity []float64
	Meta      Metadata
}

//NewPattern builds a Pattern after checking that both series have
//matching lengths.
func NewPattern(twotheta, intensity []float64, meta Metadata) (*Pattern, error) {
	if len(twotheta) != len(intensity) {
		return nil, fmt.Errorf("goxrd: mismatched series lengths: %d angular values, %d intensities", len(twotheta), len(intensity))
	}
	return &Pattern{TwoTheta: twotheta, Intensity: intensity, Meta: meta}, nil
}

//Len returns the number of points in the pattern.
func (P *Pattern) Len() int {
	return len(P.Intensity)
}

//Normalize scales intensity in place so its maximum becomes 1.0 and
//returns the slice. If the maximum is not strictly positive (degenerate
//all-zero or all-negative data) the values are returned unscaled, so
//normalizing an already normalized series is a no-op.
func Normalize(intensity []float64) []float64 {
	if len(intensity) == 0 {
		return intensity
	}
	max := floats.Max(intensity)
	if max <= 0 {
		return intensity
	}
	floats.Scale(1/max, intensity)
	return intensity
}
