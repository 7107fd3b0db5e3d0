/*
 * xrd_test.go, part of goxrd.
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
 */

package xrd

import (
	"fmt"
	"math"
	"testing"
)

//TestNormalize checks scaling, the guard for degenerate scans, and that
//normalizing twice is the same as normalizing once.
func TestNormalize(Te *testing.T) {
	fmt.Println("Normalization test!")
	ints := []float64{1, 2, 3, 4, 5}
	Normalize(ints)
	want := []float64{0.2, 0.4, 0.6, 0.8, 1.0}
	for i := range want {
		if math.Abs(ints[i]-want[i]) > 1e-12 {
			Te.Errorf("point %d: got %v want %v", i, ints[i], want[i])
		}
	}
	//idempotence: the maximum is already 1.0
	again := append([]float64{}, ints...)
	Normalize(again)
	for i := range ints {
		if again[i] != ints[i] {
			Te.Errorf("normalization is not idempotent at %d: %v vs %v", i, again[i], ints[i])
		}
	}
	//guard: non-positive maxima leave the data untouched
	for _, degenerate := range [][]float64{{0, 0, 0}, {-3, -1, -2}, {}} {
		orig := append([]float64{}, degenerate...)
		Normalize(degenerate)
		for i := range orig {
			if degenerate[i] != orig[i] {
				Te.Errorf("degenerate scan was rescaled: %v", degenerate)
			}
		}
	}
}

//TestPattern checks the matched-length invariant and the metadata accessors.
func TestPattern(Te *testing.T) {
	if _, err := NewPattern([]float64{1, 2}, []float64{1}, nil); err == nil {
		Te.Error("mismatched lengths accepted")
	}
	meta := Metadata{SampleID: "LLZTO", Temperature: 301.0}
	p, err := NewPattern([]float64{10, 20}, []float64{1, 2}, meta)
	if err != nil {
		Te.Fatal(err)
	}
	if p.Len() != 2 {
		Te.Errorf("length: got %d", p.Len())
	}
	if id, ok := p.Meta.String(SampleID); !ok || id != "LLZTO" {
		Te.Errorf("string accessor: got %q %v", id, ok)
	}
	if t, ok := p.Meta.Float(Temperature); !ok || t != 301.0 {
		Te.Errorf("float accessor: got %v %v", t, ok)
	}
	//accessors on absent fields and wrongly typed fields
	if _, ok := p.Meta.Float(Voltage); ok {
		Te.Error("absent field reported present")
	}
	if _, ok := p.Meta.Float(SampleID); ok {
		Te.Error("string field read as float")
	}
}
