/*
 * textdata_test.go, part of goxrd.
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

package textdata

import (
	"fmt"
	"math"
	"testing"

	xrd "github.com/rmera/goxrd"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

//TestDataset loads a comma-separated reference table with a text header,
//selecting and scaling columns the way ICSD stick patterns are prepared
//for plotting.
func TestDataset(Te *testing.T) {
	fmt.Println("Delimited dataset test!")
	cols, err := Dataset("test/ref.csv", []int{0, 1}, &Options{ScaleFactor: 0.01})
	if err != nil {
		Te.Fatal(err)
	}
	if len(cols) != 2 || len(cols[0]) != 3 {
		Te.Fatalf("expected 2 columns with 3 rows, got %d columns", len(cols))
	}
	if !closeTo(cols[0][0], 16.7) || !closeTo(cols[1][0], 1.0) || !closeTo(cols[1][1], 0.6) {
		Te.Errorf("scaled reference: got %v", cols)
	}
	//same file, normalized; the maximum intensity becomes 1.0
	cols, err = Dataset("test/ref.csv", []int{0, 1, 2}, DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if !closeTo(cols[1][0], 1.0) || !closeTo(cols[1][2], 0.8) {
		Te.Errorf("normalized reference: got %v", cols[1])
	}
	//the d-spacing column rides along, normalized by the same maximum
	if !closeTo(cols[2][0], 0.053) {
		Te.Errorf("secondary column: got %v", cols[2])
	}
}

//TestSeparators checks that tab and whitespace tables parse identically.
func TestSeparators(Te *testing.T) {
	tabbed, err := Load("test/50C.txt", &Options{ScaleFactor: 1.0})
	if err != nil {
		Te.Fatal(err)
	}
	spaced, err := Load("test/100C.txt", &Options{ScaleFactor: 1.0})
	if err != nil {
		Te.Fatal(err)
	}
	if tabbed.Len() != 5 || spaced.Len() != 5 {
		Te.Errorf("lengths: %d %d", tabbed.Len(), spaced.Len())
	}
	if !closeTo(tabbed.TwoTheta[2], 15.0) || !closeTo(tabbed.Intensity[2], 10.0) {
		Te.Errorf("tabbed table: got %v %v", tabbed.TwoTheta, tabbed.Intensity)
	}
}

//TestThermalSeries loads a temperature series, with one temperature
//missing on purpose, and checks normalization, smoothing and the
//temperature metadata.
func TestThermalSeries(Te *testing.T) {
	fmt.Println("Thermal series test!")
	o := DefaultOptions()
	o.Smooth = true
	o.Window = 3
	series, err := ThermalSeries("test", "%dC.txt", []int{50, 100, 150}, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(series) != 2 {
		Te.Fatalf("expected 2 loaded temperatures (150 is missing), got %d", len(series))
	}
	p := series[50]
	if p == nil {
		Te.Fatal("50C pattern missing")
	}
	if t, ok := p.Meta.Float(xrd.Temperature); !ok || t != 50.0 {
		Te.Errorf("temperature metadata: got %v %v", t, ok)
	}
	//raw normalized intensities are 0.1 0.2 1.0 0.4 0.2; a window-3 median
	//with zero padding gives 0.1 0.2 0.4 0.4 0.2
	want := []float64{0.1, 0.2, 0.4, 0.4, 0.2}
	for i := range want {
		if !closeTo(p.Intensity[i], want[i]) {
			Te.Errorf("smoothed point %d: got %v want %v", i, p.Intensity[i], want[i])
		}
	}
	fmt.Println("smoothed 50C:", p.Intensity)
}

//TestMedianFilter checks the zero-padded running median directly.
func TestMedianFilter(Te *testing.T) {
	got := medianFilter([]float64{1, 9, 1, 1, 1}, 3)
	for i, v := range got {
		if v != 1 {
			Te.Errorf("spike survived the median at %d: %v", i, got)
		}
	}
	//an even window is bumped to the next odd one rather than rejected
	got = medianFilter([]float64{1, 9, 1, 1, 1}, 4)
	if len(got) != 5 {
		Te.Errorf("even window: got %v", got)
	}
}

//TestTextErrors checks the failure taxonomy of the table loader.
func TestTextErrors(Te *testing.T) {
	_, err := Dataset("test/absent.txt", []int{0, 1}, nil)
	if _, ok := err.(*NotFoundError); !ok {
		Te.Errorf("missing file: expected *NotFoundError, got %T %v", err, err)
	}
	_, err = Dataset("test/ref.csv", []int{0, 9}, nil)
	if e, ok := err.(*Error); !ok {
		Te.Errorf("out-of-range column: expected *Error, got %T %v", err, err)
	} else {
		fmt.Println("column diagnostic:", e)
	}
	_, err = Dataset("test/ref.csv", []int{0}, nil)
	if err == nil {
		Te.Error("single-column request accepted")
	}
}
