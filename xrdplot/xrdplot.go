/*
 * xrdplot.go, part of goxrd.
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

/*Package xrdplot draws comparison and overlay figures from diffraction
patterns: a sample against a reference stick pattern, temperature series
with vertical offsets, and Rietveld refinement output. The color cycle and
layout are plain configuration in Options, passed into each call.*/
package xrdplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	xrd "github.com/rmera/goxrd"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Options carries the layout configuration of a figure. There is no shared
//or process-wide plotting state: every call gets its own Options.
type Options struct {
	Title     string
	XMin      float64
	XMax      float64
	YMin      float64
	YMax      float64
	Spacer    float64       //vertical offset between stacked curves
	Colors    []color.Color //the color cycle, indexed per curve
	MaxSticks int           //at most this many reference reflections are drawn
	StickBase float64       //baseline height of the reference stick pattern
}

//DefaultOptions returns the layout used for single-pattern comparisons:
//20-70 degrees, normalized intensities stacked 0.6 apart, the plotutil
//soft color cycle.
func DefaultOptions() *Options {
	return &Options{
		XMin:      20,
		XMax:      70,
		YMin:      0,
		YMax:      2.0,
		Spacer:    0.6,
		Colors:    plotutil.SoftColors,
		MaxSticks: 52,
		StickBase: 0.1,
	}
}

//ThermalOptions returns the layout used for temperature-evolution
//overlays: a wider angular window and a larger spacer, with room under
//zero for a reference stick pattern.
func ThermalOptions() *Options {
	o := DefaultOptions()
	o.XMin = 16
	o.XMax = 60
	o.YMin = -1.5
	o.YMax = 5.5
	o.Spacer = 1.1
	return o
}

func (o *Options) color(i int) color.Color {
	return o.Colors[i%len(o.Colors)]
}

//basicPlot builds the empty figure all plots share: title, angular axis,
//hidden intensity ticks (intensities are in arbitrary units), and a grid.
func basicPlot(o *Options) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = o.Title
	p.X.Label.Text = "2θ (degree)"
	p.Y.Label.Text = "Intensity (a.u.)"
	p.X.Min = o.XMin
	p.X.Max = o.XMax
	p.Y.Min = o.YMin
	p.Y.Max = o.YMax
	p.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{})
	p.Add(plotter.NewGrid())
	return p
}

//curve adds one pattern to the plot as a line, shifted up by off.
func curve(p *plot.Plot, pat *xrd.Pattern, off float64, col color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, pat.Len())
	for i := range pts {
		pts[i].X = pat.TwoTheta[i]
		pts[i].Y = pat.Intensity[i] + off
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = col
	p.Add(l)
	return l, nil
}

//sticks draws a reference pattern as vertical bars rising from a baseline,
//the way database entries are compared against measured patterns.
func sticks(p *plot.Plot, ref *xrd.Pattern, base, scale float64, o *Options) error {
	n := ref.Len()
	if o.MaxSticks > 0 && n > o.MaxSticks {
		n = o.MaxSticks
	}
	for i := 0; i < n; i++ {
		bar := plotter.XYs{
			{X: ref.TwoTheta[i], Y: base},
			{X: ref.TwoTheta[i], Y: base + ref.Intensity[i]*scale},
		}
		l, err := plotter.NewLine(bar)
		if err != nil {
			return err
		}
		l.Color = color.Black
		l.Width = vg.Points(1)
		p.Add(l)
	}
	baseline, err := plotter.NewLine(plotter.XYs{{X: o.XMin, Y: base}, {X: o.XMax, Y: base}})
	if err != nil {
		return err
	}
	baseline.Color = color.Black
	baseline.Width = vg.Points(1)
	p.Add(baseline)
	return nil
}

//annotate places a text label on the figure.
func annotate(p *plot.Plot, x, y float64, text string) error {
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: y}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	p.Add(labels)
	return nil
}

//glyphs draws one marker shape at the given points.
func glyphs(p *plot.Plot, pts plotter.XYs, shape draw.GlyphDrawer) error {
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Color = color.Black
	s.GlyphStyle.Radius = vg.Points(4)
	p.Add(s)
	return nil
}

//Comparison plots a sample pattern above an optional reference stick
//pattern, with optional impurity markers at the given 2θ positions, and
//saves the figure as plotname.png. The sample curve is lifted by
//Options.Spacer so it does not overlap the sticks.
func Comparison(name string, sample *xrd.Pattern, refname string, ref *xrd.Pattern, impurities []float64, o *Options, plotname string) error {
	if sample == nil {
		return fmt.Errorf("xrdplot: given nil sample pattern")
	}
	if o == nil {
		o = DefaultOptions()
	}
	p := basicPlot(o)
	l, err := curve(p, sample, o.Spacer, o.color(0))
	if err != nil {
		return err
	}
	p.Legend.Add(name, l)
	if ref != nil {
		if err := sticks(p, ref, o.StickBase, 0.5, o); err != nil {
			return err
		}
		mid := o.XMin + (o.XMax-o.XMin)*0.4
		if err := annotate(p, mid, o.StickBase+0.3, refname); err != nil {
			return err
		}
	}
	if len(impurities) > 0 {
		pts := make(plotter.XYs, len(impurities))
		for i, x := range impurities {
			pts[i].X = x
			pts[i].Y = o.Spacer + 0.4
		}
		if err := glyphs(p, pts, draw.PyramidGlyph{}); err != nil {
			return err
		}
	}
	return p.Save(10*vg.Inch, 6*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//ThermalEvolution plots a temperature series of patterns stacked by
//Options.Spacer, in ascending temperature order, each labeled with its
//temperature in kelvin (series measured in Celsius, recognized by values
//of 200 or below, are converted). An optional reference stick pattern is
//drawn below zero and optional peak positions are starred on the fifth
//curve, the first one past the usual transition range. The figure is saved
//as plotname.png.
func ThermalEvolution(series map[int]*xrd.Pattern, refname string, ref *xrd.Pattern, peaks []float64, o *Options, plotname string) error {
	if len(series) == 0 {
		return fmt.Errorf("xrdplot: given an empty thermal series")
	}
	if o == nil {
		o = ThermalOptions()
	}
	p := basicPlot(o)
	temps := make([]int, 0, len(series))
	for t := range series {
		temps = append(temps, t)
	}
	sort.Ints(temps)
	for i, t := range temps {
		pat := series[t]
		l, err := curve(p, pat, o.Spacer*float64(i), o.color(i))
		if err != nil {
			return err
		}
		kelvin := t
		if t <= 200 { //a Celsius series
			kelvin = t + 273
		}
		label := fmt.Sprintf("%d K", kelvin)
		p.Legend.Add(label, l)
		if err := annotate(p, o.XMin+2, o.Spacer*float64(i)+0.2, label); err != nil {
			return err
		}
	}
	if len(peaks) > 0 {
		marked := temps[len(temps)-1]
		row := len(temps) - 1
		if len(temps) > 4 {
			marked = temps[4]
			row = 4
		}
		pat := series[marked]
		pts := make(plotter.XYs, 0, len(peaks))
		for _, pos := range peaks {
			i := nearest(pat.TwoTheta, pos)
			pts = append(pts, plotter.XY{X: pat.TwoTheta[i], Y: pat.Intensity[i] + o.Spacer*float64(row) + 0.2})
		}
		if err := glyphs(p, pts, draw.CrossGlyph{}); err != nil {
			return err
		}
	}
	if ref != nil {
		base := -o.Spacer
		if err := sticks(p, ref, base, 1.0, o); err != nil {
			return err
		}
		if err := annotate(p, (o.XMin+o.XMax)/2, base+0.6, refname); err != nil {
			return err
		}
	}
	return p.Save(10*vg.Inch, 8*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//Refinement plots Rietveld refinement output loaded column-major as
//[2θ, observed, calculated, background, residual]: observed points,
//calculated and background curves, and the residual slightly below them.
//The figure is saved as plotname.png.
func Refinement(name string, cols [][]float64, o *Options, plotname string) error {
	if len(cols) < 5 {
		return fmt.Errorf("xrdplot: refinement data needs 5 columns, got %d", len(cols))
	}
	if o == nil {
		o = DefaultOptions()
		o.Spacer = 0.8
	}
	p := basicPlot(o)
	obs := make(plotter.XYs, len(cols[0]))
	for i := range obs {
		obs[i].X = cols[0][i]
		obs[i].Y = cols[1][i] + o.Spacer
	}
	s, err := plotter.NewScatter(obs)
	if err != nil {
		return err
	}
	s.GlyphStyle.Shape = draw.CrossGlyph{}
	s.GlyphStyle.Color = o.color(0)
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s)
	p.Legend.Add(name+" Obs", s)
	for i, part := range []string{"Refinement", "Background", "Residual"} {
		off := o.Spacer
		if part == "Residual" {
			off -= 0.1
		}
		pat := &xrd.Pattern{TwoTheta: cols[0], Intensity: cols[2+i]}
		l, err := curve(p, pat, off, o.color(i+1))
		if err != nil {
			return err
		}
		p.Legend.Add(part, l)
	}
	return p.Save(10*vg.Inch, 6*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//nearest returns the index of the value in axis closest to pos.
func nearest(axis []float64, pos float64) int {
	best := 0
	for i, v := range axis {
		if math.Abs(v-pos) < math.Abs(axis[best]-pos) {
			best = i
		}
	}
	return best
}
