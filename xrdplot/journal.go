/*
 * journal.go, part of goxrd.
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

package xrdplot

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

//Journal restyles a plot for publication: 11 pt axis labels and title,
//10 pt legend, 1.5 pt axis and tick lines, short ticks, white background.
func Journal(p *plot.Plot) {
	p.BackgroundColor = color.White
	p.Title.TextStyle.Font.Size = vg.Points(11)
	p.Legend.TextStyle.Font.Size = vg.Points(10)
	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.LineStyle.Width = vg.Points(1.5)
		axis.Label.TextStyle.Font.Size = vg.Points(11)
		axis.Tick.Label.Font.Size = vg.Points(11)
		axis.Tick.LineStyle.Width = vg.Points(1.5)
		axis.Tick.Length = vg.Points(4)
	}
}

//SaveJournal renders the plot at the given size and resolution and writes
//it as a PNG, the combination most journals accept for line art. A
//filename without extension gets ".png" appended. Zero width, height or
//dpi fall back to 4x3 inches at 600 dpi.
func SaveJournal(p *plot.Plot, width, height vg.Length, dpi int, filename string) error {
	if width <= 0 {
		width = 4 * vg.Inch
	}
	if height <= 0 {
		height = 3 * vg.Inch
	}
	if dpi <= 0 {
		dpi = 600
	}
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	fout, err := os.Create(filename)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(fout); err != nil {
		fout.Close()
		return err
	}
	return fout.Close()
}
