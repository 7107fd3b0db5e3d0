/*
 * textdata.go, part of goxrd.
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

/*Package textdata reads diffraction patterns from delimited text tables:
exported instrument data, reference patterns from the ICSD database, and
refinement output. Columns may be separated by tabs, commas or any
whitespace; the separator is sniffed per line. The package produces the
same axis/intensity/metadata shape as the xrdml reader, so both are
interchangeable inputs to the plotting layer.*/
package textdata

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	xrd "github.com/rmera/goxrd"
	"gonum.org/v1/gonum/floats"
)

//Options controls table loading. The zero value is not useful; start from
//DefaultOptions.
type Options struct {
	Normalize   bool    //divide intensity columns by the maximum of the first one
	ScaleFactor float64 //applied to intensity columns when not normalizing
	Smooth      bool    //median-filter intensities (thermal series only)
	Window      int     //median filter window, forced to the next odd number
	Comment     string  //lines starting with this prefix are skipped
}

//DefaultOptions returns the settings used for most exported XRD tables:
//normalization on, no smoothing, "#" comments.
func DefaultOptions() *Options {
	return &Options{Normalize: true, ScaleFactor: 1.0, Window: 5, Comment: "#"}
}

//Dataset loads the requested zero-based columns from a delimited text file
//and returns them column-major, in the requested order. The first requested
//column is taken as the angular axis; the rest are intensity columns, which
//are normalized by the maximum of the first of them, or multiplied by
//Options.ScaleFactor when normalization is off. A row without all the
//requested columns is an error. Leading non-numeric rows are skipped as
//headers.
func Dataset(filename string, columns []int, o *Options) ([][]float64, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if len(columns) < 2 {
		return nil, &Error{"at least two columns (angle and intensity) must be requested", filename, nil, true}
	}
	maxcol := columns[0]
	for _, c := range columns[1:] {
		if c > maxcol {
			maxcol = c
		}
	}
	if _, err := os.Stat(filename); err != nil {
		return nil, &NotFoundError{filename: filename}
	}
	fin, err := os.Open(filename)
	if err != nil {
		return nil, &Error{"unable to open file: " + err.Error(), filename, nil, true}
	}
	defer fin.Close()
	cols := make([][]float64, len(columns))
	scanner := bufio.NewScanner(fin)
	rows := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || (o.Comment != "" && strings.HasPrefix(line, o.Comment)) {
			continue
		}
		fields := splitRecord(line)
		if len(fields) <= maxcol {
			if rows == 0 { //header row with fewer cells than the data
				continue
			}
			return nil, &Error{fmt.Sprintf("row %d has %d columns, but column %d was requested", rows, len(fields), maxcol), filename, nil, true}
		}
		ok := true
		parsed := make([]float64, len(columns))
		for i, c := range columns {
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				ok = false
				break
			}
			parsed[i] = v
		}
		if !ok {
			if rows == 0 { //tolerate a text header, nothing else
				continue
			}
			return nil, &Error{fmt.Sprintf("non-numeric data in row %d", rows), filename, nil, true}
		}
		for i := range columns {
			cols[i] = append(cols[i], parsed[i])
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{"read failed: " + err.Error(), filename, nil, true}
	}
	if rows == 0 {
		return nil, &Error{"no data rows in file", filename, nil, true}
	}
	if o.Normalize {
		max := floats.Max(cols[1])
		if max > 0 {
			for _, col := range cols[1:] {
				floats.Scale(1/max, col)
			}
		}
	} else if o.ScaleFactor != 1.0 && o.ScaleFactor != 0 { //zero means unset
		for _, col := range cols[1:] {
			floats.Scale(o.ScaleFactor, col)
		}
	}
	return cols, nil
}

//Load reads the first two columns of a delimited text file as a pattern.
func Load(filename string, o *Options) (*xrd.Pattern, error) {
	cols, err := Dataset(filename, []int{0, 1}, o)
	if err != nil {
		return nil, errDecorate(err, "Load")
	}
	return &xrd.Pattern{TwoTheta: cols[0], Intensity: cols[1], Meta: make(xrd.Metadata)}, nil
}

//ThermalSeries loads a temperature series of patterns from files named
//after the given Sprintf pattern with one %d verb, e.g. "%dC.txt". Missing
//temperatures are skipped with a warning, as interrupted measurement runs
//leave holes in the series. Each pattern is normalized and, if requested,
//median-smoothed, and carries its temperature in the metadata.
func ThermalSeries(dir, pattern string, temps []int, o *Options) (map[int]*xrd.Pattern, error) {
	if o == nil {
		o = DefaultOptions()
	}
	series := make(map[int]*xrd.Pattern, len(temps))
	for _, temp := range temps {
		filename := filepath.Join(dir, fmt.Sprintf(pattern, temp))
		if _, err := os.Stat(filename); err != nil {
			log.Printf("goxrd/textdata: warning: file %s not found, temperature %d skipped", filename, temp)
			continue
		}
		p, err := Load(filename, o)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("ThermalSeries: %d", temp))
		}
		if o.Smooth {
			p.Intensity = medianFilter(p.Intensity, o.Window)
		}
		p.Meta[xrd.Temperature] = float64(temp)
		series[temp] = p
	}
	return series, nil
}

//splitRecord splits one table row, preferring tabs, then commas, then any
//whitespace, which covers the separators the exporting programs use.
func splitRecord(line string) []string {
	var fields []string
	switch {
	case strings.Contains(line, "\t"):
		fields = strings.Split(line, "\t")
	case strings.Contains(line, ","):
		fields = strings.Split(line, ",")
	default:
		return strings.Fields(line)
	}
	clean := fields[:0]
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			clean = append(clean, f)
		}
	}
	return clean
}

//medianFilter applies a running median of the given window, forced odd.
//The edges are zero-padded, matching the usual medfilt convention.
func medianFilter(data []float64, window int) []float64 {
	if window <= 1 || len(data) == 0 {
		return data
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2
	out := make([]float64, len(data))
	buf := make([]float64, window)
	for i := range data {
		buf = buf[:0]
		for j := i - half; j <= i+half; j++ {
			if j < 0 || j >= len(data) {
				buf = append(buf, 0)
			} else {
				buf = append(buf, data[j])
			}
		}
		sort.Float64s(buf)
		out[i] = buf[half]
	}
	return out
}

//Errors

//errDecorate is a helper function that asserts that the error implements
//xrd.Error and decorates the error with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(xrd.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for errors in text data tables. It fulfills
//xrd.Error and xrd.DataError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("text data file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *Error) FileName() string { return err.filename }

func (err *Error) Format() string { return "text" }

func (err *Error) Critical() bool { return err.critical }

//NotFoundError reports a table path that does not exist.
type NotFoundError struct {
	filename string
	deco     []string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("text data file not found: %s", err.filename)
}

//Decorate adds new information to the error.
func (err *NotFoundError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *NotFoundError) FileName() string { return err.filename }

func (err *NotFoundError) Format() string { return "text" }

func (err *NotFoundError) Critical() bool { return true }
