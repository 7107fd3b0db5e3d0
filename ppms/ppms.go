/*
 * ppms.go, part of goxrd.
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

/*Package ppms reads thermal-conductivity data from Quantum Design PPMS
(Physical Property Measurement System) TTO .dat files. The instrument
writes a fixed 27-line header followed by whitespace-separated columns;
columns 6 to 8 hold the sample temperature, the thermal conductivity and
its error estimate.*/
package ppms

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

//headerLines is the size of the fixed instrument header of a TTO file.
const headerLines = 27

//minColumns is the smallest row the TTO writes; the columns of interest
//are within the first eight.
const minColumns = 8

//TTO holds the processed thermal-transport series of one file. The three
//slices always have the same length.
type TTO struct {
	Temperature  []float64 //K
	Conductivity []float64 //W/(K m)
	Err          []float64 //error estimate on the conductivity
}

//Len returns the number of points in the series.
func (T *TTO) Len() int { return len(T.Temperature) }

//ReadTTO reads the TTO file in filename. For each value in drop, the data
//point with the nearest temperature is removed, which is how obviously bad
//stabilization points are excluded from a run. Temperatures at or below
//0 K are kept but warned about, as they indicate a unit mixup upstream.
func ReadTTO(filename string, drop []float64) (*TTO, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, &NotFoundError{filename: filename}
	}
	fin, err := os.Open(filename)
	if err != nil {
		return nil, &Error{"unable to open file: " + err.Error(), filename, nil, true}
	}
	defer fin.Close()
	data := new(TTO)
	scanner := bufio.NewScanner(fin)
	line := 0
	for scanner.Scan() {
		line++
		if line <= headerLines {
			continue
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < minColumns {
			return nil, &Error{fmt.Sprintf("row %d has %d columns, expected at least %d", line, len(fields), minColumns), filename, nil, true}
		}
		var row [3]float64
		for i, c := range []int{5, 6, 7} {
			row[i], err = strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, &Error{fmt.Sprintf("non-numeric value %q in row %d", fields[c], line), filename, nil, true}
			}
		}
		if row[0] <= 0 {
			log.Printf("goxrd/ppms: warning: %s row %d has temperature %g K", filename, line, row[0])
		}
		data.Temperature = append(data.Temperature, row[0])
		data.Conductivity = append(data.Conductivity, row[1])
		data.Err = append(data.Err, row[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{"read failed: " + err.Error(), filename, nil, true}
	}
	if data.Len() == 0 {
		return nil, &Error{"no data rows after the instrument header", filename, nil, true}
	}
	data.dropNearest(drop)
	return data, nil
}

//dropNearest removes, for each requested temperature, the point closest
//to it. Indexes are collected first and removed back to front so earlier
//removals don't shift later ones.
func (T *TTO) dropNearest(drop []float64) {
	if len(drop) == 0 {
		return
	}
	marked := make(map[int]bool, len(drop))
	for _, want := range drop {
		best := 0
		for i, t := range T.Temperature {
			if math.Abs(t-want) < math.Abs(T.Temperature[best]-want) {
				best = i
			}
		}
		log.Printf("goxrd/ppms: data of T=%f is dropped", T.Temperature[best])
		marked[best] = true
	}
	indexes := make([]int, 0, len(marked))
	for i := range marked {
		indexes = append(indexes, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(indexes)))
	for _, i := range indexes {
		T.Temperature = append(T.Temperature[:i], T.Temperature[i+1:]...)
		T.Conductivity = append(T.Conductivity[:i], T.Conductivity[i+1:]...)
		T.Err = append(T.Err[:i], T.Err[i+1:]...)
	}
}

//Errors

//Error is the general structure for errors in TTO files. It fulfills
//xrd.Error and xrd.DataError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("tto file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *Error) FileName() string { return err.filename }

func (err *Error) Format() string { return "tto" }

func (err *Error) Critical() bool { return err.critical }

//NotFoundError reports a TTO path that does not exist.
type NotFoundError struct {
	filename string
	deco     []string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("tto file not found: %s", err.filename)
}

//Decorate adds new information to the error.
func (err *NotFoundError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *NotFoundError) FileName() string { return err.filename }

func (err *NotFoundError) Format() string { return "tto" }

func (err *NotFoundError) Critical() bool { return true }
