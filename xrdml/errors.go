/*
 * errors.go, part of goxrd.
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

package xrdml

import (
	"fmt"

	xrd "github.com/rmera/goxrd"
)

//Errors

//errDecorate is a helper function that asserts that the error implements
//xrd.Error and decorates the error with the caller's name before returning it.
//If used with an error that does not implement xrd.Error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(xrd.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for format errors in XRDML files. It fulfills
//xrd.Error and xrd.DataError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("xrdml file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing operation was associated.
func (err *Error) FileName() string { return err.filename }

//Format returns the format of the file (always "xrdml") associated to the error.
func (err *Error) Format() string { return "xrdml" }

//Critical returns true if the error is critical, false otherwise.
func (err *Error) Critical() bool { return err.critical }

const (
	UnableToOpen  = "unable to open file"
	InvalidXML    = "invalid XML"
	NotXRDML      = "not a valid diffraction document"
	NoDataPoints  = "no data points in scan"
	NoPositions   = "no positions element in data points"
	NoScanRange   = "start or end position not found"
	NoIntensities = "intensity data could not be located"
	WrongNumber   = "malformed numeric field"
)

//NotFoundError reports a file path that does not exist. It is returned
//before any parse is attempted.
type NotFoundError struct {
	filename string
	deco     []string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("xrdml file not found: %s", err.filename)
}

//Decorate adds new information to the error.
func (err *NotFoundError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *NotFoundError) FileName() string { return err.filename }

func (err *NotFoundError) Format() string { return "xrdml" }

func (err *NotFoundError) Critical() bool { return true }

//IndexError reports a scan index outside the valid range of a file.
//Negative and overflowing indexes are rejected identically.
type IndexError struct {
	Index     int
	Available int //the number of scans in the file, so valid indexes are 0..Available-1.
	deco      []string
}

func (err *IndexError) Error() string {
	return fmt.Sprintf("scan index %d out of range. Available scans: %d", err.Index, err.Available)
}

//Decorate adds new information to the error.
func (err *IndexError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
