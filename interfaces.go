/*
 * interfaces.go, part of goxrd.
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

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Allows adding information to the error as it is passed up. Each call returns the current "decoration" slice of strings. If passed an empty string, it should just return the current value, not add the empty string to the slice. Each element of the slice should be a function in the calling stack, optionally followed by extra information, as in "FunctionName: Extra info".
}

// DataError is the interface for errors produced while reading a data file.
type DataError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// PatternSource is implemented by every reader that can produce diffraction
// patterns, one per scan. The plotting layer takes its input through this
// interface, so patterns from instrument files and from plain-text tables
// are interchangeable.
type PatternSource interface {
	//NScans returns the number of scans available.
	NScans() int
	//Pattern returns the pattern for the given zero-based scan index,
	//optionally with its intensities normalized to a maximum of 1.0.
	Pattern(index int, normalize bool) (*Pattern, error)
}
