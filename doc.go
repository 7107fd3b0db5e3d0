/*
 * doc.go, part of goxrd.
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

/*Package xrd is the main package of the goXRD library. It provides the shared
pattern and metadata structures used by the file readers and the plotting
routines, together with the error interfaces all subpackages implement.



	**goXRD Capabilities**


    Reads Panalytical XRDML measurement files, plain and gzipped, recovering
	the angular axis, the intensity series and the instrument metadata of
	every scan (subpackage xrdml).

    Reads whitespace/CSV-delimited diffraction tables, including
	temperature series of thermal measurements, with optional median
	smoothing (subpackage textdata).

    Reads Quantum Design PPMS thermal-transport (TTO) data files
	(subpackage ppms).

    Plots pattern comparisons against reference stick patterns, and
	temperature-evolution overlays with vertical offsets, and exports
	figures with journal-publication styling (subpackage xrdplot).

The library only reads instrument output; it does not perform peak fitting,
Rietveld refinement or indexing, and it does not write any of the formats
it reads.
*/
package xrd
