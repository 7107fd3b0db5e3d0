/*
 * xrdml.go, part of goxrd.
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

/*Package xrdml reads Panalytical .xrdml X-ray diffraction files.

An .xrdml file is an XML document holding one or more xrdMeasurement blocks,
each with one or more scans. Files written by different firmware versions
inconsistently declare the XML namespace and name the intensity array either
"intensities" or "counts"; this reader tolerates both. The angular axis is
not stored per point: it is reconstructed as a linearly spaced sequence
between the declared start and end positions, one value per intensity.

Files compressed with gzip (name ending in .gz) are read transparently.
*/
package xrdml

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/klauspost/compress/gzip"
	xrd "github.com/rmera/goxrd"
	"golang.org/x/net/html/charset"
	"gonum.org/v1/gonum/floats"
)

//DefaultGonioRadius is the goniometer radius, in mm, reported when the
//incidentBeamPath/radius element is missing or unreadable. It matches the
//geometry of the Empyrean/X'Pert goniometers; check it against your own
//instrument before relying on it downstream.
const DefaultGonioRadius = 300.0

//XRDML represents one parsed .xrdml file. The XML tree is parsed and the
//scans indexed once, when the object is created; after that the object is
//never mutated, so it can be read concurrently.
type XRDML struct {
	filename string
	doc      *etree.Document
	root     *etree.Element
	ns       string //namespace prefix of the document, empty when unqualified
	scans    []*etree.Element
}

//New opens and parses the .xrdml file in filename. It fails without
//attempting a parse if the file does not exist. The namespace prefix is
//resolved once from the root tag and used for every later lookup; a file
//where no comment element can be found, qualified or not, is rejected as
//not being a diffraction document.
func New(filename string) (*XRDML, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, &NotFoundError{filename: filename}
	}
	fin, err := os.Open(filename)
	if err != nil {
		return nil, &Error{UnableToOpen + ": " + err.Error(), filename, nil, true}
	}
	defer fin.Close()
	var r io.Reader = fin
	if strings.HasSuffix(strings.ToLower(filename), ".gz") {
		gz, err := gzip.NewReader(fin)
		if err != nil {
			return nil, &Error{UnableToOpen + ": " + err.Error(), filename, nil, true}
		}
		defer gz.Close()
		r = gz
	}
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &Error{fmt.Sprintf("%s: %s", InvalidXML, err.Error()), filename, nil, true}
	}
	root := doc.Root()
	if root == nil {
		return nil, &Error{InvalidXML + ": no root element", filename, nil, true}
	}
	X := &XRDML{filename: filename, doc: doc, root: root, ns: root.Space}
	//Some firmware versions write a namespace prefix, others don't, so the
	//validation marker is looked up both ways before giving up.
	if root.SelectElement(X.tag("comment")) == nil {
		if root.SelectElement("comment") == nil {
			X.ns = ""
			return nil, &Error{NotXRDML, filename, nil, true}
		}
		X.ns = ""
	}
	//A file can hold several measurement blocks (e.g. multi-range scans).
	//Their scans are flattened into one index, in document order.
	for _, m := range root.SelectElements(X.tag("xrdMeasurement")) {
		X.scans = append(X.scans, m.SelectElements(X.tag("scan"))...)
	}
	return X, nil
}

//tag qualifies an element name with the namespace prefix resolved at open
//time, or returns it unchanged for unqualified documents.
func (X *XRDML) tag(name string) string {
	if X.ns == "" {
		return name
	}
	return X.ns + ":" + name
}

//FileName returns the name of the file read by the object.
func (X *XRDML) FileName() string { return X.filename }

//Format returns "xrdml".
func (X *XRDML) Format() string { return "xrdml" }

//NScans returns the number of scans in the file, summed over all its
//measurement blocks.
func (X *XRDML) NScans() int { return len(X.scans) }

func (X *XRDML) scan(index int) (*etree.Element, error) {
	if index < 0 || index >= len(X.scans) {
		return nil, &IndexError{Index: index, Available: len(X.scans)}
	}
	return X.scans[index], nil
}

//Series returns the angular axis (2theta, degrees) and the intensities of
//the scan at the given zero-based index. Both slices always have the same
//length. If normalize is true the intensities are scaled so their maximum
//becomes 1.0, unless the maximum is not strictly positive, in which case
//they are returned unscaled. When a file carries both an "intensities" and
//a "counts" element, "intensities" wins.
func (X *XRDML) Series(index int, normalize bool) ([]float64, []float64, error) {
	scan, err := X.scan(index)
	if err != nil {
		return nil, nil, errDecorate(err, "Series")
	}
	dataPoints := scan.SelectElement(X.tag("dataPoints"))
	if dataPoints == nil {
		return nil, nil, &Error{NoDataPoints, X.filename, nil, true}
	}
	positions := dataPoints.SelectElement(X.tag("positions"))
	if positions == nil {
		return nil, nil, &Error{NoPositions, X.filename, nil, true}
	}
	start, err := X.reqFloat(positions, "startPosition")
	if err != nil {
		return nil, nil, errDecorate(err, "Series")
	}
	end, err := X.reqFloat(positions, "endPosition")
	if err != nil {
		return nil, nil, errDecorate(err, "Series")
	}
	var intensities []float64
	for _, name := range []string{"intensities", "counts"} {
		e := dataPoints.SelectElement(X.tag(name))
		if e == nil || strings.TrimSpace(e.Text()) == "" {
			continue
		}
		intensities, err = parseFloats(e.Text())
		if err != nil {
			return nil, nil, &Error{fmt.Sprintf("%s in %s: %s", WrongNumber, name, err.Error()), X.filename, nil, true}
		}
		break
	}
	if intensities == nil {
		return nil, nil, &Error{NoIntensities, X.filename, nil, true}
	}
	twotheta := spaced(start, end, len(intensities))
	if normalize {
		xrd.Normalize(intensities)
	}
	return twotheta, intensities, nil
}

//Metadata returns the metadata record for the scan at the given zero-based
//index. Every field is optional: a field whose source element is missing is
//simply absent from the returned map, except for the goniometer radius,
//which falls back to DefaultGonioRadius and is therefore always present.
func (X *XRDML) Metadata(index int) (xrd.Metadata, error) {
	scan, err := X.scan(index)
	if err != nil {
		return nil, errDecorate(err, "Metadata")
	}
	meta := make(xrd.Metadata)
	if sample := X.root.SelectElement(X.tag("sample")); sample != nil {
		X.optString(meta, xrd.SampleID, sample, "id")
	}
	if m := X.root.SelectElement(X.tag("xrdMeasurement")); m != nil {
		if w := m.SelectElement(X.tag("usedWavelength")); w != nil {
			X.optFloat(meta, xrd.WavelengthKa1, w, "kAlpha1")
			X.optFloat(meta, xrd.WavelengthKa2, w, "kAlpha2")
			X.optFloat(meta, xrd.WavelengthKb, w, "kBeta")
			X.optFloat(meta, xrd.Ka2Ka1Ratio, w, "ratioKAlpha2KAlpha1")
		}
		X.beamPath(meta, m)
	}
	if header := scan.SelectElement(X.tag("header")); header != nil {
		X.optString(meta, xrd.StartTime, header, "startTimeStamp")
		X.optString(meta, xrd.EndTime, header, "endTimeStamp")
	}
	X.temperature(meta, scan)
	return meta, nil
}

//beamPath recovers the goniometer radius and the X-ray tube settings from
//the incidentBeamPath block. Any failure to resolve the radius, whether the
//element is missing or its text unparseable, yields DefaultGonioRadius
//rather than an omission: downstream angle corrections rely on the radius
//always being present.
func (X *XRDML) beamPath(meta xrd.Metadata, measurement *etree.Element) {
	radius := DefaultGonioRadius
	if beam := measurement.SelectElement(X.tag("incidentBeamPath")); beam != nil {
		if r := beam.SelectElement(X.tag("radius")); r != nil {
			if v, err := strconv.ParseFloat(strings.TrimSpace(r.Text()), 64); err == nil {
				radius = v
			}
		}
		if tube := beam.SelectElement(X.tag("xRayTube")); tube != nil {
			if name := tube.SelectAttrValue("name", ""); name != "" {
				meta[xrd.TubeType] = name
			}
			X.optString(meta, xrd.Voltage, tube, "tension")
			X.optString(meta, xrd.Current, tube, "current")
		}
	}
	meta[xrd.GonioRadius] = radius
}

//temperature recovers the sample temperature from a nonAmbientPoints block
//of type "Temperature". The instrument logs one value per data bin; the
//last one, active at scan completion, is taken as representative.
func (X *XRDML) temperature(meta xrd.Metadata, scan *etree.Element) {
	conditions := scan.SelectElement(X.tag("nonAmbientPoints"))
	if conditions == nil || conditions.SelectAttrValue("type", "") != "Temperature" {
		return
	}
	values := conditions.SelectElement(X.tag("nonAmbientValues"))
	if values == nil {
		return
	}
	fields := strings.Fields(values.Text())
	if len(fields) == 0 {
		return
	}
	if t, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
		meta[xrd.Temperature] = t
	}
}

//Pattern returns the scan at the given zero-based index as an xrd.Pattern,
//series plus metadata.
func (X *XRDML) Pattern(index int, normalize bool) (*xrd.Pattern, error) {
	twotheta, intensities, err := X.Series(index, normalize)
	if err != nil {
		return nil, errDecorate(err, "Pattern")
	}
	meta, err := X.Metadata(index)
	if err != nil {
		return nil, errDecorate(err, "Pattern")
	}
	return &xrd.Pattern{TwoTheta: twotheta, Intensity: intensities, Meta: meta}, nil
}

//ReadAll reads every scan in the file, in document order.
func (X *XRDML) ReadAll(normalize bool) ([]*xrd.Pattern, error) {
	patterns := make([]*xrd.Pattern, 0, len(X.scans))
	for i := 0; i < len(X.scans); i++ {
		p, err := X.Pattern(i, normalize)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("ReadAll: scan %d", i))
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func (X *XRDML) String() string {
	return fmt.Sprintf("XRDML('%s', scans=%d)", X.filename, len(X.scans))
}

//Read is a one-shot convenience over New: it opens filename and returns the
//axis, intensities and metadata of the scan at the given index.
func Read(filename string, index int, normalize bool) ([]float64, []float64, xrd.Metadata, error) {
	X, err := New(filename)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "Read")
	}
	twotheta, intensities, err := X.Series(index, normalize)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "Read")
	}
	meta, err := X.Metadata(index)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "Read")
	}
	return twotheta, intensities, meta, nil
}

//reqFloat parses the text of a required child element as a float64.
func (X *XRDML) reqFloat(parent *etree.Element, name string) (float64, error) {
	e := parent.SelectElement(X.tag(name))
	if e == nil || strings.TrimSpace(e.Text()) == "" {
		return 0, &Error{fmt.Sprintf("%s: missing %s", NoScanRange, name), X.filename, nil, true}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(e.Text()), 64)
	if err != nil {
		return 0, &Error{fmt.Sprintf("%s in %s: %s", WrongNumber, name, err.Error()), X.filename, nil, true}
	}
	return v, nil
}

//optFloat parses the text of an optional child element into meta[key],
//silently skipping the field when the element, its text, or a parseable
//number is missing.
func (X *XRDML) optFloat(meta xrd.Metadata, key string, parent *etree.Element, name string) {
	e := parent.SelectElement(X.tag(name))
	if e == nil {
		return
	}
	text := strings.TrimSpace(e.Text())
	if text == "" {
		return
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		meta[key] = v
	}
}

//optString stores the text of an optional child element into meta[key],
//silently skipping the field when the element or its text is missing.
func (X *XRDML) optString(meta xrd.Metadata, key string, parent *etree.Element, name string) {
	e := parent.SelectElement(X.tag(name))
	if e == nil {
		return
	}
	text := strings.TrimSpace(e.Text())
	if text == "" {
		return
	}
	meta[key] = text
}

//parseFloats parses a whitespace-separated list of numbers.
func parseFloats(text string) ([]float64, error) {
	fields := strings.Fields(text)
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

//spaced returns n linearly spaced values from start to end, inclusive.
func spaced(start, end float64, n int) []float64 {
	switch n {
	case 0:
		return []float64{}
	case 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}
