package nominatim

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// newXMLDecoder returns an xml.Decoder that can read the legacy non-UTF-8
// charsets some Nominatim mirrors still emit.
func newXMLDecoder(r io.Reader) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "nominatim: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}
	return decoder
}

type xmlSearchResults struct {
	XMLName xml.Name   `xml:"searchresults"`
	Places  []xmlPlace `xml:"place"`
}

type xmlLookupResults struct {
	XMLName xml.Name   `xml:"lookupresults"`
	Places  []xmlPlace `xml:"place"`
}

type xmlPlace struct {
	PlaceID     int64   `xml:"place_id,attr"`
	OSMType     string  `xml:"osm_type,attr"`
	OSMID       int64   `xml:"osm_id,attr"`
	Lat         string  `xml:"lat,attr"`
	Lon         string  `xml:"lon,attr"`
	Class       string  `xml:"class,attr"`
	Type        string  `xml:"type,attr"`
	PlaceRank   int     `xml:"place_rank,attr"`
	Importance  float64 `xml:"importance,attr"`
	DisplayName string  `xml:"display_name,attr"`
	BoundingBox string  `xml:"boundingbox,attr"`
}

func (xp *xmlPlace) place() Place {
	p := Place{
		PlaceID:     xp.PlaceID,
		OSMType:     xp.OSMType,
		OSMID:       xp.OSMID,
		Lat:         xp.Lat,
		Lon:         xp.Lon,
		Category:    xp.Class,
		Type:        xp.Type,
		PlaceRank:   xp.PlaceRank,
		Importance:  xp.Importance,
		DisplayName: xp.DisplayName,
	}
	if xp.BoundingBox != "" {
		p.BoundingBox = strings.Split(xp.BoundingBox, ",")
	}
	return p
}

type xmlReverseGeocode struct {
	XMLName xml.Name          `xml:"reversegeocode"`
	Error   string            `xml:"error"`
	Result  *xmlReverseResult `xml:"result"`
}

type xmlReverseResult struct {
	PlaceID     int64  `xml:"place_id,attr"`
	OSMType     string `xml:"osm_type,attr"`
	OSMID       int64  `xml:"osm_id,attr"`
	Lat         string `xml:"lat,attr"`
	Lon         string `xml:"lon,attr"`
	BoundingBox string `xml:"boundingbox,attr"`
	DisplayName string `xml:",chardata"`
}

// decodeXMLPlaces decodes a searchresults or lookupresults document into
// places, dispatching on the root element.
func decodeXMLPlaces(body []byte, path string) ([]Place, error) {
	decoder := newXMLDecoder(bytes.NewReader(body))

	var raw []xmlPlace
	if path == "lookup" {
		var doc xmlLookupResults
		if err := decoder.Decode(&doc); err != nil {
			return nil, eris.Wrapf(err, "nominatim: decode %s xml", path)
		}
		raw = doc.Places
	} else {
		var doc xmlSearchResults
		if err := decoder.Decode(&doc); err != nil {
			return nil, eris.Wrapf(err, "nominatim: decode %s xml", path)
		}
		raw = doc.Places
	}

	places := make([]Place, len(raw))
	for i := range raw {
		places[i] = raw[i].place()
	}
	return places, nil
}

// decodeXMLReverse decodes a reversegeocode document into a single place.
func decodeXMLReverse(body []byte) (*Place, error) {
	var doc xmlReverseGeocode
	if err := newXMLDecoder(bytes.NewReader(body)).Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "nominatim: decode reverse xml")
	}
	if doc.Error != "" {
		return nil, eris.Wrapf(ErrNoResult, "%s", doc.Error)
	}
	if doc.Result == nil {
		return nil, eris.Wrap(ErrNoResult, "reverse geocode returned no result")
	}

	p := &Place{
		PlaceID:     doc.Result.PlaceID,
		OSMType:     doc.Result.OSMType,
		OSMID:       doc.Result.OSMID,
		Lat:         doc.Result.Lat,
		Lon:         doc.Result.Lon,
		DisplayName: strings.TrimSpace(doc.Result.DisplayName),
	}
	if doc.Result.BoundingBox != "" {
		p.BoundingBox = strings.Split(doc.Result.BoundingBox, ",")
	}
	return p, nil
}
