package nominatim

import (
	"strconv"

	"github.com/rotisserie/eris"
)

var osmTypes = map[string]bool{"N": true, "W": true, "R": true}

// ReverseQuery builds parameters for the /reverse endpoint. A reverse query
// targets either a coordinate pair or a single OSM object.
type ReverseQuery struct {
	query
}

// NewReverseQuery creates an empty reverse geocoding query.
func NewReverseQuery() *ReverseQuery {
	rq := &ReverseQuery{query: newQuery("reverse")}
	rq.acceptFormat("html")
	rq.acceptFormat("jsonv2")
	return rq
}

// Coordinates sets the point to reverse geocode.
func (rq *ReverseQuery) Coordinates(lat, lon float64) *ReverseQuery {
	rq.set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	rq.set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return rq
}

// OSMID targets a single OSM object instead of a coordinate pair. typ is
// one of N, W or R; anything else is rejected, leaving the query unchanged.
func (rq *ReverseQuery) OSMID(typ string, id int64) error {
	if !osmTypes[typ] {
		return eris.Wrapf(ErrInvalidParameter, "osm type %q: want N, W or R", typ)
	}
	rq.set("osm_type", typ)
	rq.set("osm_id", strconv.FormatInt(id, 10))
	return nil
}

// Zoom sets the detail level of the returned address, from 0 (country) to
// 18 (building). Values outside that range are rejected, leaving the query
// unchanged.
func (rq *ReverseQuery) Zoom(level int) error {
	if level < 0 || level > 18 {
		return eris.Wrapf(ErrInvalidParameter, "zoom %d: want 0 through 18", level)
	}
	rq.set("zoom", strconv.Itoa(level))
	return nil
}

// AddressDetails requests a breakdown of the result address into elements.
func (rq *ReverseQuery) AddressDetails(on bool) *ReverseQuery {
	rq.setBool("addressdetails", on)
	return rq
}

// ExtraTags requests additional OSM tags on the result.
func (rq *ReverseQuery) ExtraTags(on bool) *ReverseQuery {
	rq.setBool("extratags", on)
	return rq
}

// NameDetails requests the full list of names on the result.
func (rq *ReverseQuery) NameDetails(on bool) *ReverseQuery {
	rq.setBool("namedetails", on)
	return rq
}

// Polygon requests result geometry in the given encoding: geojson, kml, svg
// or text.
func (rq *ReverseQuery) Polygon(format string) error {
	return rq.setPolygon(format)
}

// Language sets the accept-language parameter controlling result naming.
func (rq *ReverseQuery) Language(lang string) error {
	return rq.setLanguage(lang)
}
