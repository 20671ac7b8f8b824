// Package nominatim provides a client for the OpenStreetMap Nominatim
// geocoding API: forward and reverse geocoding, object lookup, place details
// and server status.
package nominatim

import (
	"net/url"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
)

// ErrInvalidParameter is the root error for query parameter validation
// failures. Callers test for it with errors.Is.
var ErrInvalidParameter = eris.New("nominatim: invalid parameter")

// polygonFormats are the polygon output encodings the API understands.
var polygonFormats = map[string]bool{
	"geojson": true,
	"kml":     true,
	"svg":     true,
	"text":    true,
}

// Query is implemented by every request builder in this package. It exposes
// the accumulated request state the transport needs: the endpoint path, the
// parameter map and the response formats the request is willing to accept.
type Query interface {
	Path() string
	Params() map[string]string
	Values() url.Values
	Formats() []string
	Accepts(format string) bool
}

// query is the shared request state every builder is composed on. Each
// builder owns its map; nothing is shared between query instances.
type query struct {
	path    string
	params  map[string]string
	formats []string
}

func newQuery(path string) query {
	return query{
		path:    path,
		params:  make(map[string]string),
		formats: []string{"json", "xml"},
	}
}

// set stores a parameter, overwriting any previous value for the key.
func (q *query) set(key, value string) {
	q.params[key] = value
}

// setBool stores a toggle parameter as "1" or "0".
func (q *query) setBool(key string, on bool) {
	if on {
		q.set(key, "1")
	} else {
		q.set(key, "0")
	}
}

// acceptFormat appends a response format to the accepted list. Order is
// preserved and duplicates are allowed.
func (q *query) acceptFormat(format string) {
	q.formats = append(q.formats, format)
}

// Path returns the endpoint path relative to the service base URL.
func (q *query) Path() string {
	return q.path
}

// Formats returns the accepted response formats in declaration order.
func (q *query) Formats() []string {
	out := make([]string, len(q.formats))
	copy(out, q.formats)
	return out
}

// Accepts reports whether the query is willing to receive the given format.
func (q *query) Accepts(format string) bool {
	for _, f := range q.formats {
		if f == format {
			return true
		}
	}
	return false
}

// Params returns a copy of the accumulated parameter map. Reading it out is
// idempotent; the builder can keep being mutated afterwards.
func (q *query) Params() map[string]string {
	out := make(map[string]string, len(q.params))
	for k, v := range q.params {
		out[k] = v
	}
	return out
}

// Values encodes the accumulated parameters as url.Values for transport.
func (q *query) Values() url.Values {
	vals := make(url.Values, len(q.params))
	for k, v := range q.params {
		vals.Set(k, v)
	}
	return vals
}

// setPolygon requests polygon geometry in the given encoding. A previously
// requested encoding is replaced; the API rejects requests asking for more
// than one.
func (q *query) setPolygon(format string) error {
	if !polygonFormats[format] {
		return eris.Wrapf(ErrInvalidParameter, "polygon format %q: want geojson, kml, svg or text", format)
	}
	for f := range polygonFormats {
		delete(q.params, "polygon_"+f)
	}
	q.set("polygon_"+format, "1")
	return nil
}

// setLanguage validates lang as an Accept-Language value (single BCP 47 tag
// or a weighted list) and stores it as the accept-language parameter.
func (q *query) setLanguage(lang string) error {
	if _, _, err := language.ParseAcceptLanguage(lang); err != nil {
		return eris.Wrapf(ErrInvalidParameter, "accept-language %q: %v", lang, err)
	}
	q.set("accept-language", lang)
	return nil
}
