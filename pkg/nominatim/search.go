package nominatim

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

var countryCodeRe = regexp.MustCompile(`^[a-zA-Z]{2}$`)

// SearchQuery builds parameters for the /search endpoint.
//
// A search is either free-text (FreeTextQuery) or structured (Street, City,
// County, State, Country, PostalCode). The service ignores the structured
// fields when q is present, so callers should stick to one style per query;
// the builder does not enforce this.
//
// A SearchQuery is built fresh per request by a single caller and is not
// safe for concurrent use.
type SearchQuery struct {
	query
}

// NewSearchQuery creates an empty search query. On top of the base json and
// xml formats it accepts html and jsonv2 responses.
func NewSearchQuery() *SearchQuery {
	sq := &SearchQuery{query: newQuery("search")}
	sq.acceptFormat("html")
	sq.acceptFormat("jsonv2")
	return sq
}

// FreeTextQuery sets the free-form query string.
func (sq *SearchQuery) FreeTextQuery(text string) *SearchQuery {
	sq.set("q", text)
	return sq
}

// Street sets the structured-search street, optionally with a house number.
func (sq *SearchQuery) Street(text string) *SearchQuery {
	sq.set("street", text)
	return sq
}

// City sets the structured-search city.
func (sq *SearchQuery) City(text string) *SearchQuery {
	sq.set("city", text)
	return sq
}

// County sets the structured-search county.
func (sq *SearchQuery) County(text string) *SearchQuery {
	sq.set("county", text)
	return sq
}

// State sets the structured-search state.
func (sq *SearchQuery) State(text string) *SearchQuery {
	sq.set("state", text)
	return sq
}

// Country sets the structured-search country.
func (sq *SearchQuery) Country(text string) *SearchQuery {
	sq.set("country", text)
	return sq
}

// PostalCode sets the structured-search postal code.
func (sq *SearchQuery) PostalCode(text string) *SearchQuery {
	sq.set("postalcode", text)
	return sq
}

// AddCountryCode restricts results to the given ISO 3166-1 alpha-2 country.
// Repeated calls accumulate into a comma-separated list; the code is kept in
// the case it was given. The call is rejected, leaving the query unchanged,
// if code is not exactly two letters.
func (sq *SearchQuery) AddCountryCode(code string) error {
	if !countryCodeRe.MatchString(code) {
		return eris.Wrapf(ErrInvalidParameter, "country code %q: want exactly two letters", code)
	}
	if existing, ok := sq.params["countrycodes"]; ok {
		sq.set("countrycodes", existing+","+code)
	} else {
		sq.set("countrycodes", code)
	}
	return nil
}

// ViewBox sets the preferred search area as its left, top, right and bottom
// coordinates. Coordinates are passed through as given.
func (sq *SearchQuery) ViewBox(left, top, right, bottom string) *SearchQuery {
	sq.set("viewbox", left+","+top+","+right+","+bottom)
	return sq
}

// Bounded restricts results to items contained within the view box.
func (sq *SearchQuery) Bounded(on bool) *SearchQuery {
	sq.setBool("bounded", on)
	return sq
}

// ExcludePlaceIDs skips the named places in the result set, for paging
// through further matches. At least one id is required; an empty call is
// rejected and leaves the query unchanged.
func (sq *SearchQuery) ExcludePlaceIDs(ids ...int64) error {
	if len(ids) == 0 {
		return eris.Wrap(ErrInvalidParameter, "exclude_place_ids: at least one place id is required")
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.FormatInt(id, 10)
	}
	sq.set("exclude_place_ids", strings.Join(strs, ", "))
	return nil
}

// Limit caps the number of returned results.
func (sq *SearchQuery) Limit(n int) *SearchQuery {
	sq.set("limit", strconv.Itoa(n))
	return sq
}

// Dedupe toggles merging of duplicate results.
func (sq *SearchQuery) Dedupe(on bool) *SearchQuery {
	sq.setBool("dedupe", on)
	return sq
}

// AddressDetails requests a breakdown of each result address into elements.
func (sq *SearchQuery) AddressDetails(on bool) *SearchQuery {
	sq.setBool("addressdetails", on)
	return sq
}

// ExtraTags requests additional OSM tags on each result.
func (sq *SearchQuery) ExtraTags(on bool) *SearchQuery {
	sq.setBool("extratags", on)
	return sq
}

// NameDetails requests the full list of names on each result.
func (sq *SearchQuery) NameDetails(on bool) *SearchQuery {
	sq.setBool("namedetails", on)
	return sq
}

// Polygon requests result geometry in the given encoding: geojson, kml, svg
// or text.
func (sq *SearchQuery) Polygon(format string) error {
	return sq.setPolygon(format)
}

// Language sets the accept-language parameter controlling result naming.
func (sq *SearchQuery) Language(lang string) error {
	return sq.setLanguage(lang)
}
