package nominatim

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

var osmIDRe = regexp.MustCompile(`^[NWR]\d+$`)

// LookupQuery builds parameters for the /lookup endpoint, which resolves up
// to 50 OSM objects to places in one call.
type LookupQuery struct {
	query
}

// NewLookupQuery creates an empty lookup query.
func NewLookupQuery() *LookupQuery {
	lq := &LookupQuery{query: newQuery("lookup")}
	lq.acceptFormat("jsonv2")
	return lq
}

// OSMIDs sets the objects to resolve, each formatted as the OSM type letter
// followed by the numeric id, e.g. "R146656". At least one id is required
// and every id must match the pattern; a bad call leaves the query
// unchanged.
func (lq *LookupQuery) OSMIDs(ids ...string) error {
	if len(ids) == 0 {
		return eris.Wrap(ErrInvalidParameter, "osm_ids: at least one object id is required")
	}
	for _, id := range ids {
		if !osmIDRe.MatchString(id) {
			return eris.Wrapf(ErrInvalidParameter, "osm id %q: want N, W or R followed by digits", id)
		}
	}
	lq.set("osm_ids", strings.Join(ids, ","))
	return nil
}

// AddressDetails requests a breakdown of each result address into elements.
func (lq *LookupQuery) AddressDetails(on bool) *LookupQuery {
	lq.setBool("addressdetails", on)
	return lq
}

// ExtraTags requests additional OSM tags on each result.
func (lq *LookupQuery) ExtraTags(on bool) *LookupQuery {
	lq.setBool("extratags", on)
	return lq
}

// NameDetails requests the full list of names on each result.
func (lq *LookupQuery) NameDetails(on bool) *LookupQuery {
	lq.setBool("namedetails", on)
	return lq
}

// Language sets the accept-language parameter controlling result naming.
func (lq *LookupQuery) Language(lang string) error {
	return lq.setLanguage(lang)
}
