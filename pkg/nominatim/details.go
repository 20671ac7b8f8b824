package nominatim

import (
	"strconv"

	"github.com/rotisserie/eris"
)

// DetailsQuery builds parameters for the /details endpoint, which exposes
// the indexed record of a single place.
type DetailsQuery struct {
	query
}

func newDetailsQuery() *DetailsQuery {
	dq := &DetailsQuery{query: newQuery("details")}
	// The details endpoint only renders json and the interactive html page.
	dq.formats = []string{"json", "html"}
	return dq
}

// NewDetailsQuery creates a details query for an OSM object. osmType is one
// of N, W or R.
func NewDetailsQuery(osmType string, osmID int64) (*DetailsQuery, error) {
	if !osmTypes[osmType] {
		return nil, eris.Wrapf(ErrInvalidParameter, "osm type %q: want N, W or R", osmType)
	}
	dq := newDetailsQuery()
	dq.set("osmtype", osmType)
	dq.set("osmid", strconv.FormatInt(osmID, 10))
	return dq, nil
}

// NewDetailsQueryByPlaceID creates a details query addressing a place by its
// internal database id. Place ids are not stable across reimports; prefer
// NewDetailsQuery when the OSM object is known.
func NewDetailsQueryByPlaceID(placeID int64) *DetailsQuery {
	dq := newDetailsQuery()
	dq.set("place_id", strconv.FormatInt(placeID, 10))
	return dq
}

// Class disambiguates between multiple places imported from the same OSM
// object, e.g. a node that is both a peak and a viewpoint.
func (dq *DetailsQuery) Class(class string) *DetailsQuery {
	dq.set("class", class)
	return dq
}

// AddressDetails requests the address hierarchy of the place.
func (dq *DetailsQuery) AddressDetails(on bool) *DetailsQuery {
	dq.setBool("addressdetails", on)
	return dq
}

// KeywordDetails requests the search keywords of the place.
func (dq *DetailsQuery) KeywordDetails(on bool) *DetailsQuery {
	dq.setBool("keywords", on)
	return dq
}

// Language sets the accept-language parameter controlling result naming.
func (dq *DetailsQuery) Language(lang string) error {
	return dq.setLanguage(lang)
}
