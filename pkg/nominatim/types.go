package nominatim

import (
	"strconv"

	"github.com/rotisserie/eris"
)

// Place is a single geocoding result. Field names follow the jsonv2 wire
// format; lat and lon stay strings as sent by the service.
type Place struct {
	PlaceID     int64             `json:"place_id"`
	Licence     string            `json:"licence,omitempty"`
	OSMType     string            `json:"osm_type,omitempty"`
	OSMID       int64             `json:"osm_id,omitempty"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Category    string            `json:"category,omitempty"`
	Type        string            `json:"type,omitempty"`
	PlaceRank   int               `json:"place_rank,omitempty"`
	Importance  float64           `json:"importance,omitempty"`
	AddressType string            `json:"addresstype,omitempty"`
	Name        string            `json:"name,omitempty"`
	DisplayName string            `json:"display_name"`
	BoundingBox []string          `json:"boundingbox,omitempty"`
	Address     map[string]string `json:"address,omitempty"`
	ExtraTags   map[string]string `json:"extratags,omitempty"`
	NameDetails map[string]string `json:"namedetails,omitempty"`
}

// LatLon parses the wire-format coordinate strings.
func (p *Place) LatLon() (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "nominatim: parse lat %q", p.Lat)
	}
	lon, err = strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "nominatim: parse lon %q", p.Lon)
	}
	return lat, lon, nil
}

// Centroid is a GeoJSON point, coordinates ordered lon then lat.
type Centroid struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// PlaceDetails is the indexed record of a place from the /details endpoint.
type PlaceDetails struct {
	PlaceID            int64             `json:"place_id"`
	ParentPlaceID      int64             `json:"parent_place_id,omitempty"`
	OSMType            string            `json:"osm_type"`
	OSMID              int64             `json:"osm_id"`
	Category           string            `json:"category,omitempty"`
	Type               string            `json:"type,omitempty"`
	AdminLevel         int               `json:"admin_level,omitempty"`
	LocalName          string            `json:"localname,omitempty"`
	Names              map[string]string `json:"names,omitempty"`
	ExtraTags          map[string]string `json:"extratags,omitempty"`
	RankAddress        int               `json:"rank_address,omitempty"`
	RankSearch         int               `json:"rank_search,omitempty"`
	Importance         float64           `json:"importance,omitempty"`
	CalculatedPostcode string            `json:"calculated_postcode,omitempty"`
	CountryCode        string            `json:"country_code,omitempty"`
	IndexedDate        string            `json:"indexed_date,omitempty"`
	Centroid           Centroid          `json:"centroid"`
}

// ServerStatus is the /status endpoint response. Status 0 means healthy.
type ServerStatus struct {
	Status          int    `json:"status"`
	Message         string `json:"message"`
	DataUpdated     string `json:"data_updated,omitempty"`
	SoftwareVersion string `json:"software_version,omitempty"`
	DatabaseVersion string `json:"database_version,omitempty"`
}
