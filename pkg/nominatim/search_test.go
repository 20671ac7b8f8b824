package nominatim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQuery_AddCountryCode(t *testing.T) {
	sq := NewSearchQuery()
	require.NoError(t, sq.AddCountryCode("de"))
	assert.Equal(t, "de", sq.Params()["countrycodes"])
}

func TestSearchQuery_AddCountryCode_CasePreserved(t *testing.T) {
	sq := NewSearchQuery()
	require.NoError(t, sq.AddCountryCode("GB"))
	assert.Equal(t, "GB", sq.Params()["countrycodes"])
}

func TestSearchQuery_AddCountryCode_Accumulates(t *testing.T) {
	sq := NewSearchQuery()
	require.NoError(t, sq.AddCountryCode("de"))
	require.NoError(t, sq.AddCountryCode("fr"))
	require.NoError(t, sq.AddCountryCode("at"))
	assert.Equal(t, "de,fr,at", sq.Params()["countrycodes"])
}

func TestSearchQuery_AddCountryCode_Invalid(t *testing.T) {
	cases := []string{"", "d", "deu", "d1", "12", "d-", "u s", "üü"}

	for _, code := range cases {
		t.Run("code="+code, func(t *testing.T) {
			sq := NewSearchQuery()
			require.NoError(t, sq.AddCountryCode("us"))

			err := sq.AddCountryCode(code)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Equal(t, "us", sq.Params()["countrycodes"], "a rejected code must not change state")
		})
	}
}

func TestSearchQuery_ExcludePlaceIDs(t *testing.T) {
	sq := NewSearchQuery()
	require.NoError(t, sq.ExcludePlaceIDs(1, 2, 3))
	assert.Equal(t, "1, 2, 3", sq.Params()["exclude_place_ids"])
}

func TestSearchQuery_ExcludePlaceIDs_Empty(t *testing.T) {
	sq := NewSearchQuery()
	err := sq.ExcludePlaceIDs()
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.NotContains(t, sq.Params(), "exclude_place_ids")
}

func TestSearchQuery_ViewBox(t *testing.T) {
	sq := NewSearchQuery().ViewBox("-0.5", "51.5", "0.3", "51.3")
	assert.Equal(t, "-0.5,51.5,0.3,51.3", sq.Params()["viewbox"])
}

func TestSearchQuery_Limit(t *testing.T) {
	sq := NewSearchQuery().Limit(5)
	assert.Equal(t, "5", sq.Params()["limit"])
}

func TestSearchQuery_SettersOverwrite(t *testing.T) {
	sq := NewSearchQuery().
		City("Berlin").
		City("Hamburg").
		Limit(5).
		Limit(20)

	assert.Equal(t, "Hamburg", sq.Params()["city"])
	assert.Equal(t, "20", sq.Params()["limit"])
}

func TestSearchQuery_StructuredAddress(t *testing.T) {
	sq := NewSearchQuery().
		Street("10 Downing Street").
		City("London").
		County("Greater London").
		State("England").
		Country("United Kingdom").
		PostalCode("SW1A 2AA")

	params := sq.Params()
	assert.Equal(t, "10 Downing Street", params["street"])
	assert.Equal(t, "London", params["city"])
	assert.Equal(t, "Greater London", params["county"])
	assert.Equal(t, "England", params["state"])
	assert.Equal(t, "United Kingdom", params["country"])
	assert.Equal(t, "SW1A 2AA", params["postalcode"])
}

func TestSearchQuery_EndToEnd(t *testing.T) {
	sq := NewSearchQuery().FreeTextQuery("Paris").Limit(10)

	assert.Equal(t, map[string]string{"q": "Paris", "limit": "10"}, sq.Params())
	assert.Equal(t, "search", sq.Path())
	assert.Contains(t, sq.Formats(), "html")
	assert.Contains(t, sq.Formats(), "jsonv2")
	assert.Contains(t, sq.Formats(), "json")
	assert.Contains(t, sq.Formats(), "xml")
}

func TestSearchQuery_Toggles(t *testing.T) {
	sq := NewSearchQuery().
		AddressDetails(true).
		ExtraTags(true).
		NameDetails(false).
		Bounded(true).
		Dedupe(false)

	params := sq.Params()
	assert.Equal(t, "1", params["addressdetails"])
	assert.Equal(t, "1", params["extratags"])
	assert.Equal(t, "0", params["namedetails"])
	assert.Equal(t, "1", params["bounded"])
	assert.Equal(t, "0", params["dedupe"])
}

func TestSearchQuery_Polygon(t *testing.T) {
	sq := NewSearchQuery()
	require.NoError(t, sq.Polygon("geojson"))
	assert.Equal(t, "1", sq.Params()["polygon_geojson"])

	// A new encoding replaces the previous one.
	require.NoError(t, sq.Polygon("kml"))
	assert.Equal(t, "1", sq.Params()["polygon_kml"])
	assert.NotContains(t, sq.Params(), "polygon_geojson")
}

func TestSearchQuery_Polygon_Invalid(t *testing.T) {
	sq := NewSearchQuery()
	err := sq.Polygon("wkt")
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Empty(t, sq.Params())
}

func TestSearchQuery_Language(t *testing.T) {
	sq := NewSearchQuery()
	require.NoError(t, sq.Language("de"))
	assert.Equal(t, "de", sq.Params()["accept-language"])

	require.NoError(t, sq.Language("en-US,en;q=0.9"))
	assert.Equal(t, "en-US,en;q=0.9", sq.Params()["accept-language"])
}

func TestSearchQuery_Language_Invalid(t *testing.T) {
	sq := NewSearchQuery()
	err := sq.Language("not a language tag")
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.NotContains(t, sq.Params(), "accept-language")
}
