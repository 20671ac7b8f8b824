package nominatim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_ParamsReturnsCopy(t *testing.T) {
	sq := NewSearchQuery().FreeTextQuery("Paris")

	params := sq.Params()
	params["q"] = "tampered"
	params["limit"] = "99"

	assert.Equal(t, map[string]string{"q": "Paris"}, sq.Params())
}

func TestQuery_ReadOutIsIdempotent(t *testing.T) {
	sq := NewSearchQuery().FreeTextQuery("Paris").Limit(10)

	first := sq.Params()
	second := sq.Params()
	assert.Equal(t, first, second)
	assert.Equal(t, sq.Formats(), sq.Formats())
}

func TestQuery_Values(t *testing.T) {
	sq := NewSearchQuery().FreeTextQuery("Hôtel de Ville").Limit(3)

	vals := sq.Values()
	assert.Equal(t, "Hôtel de Ville", vals.Get("q"))
	assert.Equal(t, "3", vals.Get("limit"))
	assert.Equal(t, "limit=3&q=H%C3%B4tel+de+Ville", vals.Encode())
}

func TestQuery_Accepts(t *testing.T) {
	sq := NewSearchQuery()
	for _, f := range []string{"json", "xml", "html", "jsonv2"} {
		assert.True(t, sq.Accepts(f), "search should accept %q", f)
	}
	assert.False(t, sq.Accepts("geocodejson"))
}

func TestQuery_FormatOrderPreserved(t *testing.T) {
	sq := NewSearchQuery()
	require.Equal(t, []string{"json", "xml", "html", "jsonv2"}, sq.Formats())

	// Append-only; duplicates are allowed.
	sq.acceptFormat("json")
	assert.Equal(t, []string{"json", "xml", "html", "jsonv2", "json"}, sq.Formats())
}

func TestQuery_FormatsReturnsCopy(t *testing.T) {
	sq := NewSearchQuery()
	formats := sq.Formats()
	formats[0] = "tampered"
	assert.Equal(t, "json", sq.Formats()[0])
}
