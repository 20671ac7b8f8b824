package nominatim

// StatusQuery builds parameters for the /status endpoint. It carries no
// parameters of its own; only the response format varies.
type StatusQuery struct {
	query
}

// NewStatusQuery creates a status query.
func NewStatusQuery() *StatusQuery {
	sq := &StatusQuery{query: newQuery("status")}
	// Status reports as plain text or json, never xml.
	sq.formats = []string{"text", "json"}
	return sq
}
