// Package nominatim adapts the OpenStreetMap Nominatim geocoding service:
// free-text place name in, zero-or-one best-match coordinate pair out.
// A result with nil coordinates means the provider had no match, which
// callers decide how to treat (the disasters feature requires a match,
// the geocode aggregation passes the absence through).
package nominatim
