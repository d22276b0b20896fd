// Package disasters provides CRUD over the disasters table.
//
// Creates and updates geocode the free-text location name into a PostGIS
// point (a location the geocoder cannot resolve rejects the request), append
// an audit entry, and broadcast the changed row as disaster_updated; deletes
// broadcast a {deleted: true, id} tombstone and require the admin role.
// Listing goes through the disasters_with_coords view so clients get parsed
// lat/lon instead of raw geography bytes.
package disasters
