// Package cache implements the database-backed TTL cache used by the
// aggregation endpoints.
//
// Keys name one cached aggregation result (e.g. "geocode:<description>",
// "official:<disasterId>", "social:<disasterId>"). At most one live entry
// exists per key; reads of expired and absent keys behave identically.
// Writes upsert and recompute the expiry, so stale rows are replaced in
// place rather than deleted.
package cache
