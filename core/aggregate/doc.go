// Package aggregate implements the cache-backed external-data aggregation
// pattern shared by the geocode, official-updates and social-media endpoints:
// check cache, on miss fan out to the providers, merge, write through with a
// TTL, notify subscribers, respond.
//
// Merged order is the declaration order of the providers inside Fetch, then
// each provider's natural order; results are never re-sorted. Subscriber
// notification is coupled to the write, never to a cache hit. Concurrent
// misses on the same key are collapsed into one provider fan-out via
// singleflight.
package aggregate
