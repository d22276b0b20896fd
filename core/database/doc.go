// Package database manages the connection to the hosted Postgres store.
//
// The store carries the relational entities (disasters, resources, reports,
// users), the PostGIS geography columns backing proximity queries, and the
// cache table used by core/cache. Connections are pooled and verified with a
// ping at startup.
package database
