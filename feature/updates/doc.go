// Package updates serves official disaster updates aggregated from external
// sites and feeds (NDMA India, ReliefWeb). Sources are fetched concurrently
// and best-effort: an unreachable source contributes a sentinel entry, and
// the merged list is cached under "official:<disasterId>".
package updates
