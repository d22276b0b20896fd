// Package geocode resolves free-text disaster descriptions to coordinates.
// The language model extracts place names, each name is geocoded in
// extraction order, and the combined result is cached under
// "geocode:<description>".
package geocode
