// Package resources manages relief resources (shelters, supplies) tied to
// disasters. Proximity lookups go through the store's get_nearby_resources
// procedure with a fixed 10km radius; creates and deletes broadcast
// resource_updated events.
package resources
