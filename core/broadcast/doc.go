// Package broadcast delivers change events to connected UI clients over
// websocket.
//
// Delivery is fire-and-forget: events reach only the subscribers connected
// at publish time, there are no acknowledgments and no replay. Services
// receive the Broadcaster capability at construction instead of reaching for
// a process-wide handle, which keeps publishing testable.
package broadcast
