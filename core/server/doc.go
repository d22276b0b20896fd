// Package server holds the HTTP server configuration.
//
// The main application entry point handles the actual startup; this package
// only defines the configuration structure: listen port, CORS origin and the
// secret used for auth token signing.
package server
