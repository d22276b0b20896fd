// Package middleware groups the Fiber middlewares shared by all features:
// rayid (request correlation ids) and auth (bearer token authentication and
// role checks).
package middleware
