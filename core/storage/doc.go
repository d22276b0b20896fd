// Package storage wraps the S3-compatible object store holding report
// images. The Client interface keeps services decoupled from the concrete
// Minio SDK, and the mocks subpackage provides a testify mock for handler
// and service tests.
package storage
