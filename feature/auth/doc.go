// Package auth provides login, registration and token verification over the
// users table. Roles are limited to admin, responder and citizen; the issued
// token carries {id, username, role} and downstream features trust its
// decoded role for authorization.
package auth
