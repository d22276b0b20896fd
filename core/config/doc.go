// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file. Nested keys map to underscore-delimited variable names
// (server.port -> SERVER_PORT, gemini.api_key -> GEMINI_API_KEY). Defaults
// are declared as 'default:' struct tags on each partial config and bound
// into Viper via reflection, so adding a setting never requires touching
// this package.
package config
