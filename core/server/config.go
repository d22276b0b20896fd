package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"5000"`
	// CorsOrigin is the allowed CORS origin for browser clients.
	CorsOrigin string `mapstructure:"cors_origin" default:"*"`
	// JwtSecret signs and verifies auth tokens.
	JwtSecret string `mapstructure:"jwt_secret" default:"dev_secret"`
	// TokenTTLHours is the lifetime of issued auth tokens.
	TokenTTLHours int `mapstructure:"token_ttl_hours" default:"12"`
}
