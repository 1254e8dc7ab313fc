// Package config manages application configuration for the Crewly API.
//
// The config package loads and validates configuration from environment
// variables. A .env file in the working directory is honored via godotenv,
// which keeps local development setup to a single file.
//
// # Configuration Loading
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: RS256 signing keys and token lifetimes
//   - RateLimitConfig: request rate limiting
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT           - HTTP server port (default: 8080)
//	SERVER_ENV            - development, production, or test
//	CORS_ALLOWED_ORIGINS  - comma-separated list of origins
//	DB_HOST, DB_PORT      - SurrealDB address
//	DB_NAMESPACE, DB_DATABASE, DB_USER, DB_PASSWORD
//	JWT_PRIVATE_KEY_PATH  - RS256 private key (PEM)
//	JWT_PUBLIC_KEY_PATH   - RS256 public key (PEM)
//	JWT_EXPIRATION_MINS   - access token lifetime (default: 15)
//	JWT_REFRESH_DURATION  - refresh token lifetime (default: 720h)
//	JWT_ISSUER            - token issuer claim
//	RATE_LIMIT_RATE, RATE_LIMIT_BURST
//
// Sensible defaults are provided for development; Validate reports every
// problem at once via errors.Join.
package config
