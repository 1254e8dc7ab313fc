// Package middleware provides HTTP middleware for the Crewly API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - RequestID: Unique request identifier propagation
//   - Logger: Structured request logging via slog
//   - Recovery: Panic recovery with a JSON 500 response
//   - CORS: Cross-origin request handling
//   - Auth: JWT token validation and user extraction
//   - RateLimit: Request rate limiting per user/IP
//   - Idempotency: Idempotent request handling for POST/PATCH
//   - Compress: gzip response compression
//
// # Composition
//
// Middleware is composed with Chain, applied in the given order:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	)
//
// # Authentication
//
// The auth middleware validates Bearer tokens and stores claims in the
// request context. After authentication, handlers can access user info:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetUserEmail(ctx): Returns authenticated user email
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
