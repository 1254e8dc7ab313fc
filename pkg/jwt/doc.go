// Package jwt provides JSON Web Token utilities for the Crewly API.
//
// The jwt package handles RS256 token signing, validation, and claims
// extraction for authentication.
//
// # Token Signing
//
// Sign tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    PublicKeyPath:  "./keys/public.pem",
//	    Issuer:         "crewly.app",
//	    ExpirationMins: 15,
//	})
//
//	token, err := service.Sign(jwt.Claims{
//	    Subject:  userID,
//	    UserID:   userID,
//	    Email:    email,
//	    Username: username,
//	})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// A service constructed with only a public key can validate tokens but
// not sign them, which suits read-only consumers.
//
// # Key Generation
//
// GenerateKeyPair writes a fresh 2048-bit RSA key pair to disk, used at
// startup in development when no keys exist yet:
//
//	err := jwt.GenerateKeyPair("./keys/private.pem", "./keys/public.pem")
package jwt
