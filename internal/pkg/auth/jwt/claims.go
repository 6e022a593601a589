package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the structure of the JSON Web Token (JWT) claims for Game Vault.
// It includes standard claims required by the JWT specification and the custom
// claims necessary for identifying the signed-in collector.
type Payload struct {
	// StandardClaims embeds the necessary JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer). These are crucial for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the account identifier (UUID) assigned at registration. It keys the
	// user's profile document in the document store.
	ID string `json:"id"`

	// Email is the address the account was registered with, carried for display
	// purposes only; authorization always goes through ID.
	Email string `json:"email"`
}
