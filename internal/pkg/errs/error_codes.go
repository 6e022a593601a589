/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Catalog and Game Business Logic Errors
const (
	// ErrCatalogTimeout indicates the upstream catalog API did not answer within the deadline.
	ErrCatalogTimeout = 2101

	// ErrCatalogServerError indicates the upstream catalog API answered with a 5xx status.
	ErrCatalogServerError = 2102

	// ErrCatalogUnavailable indicates any other failed catalog request (non-2xx or no response).
	ErrCatalogUnavailable = 2103

	// ErrCatalogMalformed indicates the catalog API answered 2xx but the payload could not be decoded.
	ErrCatalogMalformed = 2104

	// ErrCatalogNotReady indicates no catalog snapshot has been loaded yet.
	ErrCatalogNotReady = 2105

	// ErrGameNotFound indicates the requested game id is not present in the current catalog.
	ErrGameNotFound = 2201

	// ErrRatingOutOfRange indicates a rating value outside the accepted 1-5 star range.
	ErrRatingOutOfRange = 2202
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrInvalidEmail indicates a missing or malformed e-mail address.
	ErrInvalidEmail = 3001

	// ErrWeakPassword indicates the supplied password does not meet the minimum strength rules.
	ErrWeakPassword = 3002

	// ErrEmailInUse indicates an account already exists for the supplied e-mail address.
	ErrEmailInUse = 3003

	// ErrInvalidCredentials indicates the e-mail/password pair did not match an account.
	ErrInvalidCredentials = 3004

	// ErrAlreadyLoggedIn indicates an authenticated caller tried to sign in or sign up again.
	ErrAlreadyLoggedIn = 3005

	// ErrUnauthorized indicates a protected endpoint was called without a valid identity.
	ErrUnauthorized = 3006

	// ErrSignInToFavorite indicates an unauthenticated caller tried to favorite a game.
	ErrSignInToFavorite = 3007

	// ErrSignInToRate indicates an unauthenticated caller tried to rate a game.
	ErrSignInToRate = 3008

	// ErrAuthUnavailable indicates an unmapped authentication failure.
	ErrAuthUnavailable = 3009
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrStoreFailed indicates a document store read, write, or transaction failed.
	ErrStoreFailed = 5001
)
