/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Catalog and Game Business Logic Errors
	ErrCatalogTimeout:     {Code: ErrCatalogTimeout, Message: "The server took too long to respond. Please try again later.", Status: http.StatusGatewayTimeout},
	ErrCatalogServerError: {Code: ErrCatalogServerError, Message: "The server failed to respond. Try reloading the page.", Status: http.StatusBadGateway},
	ErrCatalogUnavailable: {Code: ErrCatalogUnavailable, Message: "The server cannot respond right now. Please come back later.", Status: http.StatusBadGateway},
	ErrCatalogMalformed:   {Code: ErrCatalogMalformed, Message: "The server cannot respond right now. Please come back later.", Status: http.StatusBadGateway},
	ErrCatalogNotReady:    {Code: ErrCatalogNotReady, Message: "The game list is still loading. Please try again shortly.", Status: http.StatusServiceUnavailable},
	ErrGameNotFound:       {Code: ErrGameNotFound, Message: "Game not found.", Status: http.StatusNotFound},
	ErrRatingOutOfRange:   {Code: ErrRatingOutOfRange, Message: "Ratings must be between 1 and 5 stars."},

	// 3xxx: User, Session, and Security Errors
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid sign-in. Fill in the e-mail and password correctly."},
	ErrWeakPassword:       {Code: ErrWeakPassword, Message: "Password is too weak. Use at least 6 characters."},
	ErrEmailInUse:         {Code: ErrEmailInUse, Message: "This e-mail address is already in use."},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid sign-in. E-mail or password incorrect."},
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrSignInToFavorite:   {Code: ErrSignInToFavorite, Message: "You are signed out. Sign in to save favorite games.", Status: http.StatusUnauthorized},
	ErrSignInToRate:       {Code: ErrSignInToRate, Message: "You are signed out. Sign in to rate games.", Status: http.StatusUnauthorized},
	ErrAuthUnavailable:    {Code: ErrAuthUnavailable, Message: "Sign-in is unavailable right now. Please try again later."},

	// 5xxx: Internal System Errors
	ErrUnknown:     {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStoreFailed: {Code: ErrStoreFailed, Message: "Could not save your changes. Please try again.", Status: http.StatusInternalServerError},
}
