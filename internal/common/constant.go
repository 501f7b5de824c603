package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the token inside the Authorization header.
const BearerScheme = "Bearer"

// Pagination bounds applied by repositories.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)
