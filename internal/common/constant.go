// Package common contains shared constants and sentinel errors used across
// the admin API client packages.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// RequestIDHeaderName correlates a client request with server logs.
const RequestIDHeaderName = "X-Request-ID"

// Endpoints that are called without a bearer credential.
const (
	LoginPath        = "/auth/login"
	RefreshTokenPath = "/auth/refresh-token"
)

// Other authentication endpoints.
const (
	CaptchaPath     = "/auth/captcha"
	LogoutPath      = "/auth/logout"
	PermissionsPath = "/auth/permissions"
)

// Fixed navigation targets used by the response side effects.
const (
	LoginRoute       = "/login"
	ForbiddenRoute   = "/403"
	NotFoundRoute    = "/404"
	ServerErrorRoute = "/500"
	HomeRoute        = "/"
)

// RedirectQueryParam names the return-path parameter of the login route.
const RedirectQueryParam = "redirect"
