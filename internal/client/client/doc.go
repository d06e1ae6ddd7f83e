// Package client is the API access layer of the admin console.
//
// # Overview
//
// Every call goes through the same pipeline:
//
//	Client.Request
//	  -> RequestDecorator   attach "Authorization: Bearer <token>" unless the
//	                        target is exempt (login, refresh-token)
//	  -> Transport.Send     net/http, fixed timeout
//	  -> ResponseClassifier map the exchange to exactly one Outcome
//	  -> side effects       Unauthorized: SessionController clears the
//	                        session and redirects to /login?redirect=...
//	                        Forbidden/NotFound/ServerError: /403, /404, /500
//	  -> result             unwrapped envelope data, or *Error
//
// Responses use the envelope {code, data, message}; only code 200 on a 2xx
// status is a success. Code 401 inside the envelope is handled exactly like
// an HTTP 401.
//
// # Error Handling
//
// Failures are *Error values matched with errors.Is against ErrNetwork,
// ErrUnauthorized, ErrForbidden, ErrNotFound, ErrServer, ErrBusiness and
// ErrUnknown. Side effects never replace the error: the caller always sees
// the failure.
//
// # Concurrency and Contexts
//
// A Client is safe for concurrent use. Calls are classified independently;
// several may race to clear the session on Unauthorized, which is harmless.
// There is no token refresh-and-replay: an Unauthorized outcome always ends
// the session.
//
// # See Also
//
//   - Pipeline:  Client, Do, RequestDescriptor
//   - Policy:    RequestDecorator, EndpointClassifier, ResponseClassifier
//   - Effects:   SessionController, NavigationSideEffects
//   - Storage:   InitDatabase, RunMigrations
package client
