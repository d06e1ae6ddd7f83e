// Package cli provides the interactive admin command-line client.
//
// It wires configuration, the persisted session store, the API client with
// its router and feature services, and an interactive REPL. Typical flow:
// restore the saved session or prompt for credentials, then execute user
// commands. Failures the pipeline handles (sign-out, error pages, reported
// business errors) are printed as they happen.
//
// Key features:
//   - Login / Logout / token refresh
//   - whoami and permission listing
//   - List / Show / Delete users
//   - Ad-hoc get and raw calls against any API path
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and shownByPipeline for details.
package cli
