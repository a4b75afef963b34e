// Package server provides the local HTTP surface that completes the
// implicit-grant login flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method filtering.
//
// # Implicit Grant Capture
//
// The identity provider returns the access token in the redirect URL
// fragment. Fragments are never sent to a server, so the callback page served
// at /callback carries a small script that clears the fragment from the
// visible location (exactly once) and forwards it to /token as a query
// parameter. The /token handler parses the fragment, validates the state
// parameter, and delivers the credential once over a channel.
//
// # Usage
//
// When the user runs `spotify-app auth login`, a temporary HTTP server starts
// on the configured redirect host, handles one authorization redirect, and
// shuts down after the credential is captured.
package server
