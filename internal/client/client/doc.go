// Package client talks to the blog REST API on behalf of the CLI.
//
// Client is the transport-agnostic contract; HTTPClient implements it over
// net/http, attaching the current bearer token to gated calls and turning
// non-2xx answers into *APIError. Transport failures are reported as
// ErrUnavailable so callers can tell "server down" from "server said no".
package client
