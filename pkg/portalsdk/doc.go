// Package portalsdk provides the request/response types of the portal HTTP
// API and a small client for driving it. The server handlers and the e2e
// suite share these types so the wire format is defined exactly once.
package portalsdk
