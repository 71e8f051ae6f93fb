// Package http implements the REST transport of the note server.
//
// It exposes route wiring, request handlers and middleware. Request
// tracing, access logging, compression, metrics and bearer-token
// authentication are handled here before requests are delegated to the
// service layer. The server is a generic document store: it authenticates
// writers but leaves note-level permission rules to the client.
package http
