// Package server runs the note server's transports.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown of every enabled transport.
package server
