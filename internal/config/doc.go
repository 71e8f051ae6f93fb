// Package config provides configuration loading, merging, and validation
// for the note server and the client.
//
// Configuration is assembled from several sources. For each field the first
// source with a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
