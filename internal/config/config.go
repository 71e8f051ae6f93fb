// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-note-keeper server and client. It is populated by merging values from
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, the log level and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database and object store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listen address and request timeout.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the address of the note server as seen by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// AI holds the text-generation API settings used by the client.
	AI AI `envPrefix:"AI_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimum zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogDir is the directory the client writes its log file to.
	// Env: APP_LOG_DIR
	LogDir string `env:"LOG_DIR"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the filesystem object store settings.
	Files Files `envPrefix:"FILES_"`

	// GCS holds the Google Cloud Storage object store settings. When
	// Bucket is set it takes precedence over Files.
	GCS GCS `envPrefix:"GCS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string on the server and the SQLite
	// file path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds settings for the filesystem object store.
type Files struct {
	// Dir is the directory uploaded note images are written to.
	// Env: STORAGE_FILES_DIR
	Dir string `env:"DIR"`

	// PublicURL is the base URL objects are served from
	// (e.g. "http://localhost:8080/api/files").
	// Env: STORAGE_FILES_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`
}

// GCS holds settings for the Google Cloud Storage object store.
type GCS struct {
	// Bucket is the destination bucket name.
	// Env: STORAGE_GCS_BUCKET
	Bucket string `env:"BUCKET"`

	// CredentialsFile is an optional service account key file. When empty
	// the application default credentials are used.
	// Env: STORAGE_GCS_CREDENTIALS_FILE
	CredentialsFile string `env:"CREDENTIALS_FILE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's view of the note server.
type Adapter struct {
	// HTTPAddress is the base URL of the note server
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// AI holds settings for the OpenAI-compatible text-generation API.
type AI struct {
	// APIKey authenticates requests. When empty, AI features report an
	// error and emoji suggestion falls back to the default glyph.
	// Env: AI_API_KEY
	APIKey string `env:"API_KEY"`

	// BaseURL overrides the API endpoint for compatible providers.
	// Env: AI_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Model is the chat completion model name.
	// Env: AI_MODEL
	Model string `env:"MODEL"`

	// RequestTimeout bounds every completion request.
	// Env: AI_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshInterval is how often the client reloads its result sets.
	// Unset means [DefaultRefreshPeriod].
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetStructuredConfig loads, merges and validates the server configuration.
// For each field the first non-zero value wins, in the order:
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied last.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults(serverDefaults()).
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
