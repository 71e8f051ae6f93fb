package config

import "time"

// Default values applied when no source sets a field.
const (
	DefaultHTTPAddress    = "localhost:8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultTokenDuration  = 24 * time.Hour
	DefaultTokenIssuer    = "go-note-keeper"
	DefaultFilesDir       = "./data/files"
	DefaultClientDB       = "note-keeper.db"
	DefaultServerURL      = "http://localhost:8080"
	DefaultAIModel        = "gpt-4o-mini"
	DefaultAITimeout      = 60 * time.Second
	DefaultRefreshPeriod  = 30 * time.Second
)

func serverDefaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			LogLevel:      "debug",
		},
		Storage: Storage{
			Files: Files{
				Dir:       DefaultFilesDir,
				PublicURL: "http://" + DefaultHTTPAddress + "/api/files",
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
	}
}

func clientDefaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{DSN: DefaultClientDB},
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultServerURL,
			RequestTimeout: DefaultRequestTimeout,
		},
		AI: AI{
			Model:          DefaultAIModel,
			RequestTimeout: DefaultAITimeout,
		},
		Workers: Workers{RefreshInterval: DefaultRefreshPeriod},
	}
}
