package http

import (
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
)

// Handler serves the REST API on top of [service.Services].
type Handler struct {
	services *service.Services
	metrics  *httpMetrics

	logger *logger.Logger
}

// NewHandler creates a Handler with its own Prometheus registry.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  newHTTPMetrics(),
		logger:   logger,
	}
}
