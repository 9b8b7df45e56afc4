// Package meta provides health and readiness endpoints
package meta

import (
	"context"
	stdhttp "net/http"
	"time"

	phttp "clipscout/internal/platform/net/http"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	Version     string
	StartedAt   time.Time
	PG          Pinger
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r phttp.Router, d Deps) {
	h := &handlers{deps: d}

	r.Get("/healthz", phttp.JSONHandlerNoBody(h.health))
	r.Get("/readyz", phttp.JSONHandlerNoBody(h.ready))
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"clipscout-api"`
	Version string `json:"version" example:"0.1.0"`
	Started string `json:"started" example:"2026-08-01T13:00:00Z"`
	Now     string `json:"now" example:"2026-08-01T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name" example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

func (h *handlers) health(*stdhttp.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Version: h.deps.Version,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) ready(r *stdhttp.Request) (any, error) {
	checks := []ReadyCheck{pingCheck(r.Context(), "pg", h.deps.PG)}
	return map[string]any{"checks": checks}, nil
}

func pingCheck(ctx context.Context, name string, p Pinger) ReadyCheck {
	if p == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}
