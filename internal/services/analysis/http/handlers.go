// Package http provides http transport for analysis
package http

import (
	stdhttp "net/http"
	"strconv"

	phttp "clipscout/internal/platform/net/http"
	"clipscout/internal/platform/net/http/bind"
	"clipscout/internal/services/analysis/domain"
	svc "clipscout/internal/services/analysis/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts analysis endpoints on the given router
func Register(r phttp.Router, s svc.Service) {
	h := &handlers{svc: s}

	// full pipeline, sync and async
	r.Post("/analysis", phttp.JSONHandler[domain.AnalyzeInput](h.analyze))
	r.Post("/analysis/async", phttp.Handle(h.analyzeAsync))
	r.Get("/analysis/tasks/{id}", phttp.JSONHandlerNoBody(h.task))
	r.Delete("/analysis/tasks/{id}", phttp.Handle(h.deleteTask))
	r.Delete("/analysis/tasks", phttp.JSONHandlerNoBody(h.deleteTasks))

	// partial pipelines
	r.Post("/analysis/engagement", phttp.JSONHandler[domain.EngagementInput](h.engagement))
	r.Post("/analysis/clips", phttp.JSONHandler[domain.ClipsInput](h.clips))

	// stored reports
	r.Get("/reports", phttp.JSONHandlerNoBody(h.reports))
	r.Get("/reports/{id}", phttp.JSONHandlerNoBody(h.report))
}

type handlers struct{ svc svc.Service }

func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

func (h *handlers) analyzeAsync(r *stdhttp.Request) phttp.Response {
	in, err := bind.ParseJSON[domain.AnalyzeInput](r)
	if err != nil {
		return phttp.Error(err)
	}
	t, err := h.svc.AnalyzeAsync(r.Context(), in)
	if err != nil {
		return phttp.Error(err)
	}
	return phttp.Accepted(t)
}

func (h *handlers) task(r *stdhttp.Request) (any, error) {
	return h.svc.Task(r.Context(), chi.URLParam(r, "id"))
}

func (h *handlers) deleteTask(r *stdhttp.Request) phttp.Response {
	if err := h.svc.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		return phttp.Error(err)
	}
	return phttp.NoContent()
}

func (h *handlers) deleteTasks(r *stdhttp.Request) (any, error) {
	n, err := h.svc.DeleteTasks(r.Context())
	if err != nil {
		return nil, err
	}
	return map[string]int{"deleted": n}, nil
}

func (h *handlers) engagement(r *stdhttp.Request, in domain.EngagementInput) (any, error) {
	return h.svc.Engagement(r.Context(), in)
}

func (h *handlers) clips(r *stdhttp.Request, in domain.ClipsInput) (any, error) {
	return h.svc.Clips(r.Context(), in)
}

func (h *handlers) reports(r *stdhttp.Request) (any, error) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return h.svc.Reports(r.Context(), domain.ListReportsInput{
		VideoID: r.URL.Query().Get("video_id"),
		Limit:   limit,
	})
}

func (h *handlers) report(r *stdhttp.Request) (any, error) {
	return h.svc.Report(r.Context(), chi.URLParam(r, "id"))
}
