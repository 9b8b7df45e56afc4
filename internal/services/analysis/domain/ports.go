package domain

import (
	"context"

	"clipscout/internal/core/scoring"
)

// ServicePort is the analysis service contract the transport layer mounts
type ServicePort interface {
	// Analyze runs the full pipeline synchronously
	Analyze(ctx context.Context, in AnalyzeInput) (Report, error)

	// AnalyzeAsync registers a task and runs the pipeline in the background
	AnalyzeAsync(ctx context.Context, in AnalyzeInput) (Task, error)
	Task(ctx context.Context, id string) (Task, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteTasks(ctx context.Context) (int, error)

	// Engagement and Clips expose the partial pipelines
	Engagement(ctx context.Context, in EngagementInput) (scoring.Engagement, error)
	Clips(ctx context.Context, in ClipsInput) ([]scoring.Clip, error)

	// Stored report access
	Report(ctx context.Context, id string) (Report, error)
	Reports(ctx context.Context, in ListReportsInput) ([]ReportSummary, error)
}
