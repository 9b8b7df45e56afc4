// Package domain holds DTOs for analysis http and service contracts
package domain

import (
	"time"

	"clipscout/internal/core/audioex"
	"clipscout/internal/core/hotspot"
	"clipscout/internal/core/scoring"
)

// VideoMeta identifies the video under analysis
type VideoMeta struct {
	VideoID  string  `json:"video_id" validate:"required,min=1,max=64" example:"dQw4w9WgXcQ"`
	Title    string  `json:"title,omitempty" validate:"omitempty,max=300"`
	Duration float64 `json:"duration,omitempty" validate:"omitempty,min=0" example:"600"`
}

// AudioCurves carries the per-frame loudness and pitch sequences extracted
// upstream. Duration is the clip length in seconds the frames span
type AudioCurves struct {
	Loudness []float64 `json:"loudness,omitempty"`
	Pitch    []float64 `json:"pitch,omitempty"`
	Duration float64   `json:"duration" validate:"required,gt=0" example:"600"`
}

// Annotation is a reasoner highlight note as it arrives on the wire.
// Time is a human timestamp ("M:SS" or "H:MM:SS"); entries that fail to
// parse are skipped, they never abort a run
type Annotation struct {
	Time   string `json:"time" validate:"required,max=16" example:"1:35"`
	Reason string `json:"reason" validate:"max=500"`
}

// AnalyzeInput is the full payload for a report run.
// Comments, audio and annotations are each optional; sections without input
// come back zero-valued rather than failing the run
type AnalyzeInput struct {
	Video       VideoMeta         `json:"video"`
	Comments    []hotspot.Comment `json:"comments,omitempty" validate:"omitempty,max=10000"`
	Audio       *AudioCurves      `json:"audio,omitempty"`
	Annotations []Annotation      `json:"annotations,omitempty" validate:"omitempty,max=1000,dive"`
	KPIs        *scoring.KPIs     `json:"kpis,omitempty"`
	Persist     bool              `json:"persist,omitempty"`
}

// EngagementInput runs only the comment engagement summary
type EngagementInput struct {
	Comments []hotspot.Comment `json:"comments" validate:"max=10000"`
}

// ClipsInput runs only hotspot extraction, correlation and clip scoring
type ClipsInput struct {
	Comments    []hotspot.Comment `json:"comments" validate:"max=10000"`
	Annotations []Annotation      `json:"annotations,omitempty" validate:"omitempty,max=1000,dive"`
}

// Report is the composite analysis result
type Report struct {
	ID          string             `json:"id"`
	VideoID     string             `json:"video_id"`
	Title       string             `json:"title,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Engagement  scoring.Engagement `json:"engagement"`
	AudioPoints []audioex.Point    `json:"audio_excitement,omitempty"`
	AudioScore  float64            `json:"audio_score"`
	Quality     *scoring.Breakdown `json:"quality,omitempty"`
	Clips       []scoring.Clip     `json:"recommended_clips,omitempty"`
}

// ReportSummary is a listing row for stored reports
type ReportSummary struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"video_id"`
	GeneratedAt time.Time `json:"generated_at"`
	ClipCount   int       `json:"clip_count"`
	TopScore    float64   `json:"top_score"`
}

// ListReportsInput filters the stored report listing
type ListReportsInput struct {
	VideoID string `json:"video_id,omitempty" validate:"omitempty,max=64"`
	Limit   int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
}

// TaskStatus is the lifecycle state of an async analysis run
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Task tracks one async analysis run. Progress is 0..100; Step names the
// pipeline stage currently running and empties once the run completes
type Task struct {
	ID        string     `json:"task_id"`
	VideoID   string     `json:"video_id"`
	Status    TaskStatus `json:"status"`
	Progress  float64    `json:"progress"`
	Step      string     `json:"current_step,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Error     string     `json:"error,omitempty"`
	Report    *Report    `json:"report,omitempty"`
}
