// Package service contains the analysis pipeline workflows
package service

import (
	"context"
	"math"
	"time"

	"clipscout/internal/core/audioex"
	"clipscout/internal/core/correlate"
	"clipscout/internal/core/hotspot"
	"clipscout/internal/core/scoring"
	"clipscout/internal/core/timecode"
	perr "clipscout/internal/platform/errors"
	"clipscout/internal/platform/logger"
	"clipscout/internal/services/analysis/domain"
	"clipscout/internal/services/analysis/repo"

	"github.com/google/uuid"
)

// Service defines the analysis service contract
type Service interface {
	domain.ServicePort
}

// Config tunes the pipeline. Zero fields fall back to the built-in defaults;
// weight overrides must still sum to 1 or New rejects them
type Config struct {
	Bucket         hotspot.Config
	Audio          audioex.Config
	Tolerance      int
	QualityWeights map[string]float64
	ClipWeights    map[string]float64
}

// Svc implements the analysis service
type Svc struct {
	repo  repo.Storage
	det   *audioex.Detector
	cfg   Config
	tasks *taskRegistry
	log   logger.Logger
}

// New constructs the analysis service. repo may be nil when persistence is
// disabled; invalid weight vectors are rejected here rather than at request
// time
func New(st repo.Storage, cfg Config) (*Svc, error) {
	if cfg.QualityWeights == nil {
		cfg.QualityWeights = scoring.QualityWeights()
	}
	if cfg.ClipWeights == nil {
		cfg.ClipWeights = scoring.ClipWeights()
	}
	if err := checkWeights(cfg.QualityWeights, "quality"); err != nil {
		return nil, err
	}
	if err := checkWeights(cfg.ClipWeights, "clip"); err != nil {
		return nil, err
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = correlate.DefaultTolerance
	}
	return &Svc{
		repo:  st,
		det:   audioex.New(cfg.Audio),
		cfg:   cfg,
		tasks: newTaskRegistry(),
		log:   *logger.Named("analysis"),
	}, nil
}

func checkWeights(w map[string]float64, name string) error {
	var sum float64
	for _, v := range w {
		if v < 0 {
			return perr.InvalidArgf("%s weights: negative weight", name)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		return perr.InvalidArgf("%s weights sum to %v, want 1", name, sum)
	}
	return nil
}

// pipeline stage names reported on async task snapshots, with the progress
// value each stage starts at
const (
	stepEngagement = "engagement"
	stepAudio      = "audio"
	stepClips      = "clips"
	stepQuality    = "quality"
	stepPersist    = "persist"
)

// Analyze runs the full pipeline: engagement summary, comment hotspots,
// audio excitement, annotation correlation, clip scoring and the optional
// quality breakdown. Sections without input stay zero-valued
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.Report, error) {
	return s.analyze(ctx, in, func(float64, string) {})
}

// analyze is the stage-by-stage pipeline; track is called as each stage
// begins so async runs can surface progress
func (s *Svc) analyze(ctx context.Context, in domain.AnalyzeInput, track func(progress float64, step string)) (domain.Report, error) {
	start := time.Now()

	track(20, stepEngagement)
	r := domain.Report{
		ID:          uuid.NewString(),
		VideoID:     in.Video.VideoID,
		Title:       in.Video.Title,
		GeneratedAt: time.Now().UTC(),
		Engagement:  scoring.Snapshot(in.Comments),
	}

	track(40, stepAudio)
	if in.Audio != nil {
		r.AudioPoints = s.det.Detect(in.Audio.Loudness, in.Audio.Pitch, in.Audio.Duration)
		r.AudioScore = s.det.Score(in.Audio.Loudness, in.Audio.Pitch)
	}

	track(60, stepClips)
	clips, err := s.scoreClips(in.Comments, in.Annotations)
	if err != nil {
		return domain.Report{}, err
	}
	r.Clips = clips

	track(80, stepQuality)
	if in.KPIs != nil {
		b, err := scoring.Quality(*in.KPIs, r.AudioScore, s.cfg.QualityWeights)
		if err != nil {
			return domain.Report{}, err
		}
		r.Quality = &b
	}

	track(90, stepPersist)
	if in.Persist && s.repo != nil {
		if err := s.repo.Insert(ctx, r); err != nil {
			return domain.Report{}, err
		}
	}

	s.log.Debug().
		Str("video_id", r.VideoID).
		Int("clips", len(r.Clips)).
		Int("audio_points", len(r.AudioPoints)).
		Dur("took", time.Since(start)).
		Msg("analysis complete")
	return r, nil
}

func (s *Svc) scoreClips(comments []hotspot.Comment, anns []domain.Annotation) ([]scoring.Clip, error) {
	hots := hotspot.Extract(comments, s.cfg.Bucket)
	times := make([]int, len(hots))
	for i, h := range hots {
		times[i] = h.Time
	}
	matches := correlate.Correlate(times, parseAnnotations(anns), s.cfg.Tolerance)
	clips, err := scoring.ScoreClips(hots, matches, s.cfg.ClipWeights)
	if err != nil {
		return nil, err
	}
	return scoring.Rank(clips), nil
}

// parseAnnotations converts wire annotations to seconds, dropping entries
// with unparseable timestamps
func parseAnnotations(in []domain.Annotation) []correlate.Annotation {
	out := make([]correlate.Annotation, 0, len(in))
	for _, a := range in {
		sec, ok := timecode.Parse(a.Time)
		if !ok {
			continue
		}
		out = append(out, correlate.Annotation{Time: sec, Reason: a.Reason})
	}
	return out
}

// Engagement runs only the comment engagement summary
func (s *Svc) Engagement(_ context.Context, in domain.EngagementInput) (scoring.Engagement, error) {
	return scoring.Snapshot(in.Comments), nil
}

// Clips runs only the hotspot, correlation and clip scoring stages
func (s *Svc) Clips(_ context.Context, in domain.ClipsInput) ([]scoring.Clip, error) {
	return s.scoreClips(in.Comments, in.Annotations)
}

// Report fetches a stored report by id
func (s *Svc) Report(ctx context.Context, id string) (domain.Report, error) {
	if s.repo == nil {
		return domain.Report{}, perr.Newf(perr.ErrorCodeUnavailable, "report storage disabled")
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.Report{}, perr.InvalidArgf("report id %q is not a uuid", id)
	}
	return s.repo.Get(ctx, id)
}

// Reports lists stored report summaries
func (s *Svc) Reports(ctx context.Context, in domain.ListReportsInput) ([]domain.ReportSummary, error) {
	if s.repo == nil {
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "report storage disabled")
	}
	return s.repo.List(ctx, in.VideoID, in.Limit)
}
