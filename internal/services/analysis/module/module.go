// Package module wires the analysis service into the API
package module

import (
	"clipscout/internal/core/audioex"
	"clipscout/internal/core/hotspot"
	"clipscout/internal/core/scoring"
	"clipscout/internal/platform/config"
	phttp "clipscout/internal/platform/net/http"
	"clipscout/internal/platform/store"
	analysishttp "clipscout/internal/services/analysis/http"
	"clipscout/internal/services/analysis/repo"
	svc "clipscout/internal/services/analysis/service"
)

// Module owns the analysis service and its routes
type Module struct {
	svc *svc.Svc
}

// New builds the analysis module from config. st may be nil when the
// deployment runs without report storage
func New(cfg config.Conf, st *store.Store) (*Module, error) {
	var storage repo.Storage
	if st != nil && st.PG != nil {
		storage = repo.NewPG(st.PG)
	}

	s, err := svc.New(storage, svc.Config{
		Bucket: hotspot.Config{
			BucketWidth: cfg.MayInt("BUCKET_WIDTH", 0),
		},
		Audio: audioex.Config{
			VolumeK:     cfg.MayFloat("AUDIO_VOLUME_K", 0),
			PitchK:      cfg.MayFloat("AUDIO_PITCH_K", 0),
			FrameGap:    cfg.MayInt("AUDIO_FRAME_GAP", 0),
			MinRun:      cfg.MayInt("AUDIO_MIN_RUN", 0),
			RunNorm:     cfg.MayFloat("AUDIO_RUN_NORM", 0),
			PitchStride: cfg.MayInt("AUDIO_PITCH_STRIDE", 0),
			MaxPoints:   cfg.MayInt("AUDIO_MAX_POINTS", 0),
		},
		Tolerance:      cfg.MayInt("TOLERANCE_SECONDS", 0),
		QualityWeights: qualityWeights(cfg),
		ClipWeights:    clipWeights(cfg),
	})
	if err != nil {
		return nil, err
	}
	return &Module{svc: s}, nil
}

// MountRoutes mounts the analysis routes under /analysis and /reports
func (m *Module) MountRoutes(r phttp.Router) {
	analysishttp.Register(r, m.svc)
}

// Service exposes the service port for other modules and tests
func (m *Module) Service() svc.Service { return m.svc }

// qualityWeights reads per-pillar overrides, falling back to the defaults.
// A partial override still has to sum to 1; the service rejects it otherwise
func qualityWeights(cfg config.Conf) map[string]float64 {
	d := scoring.QualityWeights()
	return map[string]float64{
		scoring.PillarNarrative:  cfg.MayFloat("WEIGHT_NARRATIVE", d[scoring.PillarNarrative]),
		scoring.PillarHook:       cfg.MayFloat("WEIGHT_HOOK", d[scoring.PillarHook]),
		scoring.PillarEngagement: cfg.MayFloat("WEIGHT_ENGAGEMENT", d[scoring.PillarEngagement]),
		scoring.PillarTechnical:  cfg.MayFloat("WEIGHT_TECHNICAL", d[scoring.PillarTechnical]),
	}
}

func clipWeights(cfg config.Conf) map[string]float64 {
	d := scoring.ClipWeights()
	return map[string]float64{
		scoring.ClipQuantitative: cfg.MayFloat("WEIGHT_QUANTITATIVE", d[scoring.ClipQuantitative]),
		scoring.ClipQualitative:  cfg.MayFloat("WEIGHT_QUALITATIVE", d[scoring.ClipQualitative]),
	}
}
