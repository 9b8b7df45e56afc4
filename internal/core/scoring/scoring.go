// Package scoring turns raw signals into 0..100 scores: per-pillar video
// quality, per-clip composite scores and an engagement snapshot
package scoring

import (
	"math"
	"sort"

	"clipscout/internal/core/correlate"
	"clipscout/internal/core/hotspot"
	perr "clipscout/internal/platform/errors"
)

// Pillar names for the whole-video quality breakdown
const (
	PillarNarrative  = "narrative_retention"
	PillarHook       = "hook_effectiveness"
	PillarEngagement = "engagement_signals"
	PillarTechnical  = "technical_quality"
)

// Component names for the per-clip composite
const (
	ClipQuantitative = "quantitative_engagement"
	ClipQualitative  = "qualitative_insight"
)

// QualityWeights is the default pillar weight vector
func QualityWeights() map[string]float64 {
	return map[string]float64{
		PillarNarrative:  0.40,
		PillarHook:       0.30,
		PillarEngagement: 0.25,
		PillarTechnical:  0.05,
	}
}

// ClipWeights is the default clip component weight vector
func ClipWeights() map[string]float64 {
	return map[string]float64{
		ClipQuantitative: 0.6,
		ClipQualitative:  0.4,
	}
}

// weightEps is the tolerance for the weights-sum-to-one check
const weightEps = 1e-9

// Normalize maps raw onto a 0..100 scale against max and clamps.
// A non-positive max is treated as 1 so a degenerate batch cannot divide
// by zero
func Normalize(raw, max float64) float64 {
	if max <= 0 {
		max = 1
	}
	return math.Min(100, math.Max(0, raw/max*100))
}

// Composite computes the weighted sum of sub scores. The two maps must
// share a key set and weights must sum to 1; violations are caller bugs
// and reported as invalid-argument errors, never silently renormalized
func Composite(sub, weights map[string]float64) (float64, error) {
	if len(sub) != len(weights) {
		return 0, perr.InvalidArgf("composite: %d sub scores vs %d weights", len(sub), len(weights))
	}
	var sum, total float64
	for k, w := range weights {
		v, ok := sub[k]
		if !ok {
			return 0, perr.InvalidArgf("composite: no sub score for weight %q", k)
		}
		sum += w
		total += v * w
	}
	if math.Abs(sum-1) > weightEps {
		return 0, perr.InvalidArgf("composite: weights sum to %v, want 1", sum)
	}
	return total, nil
}

// KPIs are reasoner judgments on a 0..10 scale
type KPIs struct {
	Narrative float64 `json:"narrative" validate:"min=0,max=10"`
	Hook      float64 `json:"hook" validate:"min=0,max=10"`
	Emotional float64 `json:"emotional" validate:"min=0,max=10"`
}

// Breakdown is a quality score with its per-pillar parts
type Breakdown struct {
	Scores map[string]float64 `json:"scores"`
	Total  float64            `json:"total"`
}

// Quality normalizes the KPIs and the technical audio score (already 0..100)
// into the four pillars and composes them with the given weights
func Quality(k KPIs, technical float64, weights map[string]float64) (Breakdown, error) {
	scores := map[string]float64{
		PillarNarrative:  Normalize(k.Narrative, 10),
		PillarHook:       Normalize(k.Hook, 10),
		PillarEngagement: Normalize(k.Emotional, 10),
		PillarTechnical:  math.Min(100, math.Max(0, technical)),
	}
	total, err := Composite(scores, weights)
	if err != nil {
		return Breakdown{}, err
	}
	for p, s := range scores {
		scores[p] = round2(s)
	}
	return Breakdown{Scores: scores, Total: round2(total)}, nil
}

// Clip is a hotspot with its composite clip score attached
type Clip struct {
	hotspot.Hotspot
	ClipScore float64            `json:"clip_score"`
	Reason    string             `json:"reason"`
	Category  correlate.Category `json:"category"`
}

// ScoreClips composes a clip score for each hotspot: the mention count
// normalized against the batch maximum, weighted against the qualitative
// tier from its match. matches must be parallel to hots
func ScoreClips(hots []hotspot.Hotspot, matches []correlate.Match, weights map[string]float64) ([]Clip, error) {
	if len(hots) != len(matches) {
		return nil, perr.InvalidArgf("score clips: %d hotspots vs %d matches", len(hots), len(matches))
	}
	if len(hots) == 0 {
		return nil, nil
	}

	maxMention := 1
	for _, h := range hots {
		if h.MentionCount > maxMention {
			maxMention = h.MentionCount
		}
	}

	out := make([]Clip, len(hots))
	for i, h := range hots {
		m := matches[i]
		total, err := Composite(map[string]float64{
			ClipQuantitative: Normalize(float64(h.MentionCount), float64(maxMention)),
			ClipQualitative:  m.Score,
		}, weights)
		if err != nil {
			return nil, err
		}
		out[i] = Clip{
			Hotspot:   h,
			ClipScore: math.Round(total),
			Reason:    m.Reason,
			Category:  m.Category,
		}
	}
	return out, nil
}

// Rank orders clips by score descending. Equal scores keep their input
// order so repeated runs over the same data produce the same report
func Rank(clips []Clip) []Clip {
	out := make([]Clip, len(clips))
	copy(out, clips)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ClipScore > out[j].ClipScore })
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
