// Package correlate pairs hotspot times with nearby reasoner annotations and
// grades the annotation text into qualitative score tiers
package correlate

import (
	"sort"
	"strings"
)

// DefaultTolerance is the largest distance in seconds at which an annotation
// still counts as describing a hotspot
const DefaultTolerance = 15

// Annotation is one externally produced highlight note
type Annotation struct {
	Time   int    `json:"time"`
	Reason string `json:"reason"`
}

// Category names the keyword family that graded a reason
type Category string

const (
	CategoryClimax  Category = "emotional_climax"
	CategoryHumor   Category = "humor"
	CategoryInsight Category = "insight"
	CategoryGeneric Category = "general"
	CategoryNone    Category = "none"
)

// FallbackReason is attached to hotspots no annotation describes
const FallbackReason = "視聴者の注目ポイント"

// keyword families in priority order; the first family with a hit decides
var tiers = []struct {
	cat   Category
	score float64
	words []string
}{
	{CategoryClimax, 100, []string{"感動", "クライマックス", "climax", "emotional", "moving"}},
	{CategoryHumor, 90, []string{"面白い", "ユーモア", "funny", "humor"}},
	{CategoryInsight, 80, []string{"学び", "有益", "insight", "educational"}},
}

const (
	matchedScore = 70 // annotation found but no keyword family hit
	defaultScore = 50 // nothing within tolerance
)

// Classify grades a reason text. English keywords match case-insensitively
func Classify(reason string) (Category, float64) {
	lower := strings.ToLower(reason)
	for _, tier := range tiers {
		for _, w := range tier.words {
			if strings.Contains(lower, w) {
				return tier.cat, tier.score
			}
		}
	}
	return CategoryGeneric, matchedScore
}

// Nearest returns the first annotation within tolerance seconds of t.
// Annotations are checked in input order; the first hit wins even when a
// later one is closer
func Nearest(t int, anns []Annotation, tolerance int) (Annotation, bool) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	for _, a := range anns {
		d := t - a.Time
		if d < 0 {
			d = -d
		}
		if d <= tolerance {
			return a, true
		}
	}
	return Annotation{}, false
}

// Match is the qualitative grade of one hotspot time
type Match struct {
	Matched  bool     `json:"matched"`
	Category Category `json:"category"`
	Score    float64  `json:"score"`
	Reason   string   `json:"reason"`
}

// Correlate grades each time against the annotation list. Annotations are
// considered in ascending time order regardless of input order, so the
// earliest one within tolerance wins. Unmatched times get the default tier
// and the fallback reason
func Correlate(times []int, anns []Annotation, tolerance int) []Match {
	sorted := make([]Annotation, len(anns))
	copy(sorted, anns)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	out := make([]Match, len(times))
	for i, t := range times {
		a, ok := Nearest(t, sorted, tolerance)
		if !ok {
			out[i] = Match{Category: CategoryNone, Score: defaultScore, Reason: FallbackReason}
			continue
		}
		cat, score := Classify(a.Reason)
		out[i] = Match{Matched: true, Category: cat, Score: score, Reason: a.Reason}
	}
	return out
}
