// Package audioex finds excitement points in loudness and pitch curves.
// Curves are uniform frame sequences; frame i of an n-frame curve maps to
// time duration*i/n seconds
package audioex

import (
	"math"
	"sort"
)

// Kind tags which curve produced a point
type Kind string

const (
	KindVolume Kind = "volume"
	KindPitch  Kind = "pitch"
)

// Point is one detected excitement moment
type Point struct {
	Time      float64 `json:"time"`
	Duration  float64 `json:"duration"`
	Intensity float64 `json:"intensity"`
	Kind      Kind    `json:"kind"`
	Level     float64 `json:"level"`
}

// Config tunes detection; zero fields fall back to the defaults
type Config struct {
	// VolumeK and PitchK scale the stddev added to the mean to form the
	// qualification threshold for each curve
	VolumeK float64
	PitchK  float64

	// FrameGap is the largest dip below threshold that stays inside one
	// loudness run; MinRun discards runs shorter than this many frames
	FrameGap int
	MinRun   int

	// RunNorm is the run length at which loudness intensity saturates at 1
	RunNorm float64

	// PitchStride decimates qualifying pitch frames; PitchIntensity and
	// PitchDuration are fixed for every pitch point
	PitchStride    int
	PitchIntensity float64
	PitchDuration  float64

	// MaxPoints caps the merged result, keeping the earliest points
	MaxPoints int

	// VolumeWeight and PitchWeight split the overall excitement score
	// between loudness and pitch variance; the *VarNorm values are the
	// variances treated as full scale
	VolumeWeight  float64
	PitchWeight   float64
	VolumeVarNorm float64
	PitchVarNorm  float64
}

// DefaultConfig returns the tuning used when callers pass a zero Config
func DefaultConfig() Config {
	return Config{
		VolumeK:        0.8,
		PitchK:         0.6,
		FrameGap:       5,
		MinRun:         3,
		RunNorm:        10,
		PitchStride:    30,
		PitchIntensity: 0.4,
		PitchDuration:  1.0,
		MaxPoints:      15,
		VolumeWeight:   0.7,
		PitchWeight:    0.3,
		VolumeVarNorm:  100,
		PitchVarNorm:   1000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.VolumeK <= 0 {
		c.VolumeK = d.VolumeK
	}
	if c.PitchK <= 0 {
		c.PitchK = d.PitchK
	}
	if c.FrameGap <= 0 {
		c.FrameGap = d.FrameGap
	}
	if c.MinRun <= 0 {
		c.MinRun = d.MinRun
	}
	if c.RunNorm <= 0 {
		c.RunNorm = d.RunNorm
	}
	if c.PitchStride <= 0 {
		c.PitchStride = d.PitchStride
	}
	if c.PitchIntensity <= 0 {
		c.PitchIntensity = d.PitchIntensity
	}
	if c.PitchDuration <= 0 {
		c.PitchDuration = d.PitchDuration
	}
	if c.MaxPoints <= 0 {
		c.MaxPoints = d.MaxPoints
	}
	if c.VolumeWeight <= 0 {
		c.VolumeWeight = d.VolumeWeight
	}
	if c.PitchWeight <= 0 {
		c.PitchWeight = d.PitchWeight
	}
	if c.VolumeVarNorm <= 0 {
		c.VolumeVarNorm = d.VolumeVarNorm
	}
	if c.PitchVarNorm <= 0 {
		c.PitchVarNorm = d.PitchVarNorm
	}
	return c
}

// Detector runs excitement detection with one tuning
type Detector struct {
	cfg Config
}

// New builds a Detector, filling unset Config fields with defaults
func New(cfg Config) *Detector {
	return &Detector{cfg: cfg.withDefaults()}
}

// Config reports the effective tuning after defaults were applied
func (d *Detector) Config() Config { return d.cfg }

// DetectVolume finds sustained loud runs in a loudness curve.
// A frame qualifies when it exceeds mean + VolumeK*stddev; qualifying frames
// with gaps of at most FrameGap frames form one run, runs shorter than
// MinRun are dropped. Each run yields a point at its center frame with
// intensity min(1, runLen/RunNorm). A flat curve yields nothing
func (d *Detector) DetectVolume(loudness []float64, duration float64) []Point {
	n := len(loudness)
	if n == 0 || duration <= 0 {
		return nil
	}
	mean, sd := meanStddev(loudness)
	threshold := mean + d.cfg.VolumeK*sd

	var idxs []int
	for i, v := range loudness {
		if v > threshold {
			idxs = append(idxs, i)
		}
	}
	if len(idxs) == 0 {
		return nil
	}

	at := func(i int) float64 { return duration * float64(i) / float64(n) }

	var out []Point
	runStart := 0
	for k := 1; k <= len(idxs); k++ {
		if k < len(idxs) && idxs[k]-idxs[k-1] <= d.cfg.FrameGap {
			continue
		}
		run := idxs[runStart:k]
		runStart = k
		if len(run) < d.cfg.MinRun {
			continue
		}
		center := run[len(run)/2]
		out = append(out, Point{
			Time:      at(center),
			Duration:  at(run[len(run)-1]) - at(run[0]),
			Intensity: math.Min(1, float64(len(run))/d.cfg.RunNorm),
			Kind:      KindVolume,
			Level:     loudness[center],
		})
	}
	return out
}

// DetectPitch samples every PitchStride-th frame whose pitch exceeds
// mean + PitchK*stddev. Pitch points carry a fixed intensity and duration
func (d *Detector) DetectPitch(pitch []float64, duration float64) []Point {
	n := len(pitch)
	if n == 0 || duration <= 0 {
		return nil
	}
	mean, sd := meanStddev(pitch)
	threshold := mean + d.cfg.PitchK*sd

	var idxs []int
	for i, v := range pitch {
		if v > threshold {
			idxs = append(idxs, i)
		}
	}

	var out []Point
	for k := 0; k < len(idxs); k += d.cfg.PitchStride {
		i := idxs[k]
		out = append(out, Point{
			Time:      duration * float64(i) / float64(n),
			Duration:  d.cfg.PitchDuration,
			Intensity: d.cfg.PitchIntensity,
			Kind:      KindPitch,
			Level:     pitch[i],
		})
	}
	return out
}

// Detect merges volume and pitch points, sorts them by time ascending and
// keeps at most MaxPoints of the earliest ones
func (d *Detector) Detect(loudness, pitch []float64, duration float64) []Point {
	pts := d.DetectVolume(loudness, duration)
	pts = append(pts, d.DetectPitch(pitch, duration)...)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Time < pts[j].Time })
	if len(pts) > d.cfg.MaxPoints {
		pts = pts[:d.cfg.MaxPoints]
	}
	return pts
}

// Score rates overall audio excitement on a 0..100 scale from the variance
// of the two curves. Flat curves score 0
func (d *Detector) Score(loudness, pitch []float64) float64 {
	volVar := variance(loudness)
	pitchVar := variance(pitch)
	score := 100 * (d.cfg.VolumeWeight*volVar/d.cfg.VolumeVarNorm +
		d.cfg.PitchWeight*pitchVar/d.cfg.PitchVarNorm)
	return math.Min(100, math.Max(0, score))
}

func meanStddev(xs []float64) (mean, sd float64) {
	mean = avg(xs)
	return mean, math.Sqrt(varAbout(xs, mean))
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return varAbout(xs, avg(xs))
}

func avg(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func varAbout(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(xs))
}
