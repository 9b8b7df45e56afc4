package audioex_test

import (
	"testing"

	"clipscout/internal/core/audioex"
	"clipscout/internal/platform/testkit"
)

// curve builds a baseline curve of n frames with high stretches overwritten
func curve(n int, base float64, highs map[int]float64) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = base
	}
	for i, v := range highs {
		xs[i] = v
	}
	return xs
}

func TestDetectVolume(t *testing.T) {
	t.Parallel()

	d := audioex.New(audioex.Config{})

	t.Run("sustained loud run yields one centered point", func(t *testing.T) {
		t.Parallel()

		highs := map[int]float64{}
		for i := 40; i < 50; i++ {
			highs[i] = 1.0
		}
		pts := d.DetectVolume(curve(100, 0.1, highs), 100)
		if len(pts) != 1 {
			t.Fatalf("got %d points, want 1: %+v", len(pts), pts)
		}
		p := pts[0]
		testkit.InDelta(t, p.Time, 45.0, 1e-9)
		testkit.InDelta(t, p.Intensity, 1.0, 1e-9)
		testkit.InDelta(t, p.Duration, 9.0, 1e-9)
		if p.Kind != audioex.KindVolume {
			t.Fatalf("kind = %q", p.Kind)
		}
	})

	t.Run("short dips stay inside one run", func(t *testing.T) {
		t.Parallel()

		highs := map[int]float64{}
		for _, i := range []int{10, 11, 12, 16, 17, 18} {
			highs[i] = 1.0
		}
		pts := d.DetectVolume(curve(100, 0.1, highs), 100)
		if len(pts) != 1 {
			t.Fatalf("gap of 4 frames should bridge, got %+v", pts)
		}
	})

	t.Run("runs below the minimum length are noise", func(t *testing.T) {
		t.Parallel()

		pts := d.DetectVolume(curve(100, 0.1, map[int]float64{20: 1.0, 21: 1.0}), 100)
		if len(pts) != 0 {
			t.Fatalf("two-frame run should be dropped, got %+v", pts)
		}
	})

	t.Run("flat curve yields nothing", func(t *testing.T) {
		t.Parallel()

		if pts := d.DetectVolume(curve(50, 0.5, nil), 50); len(pts) != 0 {
			t.Fatalf("flat curve gave %+v", pts)
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()

		if pts := d.DetectVolume(nil, 100); pts != nil {
			t.Fatalf("nil curve gave %+v", pts)
		}
		if pts := d.DetectVolume(curve(10, 0.1, nil), 0); pts != nil {
			t.Fatalf("zero duration gave %+v", pts)
		}
	})
}

func TestDetectPitch(t *testing.T) {
	t.Parallel()

	d := audioex.New(audioex.Config{PitchStride: 2})

	highs := map[int]float64{}
	for i := 10; i < 15; i++ {
		highs[i] = 400
	}
	pts := d.DetectPitch(curve(50, 100, highs), 50)
	if len(pts) != 3 {
		t.Fatalf("stride 2 over 5 qualifying frames should give 3 points, got %+v", pts)
	}
	for _, p := range pts {
		if p.Kind != audioex.KindPitch {
			t.Fatalf("kind = %q", p.Kind)
		}
		testkit.InDelta(t, p.Intensity, 0.4, 1e-9)
		testkit.InDelta(t, p.Duration, 1.0, 1e-9)
	}
	testkit.InDelta(t, pts[0].Time, 10.0, 1e-9)
}

func TestDetectMergesAndCaps(t *testing.T) {
	t.Parallel()

	d := audioex.New(audioex.Config{PitchStride: 1, MaxPoints: 2})

	volHighs := map[int]float64{}
	for i := 80; i < 90; i++ {
		volHighs[i] = 1.0
	}
	pitchHighs := map[int]float64{}
	for i := 10; i < 15; i++ {
		pitchHighs[i] = 400
	}

	pts := d.Detect(curve(100, 0.1, volHighs), curve(100, 100, pitchHighs), 100)
	if len(pts) != 2 {
		t.Fatalf("cap of 2 not applied, got %d points", len(pts))
	}
	// earliest points survive the cap, rest of the tail is dropped
	for i := 1; i < len(pts); i++ {
		if pts[i].Time < pts[i-1].Time {
			t.Fatalf("points out of order: %+v", pts)
		}
	}
	if pts[len(pts)-1].Kind == audioex.KindVolume {
		t.Fatalf("late volume run should have been truncated: %+v", pts)
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	d := audioex.New(audioex.Config{})

	t.Run("flat audio scores zero", func(t *testing.T) {
		t.Parallel()

		testkit.InDelta(t, d.Score(curve(50, 0.5, nil), curve(50, 100, nil)), 0, 1e-9)
	})

	t.Run("loudness variance drives the score", func(t *testing.T) {
		t.Parallel()

		loud := make([]float64, 100)
		for i := range loud {
			if i%2 == 0 {
				loud[i] = 10
			} else {
				loud[i] = -10
			}
		}
		// variance 100 saturates the loudness share at its 0.7 weight
		testkit.InDelta(t, d.Score(loud, curve(100, 100, nil)), 70, 1e-9)
	})

	t.Run("score is clamped to 100", func(t *testing.T) {
		t.Parallel()

		loud := make([]float64, 100)
		for i := range loud {
			if i%2 == 0 {
				loud[i] = 1000
			} else {
				loud[i] = -1000
			}
		}
		testkit.InDelta(t, d.Score(loud, nil), 100, 1e-9)
	})
}
