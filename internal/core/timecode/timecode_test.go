package timecode_test

import (
	"testing"

	"clipscout/internal/core/timecode"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1:30", 90, true},
		{"01:30", 90, true},
		{"0:05", 5, true},
		{"1:02:03", 3723, true},
		{"10:00:00", 36000, true},
		{"90", 0, false},
		{"1:2:3:4", 0, false},
		{"a:30", 0, false},
		{"1:-5", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := timecode.Parse(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("Parse(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	t.Parallel()

	for _, sec := range []int{0, 5, 59, 60, 90, 3599, 3600, 3723, 36000} {
		got, ok := timecode.Parse(timecode.Format(sec))
		if !ok || got != sec {
			t.Fatalf("round trip %d via %q gave (%d, %v)", sec, timecode.Format(sec), got, ok)
		}
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("clock forms", func(t *testing.T) {
		t.Parallel()

		ms := timecode.Scan("best part at 1:30 and again 1:02:03")
		if len(ms) != 2 {
			t.Fatalf("got %d mentions, want 2: %+v", len(ms), ms)
		}
		if ms[0].Seconds != 90 || ms[1].Seconds != 3723 {
			t.Fatalf("seconds = %d, %d", ms[0].Seconds, ms[1].Seconds)
		}
	})

	t.Run("japanese and letter forms", func(t *testing.T) {
		t.Parallel()

		ms := timecode.Scan("1分30秒が最高、see also 2m05s")
		if len(ms) != 2 {
			t.Fatalf("got %d mentions, want 2: %+v", len(ms), ms)
		}
		if ms[0].Seconds != 90 || ms[1].Seconds != 125 {
			t.Fatalf("seconds = %d, %d", ms[0].Seconds, ms[1].Seconds)
		}
	})

	t.Run("fullwidth digits fold to ascii", func(t *testing.T) {
		t.Parallel()

		ms := timecode.Scan("１：３０のところ好き")
		if len(ms) != 1 || ms[0].Seconds != 90 {
			t.Fatalf("got %+v, want one mention at 90s", ms)
		}
	})

	t.Run("consumed span is not rematched", func(t *testing.T) {
		t.Parallel()

		// the :02: inside 1:02:03 must not also match as a short clock form
		ms := timecode.Scan("1:02:03")
		if len(ms) != 1 || ms[0].Seconds != 3723 {
			t.Fatalf("got %+v, want single mention at 3723s", ms)
		}
	})

	t.Run("no mentions", func(t *testing.T) {
		t.Parallel()

		if ms := timecode.Scan("great video, loved it"); len(ms) != 0 {
			t.Fatalf("got %+v, want none", ms)
		}
		if ms := timecode.Scan(""); ms != nil {
			t.Fatalf("got %+v for empty input", ms)
		}
	})
}
