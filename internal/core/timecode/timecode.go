// Package timecode converts between human video timestamps ("M:SS",
// "H:MM:SS") and integer seconds, and scans free text for timestamp mentions.
// Scanning folds fullwidth digits and colons to ASCII first, so timestamps
// embedded in Japanese comments are found too
package timecode

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// Parse converts "M:SS" or "H:MM:SS" to seconds.
// Field width is not validated; any other shape or a non-numeric field
// reports ok=false so callers can skip the input without aborting a batch
func Parse(s string) (sec int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 2, 3:
	default:
		return 0, false
	}
	vals := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, false
		}
		vals[i] = v
	}
	if len(vals) == 3 {
		return vals[0]*3600 + vals[1]*60 + vals[2], true
	}
	return vals[0]*60 + vals[1], true
}

// Format renders seconds as zero-padded "MM:SS", or "HH:MM:SS" once an
// hours field is needed
func Format(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Mention is one timestamp found inside free text
type Mention struct {
	Seconds int
	Raw     string
}

// pattern families in priority order; a span consumed by an earlier family
// is never re-matched by a later one
var (
	reClock  = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	reKanji  = regexp.MustCompile(`(\d{1,3})分(\d{1,2})秒`)
	reLetter = regexp.MustCompile(`\b(\d{1,3})m(\d{1,2})s\b`)
)

// foldPool holds transformer chains that strip format runes and fold
// fullwidth forms to ASCII before matching
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

func fold(s string) string {
	tr := foldPool.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	return out
}

type span struct{ start, end int }

func overlaps(taken []span, start, end int) bool {
	for _, t := range taken {
		if start < t.end && end > t.start {
			return true
		}
	}
	return false
}

// Scan finds every timestamp mention in text, in order of appearance.
// Malformed fragments are simply not matched; Scan never fails
func Scan(text string) []Mention {
	if text == "" {
		return nil
	}
	text = fold(text)

	var taken []span
	var out []mentionAt

	for fam, re := range []*regexp.Regexp{reClock, reKanji, reLetter} {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if overlaps(taken, loc[0], loc[1]) {
				continue
			}
			sec, ok := famSeconds(fam, text, loc)
			if !ok {
				continue
			}
			taken = append(taken, span{loc[0], loc[1]})
			out = append(out, mentionAt{Mention{Seconds: sec, Raw: text[loc[0]:loc[1]]}, loc[0]})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].at < out[j].at })
	ms := make([]Mention, len(out))
	for i, m := range out {
		ms[i] = m.Mention
	}
	return ms
}

type mentionAt struct {
	Mention
	at int
}

// famSeconds interprets the submatches of pattern family fam
func famSeconds(fam int, text string, loc []int) (int, bool) {
	group := func(n int) (int, bool) {
		if 2*n+1 >= len(loc) || loc[2*n] < 0 {
			return 0, false
		}
		v, err := strconv.Atoi(text[loc[2*n]:loc[2*n+1]])
		return v, err == nil
	}
	a, okA := group(1)
	b, okB := group(2)
	if !okA || !okB {
		return 0, false
	}
	switch fam {
	case 0: // clock: a:b or a:b:c
		if c, okC := group(3); okC {
			return a*3600 + b*60 + c, true
		}
		return a*60 + b, true
	default: // N分M秒 and NmMs are both minutes+seconds
		return a*60 + b, true
	}
}
