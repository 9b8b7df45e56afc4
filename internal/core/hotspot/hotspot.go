// Package hotspot clusters timestamp mentions harvested from viewer comments
// into fixed-width time buckets and ranks the buckets by attention
package hotspot

import (
	"sort"

	"clipscout/internal/core/timecode"
)

// DefaultBucketWidth is the clustering window in seconds
const DefaultBucketWidth = 30

// Comment is one viewer comment as supplied by the caller
type Comment struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	LikeCount int    `json:"like_count"`
}

// Snippet is the per-comment evidence kept on a hotspot
type Snippet struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Hotspot is one clustered moment of viewer attention.
// Time is the first mention that opened the bucket, not the bucket floor,
// so reports point at the moment viewers actually named
type Hotspot struct {
	BucketKey     int       `json:"-"`
	Time          int       `json:"time"`
	FormattedTime string    `json:"formatted_time"`
	MentionCount  int       `json:"mention_count"`
	TotalLikes    int       `json:"total_likes"`
	Comments      []Snippet `json:"comments"`
}

// Config tunes extraction; the zero value selects the defaults
type Config struct {
	BucketWidth int
}

func (c Config) withDefaults() Config {
	if c.BucketWidth <= 0 {
		c.BucketWidth = DefaultBucketWidth
	}
	return c
}

// Extract scans every comment for timestamp mentions and folds them into
// buckets of cfg.BucketWidth seconds. Comments without mentions contribute
// nothing; a comment naming several timestamps contributes to each bucket.
// Results are ordered by mention count descending, earliest bucket first on
// ties
func Extract(comments []Comment, cfg Config) []Hotspot {
	cfg = cfg.withDefaults()

	byBucket := make(map[int]*Hotspot)
	for _, c := range comments {
		author := c.Author
		if author == "" {
			author = "Unknown"
		}
		for _, m := range timecode.Scan(c.Text) {
			key := m.Seconds / cfg.BucketWidth * cfg.BucketWidth
			h, ok := byBucket[key]
			if !ok {
				h = &Hotspot{
					BucketKey:     key,
					Time:          m.Seconds,
					FormattedTime: timecode.Format(m.Seconds),
				}
				byBucket[key] = h
			}
			h.MentionCount++
			h.TotalLikes += c.LikeCount
			h.Comments = append(h.Comments, Snippet{Text: c.Text, Author: author, Likes: c.LikeCount})
		}
	}

	out := make([]Hotspot, 0, len(byBucket))
	for _, h := range byBucket {
		out = append(out, *h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MentionCount != out[j].MentionCount {
			return out[i].MentionCount > out[j].MentionCount
		}
		return out[i].BucketKey < out[j].BucketKey
	})
	return out
}
