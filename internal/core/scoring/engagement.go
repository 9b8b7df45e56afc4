package scoring

import (
	"strings"

	"clipscout/internal/core/hotspot"
)

// Sentiment splits comments into positive, negative and neutral fractions.
// The three fractions sum to 1 whenever comments exist, and are all zero
// otherwise
type Sentiment struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Engagement is a summary of comment activity on a video
type Engagement struct {
	TotalComments      int       `json:"total_comments"`
	TotalLikes         int       `json:"total_likes"`
	AvgLikesPerComment float64   `json:"avg_likes_per_comment"`
	EngagementRate     float64   `json:"engagement_rate"`
	Sentiment          Sentiment `json:"sentiment_distribution"`
}

// positive is checked first; a comment holding words from both lists
// counts as positive
var (
	positiveWords = []string{
		"良い", "最高", "素晴らしい", "面白い", "感動", "好き",
		"good", "great", "awesome", "amazing", "love", "best",
	}
	negativeWords = []string{
		"悪い", "つまらない", "微妙", "嫌い", "残念",
		"bad", "boring", "terrible", "worst", "hate",
	}
)

func sentimentOf(text string) int {
	lower := strings.ToLower(text)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return 1
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			return -1
		}
	}
	return 0
}

// Snapshot summarizes comment engagement. Zero comments yield the zero
// value rather than NaN fractions
func Snapshot(comments []hotspot.Comment) Engagement {
	if len(comments) == 0 {
		return Engagement{}
	}

	var likes, pos, neg int
	for _, c := range comments {
		likes += c.LikeCount
		switch sentimentOf(c.Text) {
		case 1:
			pos++
		case -1:
			neg++
		}
	}

	n := len(comments)
	return Engagement{
		TotalComments:      n,
		TotalLikes:         likes,
		AvgLikesPerComment: round2(float64(likes) / float64(n)),
		EngagementRate:     round2(float64(likes+n) / 1000),
		Sentiment: Sentiment{
			Positive: round2(float64(pos) / float64(n)),
			Negative: round2(float64(neg) / float64(n)),
			Neutral:  round2(float64(n-pos-neg) / float64(n)),
		},
	}
}
