package srs

import (
	"math"
	"sort"
	"time"
)

// Bucket names a review bucket.
type Bucket string

const (
	BucketToReview   Bucket = "to_review"
	BucketStruggling Bucket = "struggling"
	BucketNew        Bucket = "new"
	BucketLearning   Bucket = "learning"
)

// Buckets partitions a set of questions by review need. Every input question
// lands in exactly one bucket.
type Buckets struct {
	ToReview   []Question `json:"toReview"`
	Learning   []Question `json:"learning"`
	New        []Question `json:"new"`
	Struggling []Question `json:"struggling"`
}

// Len returns the total number of questions across all buckets.
func (b Buckets) Len() int {
	return len(b.ToReview) + len(b.Learning) + len(b.New) + len(b.Struggling)
}

// Counts returns the size of each bucket, keyed by bucket name.
func Counts(b Buckets) map[Bucket]int {
	return map[Bucket]int{
		BucketToReview:   len(b.ToReview),
		BucketStruggling: len(b.Struggling),
		BucketNew:        len(b.New),
		BucketLearning:   len(b.Learning),
	}
}

// Queue concatenates the buckets in practice priority order:
// to-review, struggling, new, learning.
func (b Buckets) Queue() []Question {
	out := make([]Question, 0, b.Len())
	out = append(out, b.ToReview...)
	out = append(out, b.Struggling...)
	out = append(out, b.New...)
	out = append(out, b.Learning...)
	return out
}

// DaysUntilReview returns whole days until q is due again. Returns 0 when the
// question is already due or has no recorded review time.
func DaysUntilReview(q Question, now time.Time) int {
	if q.LastReviewed == nil {
		return 0
	}
	days := math.Ceil(float64(q.ReviewInterval) - daysSince(*q.LastReviewed, now))
	if days < 0 {
		return 0
	}
	return int(days)
}

// OverdueDays returns how far past its interval q is, in fractional days.
// Questions without a review time are treated as infinitely overdue.
func OverdueDays(q Question, now time.Time) float64 {
	if q.LastReviewed == nil {
		return math.Inf(1)
	}
	return daysSince(*q.LastReviewed, now) - float64(q.ReviewInterval)
}

// Classify returns the bucket a single question belongs to.
func Classify(q Question, now time.Time) Bucket {
	switch {
	case q.ReviewCount == 0:
		return BucketNew
	case DaysUntilReview(q, now) <= 0:
		return BucketToReview
	case q.ReviewEase < StrugglingEase || q.StruggleCount > StrugglingCount:
		return BucketStruggling
	default:
		return BucketLearning
	}
}

// Categorize partitions questions into review buckets. ToReview is ordered
// most overdue first; ties keep the input order.
func Categorize(questions []Question, now time.Time) Buckets {
	var b Buckets
	for _, q := range questions {
		switch Classify(q, now) {
		case BucketNew:
			b.New = append(b.New, q)
		case BucketToReview:
			b.ToReview = append(b.ToReview, q)
		case BucketStruggling:
			b.Struggling = append(b.Struggling, q)
		default:
			b.Learning = append(b.Learning, q)
		}
	}

	sort.SliceStable(b.ToReview, func(i, j int) bool {
		return OverdueDays(b.ToReview[i], now) > OverdueDays(b.ToReview[j], now)
	})
	return b
}
