package srs

import (
	"math"
	"time"
)

// Passed reports whether score counts as a successful recall.
func Passed(score int) bool {
	return score >= PassingScore
}

// ApplyReview returns q updated for a review scored 0-100 at now. Scores
// outside that range are clamped. The input is not modified.
func ApplyReview(q Question, score int, now time.Time) Question {
	score = clampInt(score, 0, 100)
	out := q

	if !Passed(score) {
		out.StruggleCount++
		struggled := now
		out.LastStruggledAt = &struggled
		out.ReviewInterval = 1
		out.ReviewEase = ClampEase(out.ReviewEase - 0.2)
	} else {
		if score >= EasyScore {
			out.ReviewEase += 0.1
		}
		// The interval grows by the raw ease; the cap applies afterwards.
		switch q.ReviewCount {
		case 0:
			out.ReviewInterval = 1
		case 1:
			out.ReviewInterval = 6
		default:
			out.ReviewInterval = growInterval(q.ReviewInterval, out.ReviewEase)
		}
		out.ReviewEase = ClampEase(out.ReviewEase)
	}

	reviewed := now
	out.LastReviewed = &reviewed
	out.ReviewCount++
	return out
}

// NextReviewDate returns when q is next due, measured from now.
func NextReviewDate(q Question, now time.Time) time.Time {
	return now.AddDate(0, 0, DaysUntilReview(q, now))
}

// ClampEase bounds an ease factor to [MinEase, MaxEase]. The result is
// rounded to two decimals so repeated +0.1/-0.2 steps do not drift.
func ClampEase(ease float64) float64 {
	ease = math.Round(ease*100) / 100
	return math.Max(MinEase, math.Min(MaxEase, ease))
}

// growInterval returns ceil(interval*ease), ignoring float noise below
// one millionth of a day.
func growInterval(interval int, ease float64) int {
	if interval < 0 {
		interval = 0
	}
	product := math.Round(float64(interval)*ease*1e6) / 1e6
	return int(math.Ceil(product))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
