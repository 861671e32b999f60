package srs

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func ids(qs []Question) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d float64) *time.Time {
	t := testNow.Add(-time.Duration(d * 24 * float64(time.Hour)))
	return &t
}

func reviewed(id string, count, interval int, ease float64, last *time.Time) Question {
	q := NewQuestion(id, "u1", "content "+id, "")
	q.ReviewCount = count
	q.ReviewInterval = interval
	q.ReviewEase = ease
	q.LastReviewed = last
	return q
}

func TestDaysUntilReview_NeverReviewed(t *testing.T) {
	q := NewQuestion("q1", "u1", "x", "")
	if got := DaysUntilReview(q, testNow); got != 0 {
		t.Errorf("DaysUntilReview() = %d, want 0", got)
	}
}

func TestDaysUntilReview(t *testing.T) {
	cases := []struct {
		name     string
		interval int
		since    float64
		want     int
	}{
		{"fresh six day interval", 6, 0, 6},
		{"partial day rounds up", 6, 2.5, 4},
		{"exactly due", 6, 6, 0},
		{"overdue clamps to zero", 1, 10, 0},
		{"zero interval", 0, 0.1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := reviewed("q", 2, tc.interval, 2.5, daysAgo(tc.since))
			if got := DaysUntilReview(q, testNow); got != tc.want {
				t.Errorf("DaysUntilReview() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestOverdueDays_NilIsInfinite(t *testing.T) {
	q := reviewed("q", 1, 1, 2.5, nil)
	if got := OverdueDays(q, testNow); !math.IsInf(got, 1) {
		t.Errorf("OverdueDays() = %v, want +Inf", got)
	}
}

func TestCategorize_Buckets(t *testing.T) {
	questions := []Question{
		NewQuestion("new", "u1", "a", ""),
		reviewed("due", 1, 1, 2.5, daysAgo(3)),
		reviewed("low-ease", 3, 10, 1.8, daysAgo(1)),
		reviewed("learning", 2, 6, 2.5, daysAgo(1)),
	}
	struggler := reviewed("struggles", 4, 10, 2.4, daysAgo(1))
	struggler.StruggleCount = 4
	questions = append(questions, struggler)

	b := Categorize(questions, testNow)

	checks := []struct {
		bucket string
		got    []Question
		want   []string
	}{
		{"New", b.New, []string{"new"}},
		{"ToReview", b.ToReview, []string{"due"}},
		{"Struggling", b.Struggling, []string{"low-ease", "struggles"}},
		{"Learning", b.Learning, []string{"learning"}},
	}
	for _, c := range checks {
		if got := ids(c.got); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s = %v, want %v", c.bucket, got, c.want)
		}
	}
}

func TestCategorize_PartitionsEveryQuestion(t *testing.T) {
	var questions []Question
	for i := 0; i < 40; i++ {
		var last *time.Time
		if i%5 != 0 {
			last = daysAgo(float64(i % 9))
		}
		q := reviewed(string(rune('a'+i%26))+string(rune('0'+i/26)), i%4, i%7, 1.3+float64(i%10)*0.15, last)
		q.StruggleCount = i % 6
		questions = append(questions, q)
	}

	b := Categorize(questions, testNow)
	if b.Len() != len(questions) {
		t.Fatalf("Len() = %d, want %d", b.Len(), len(questions))
	}

	seen := map[string]int{}
	for _, q := range b.Queue() {
		seen[q.ID]++
	}
	for _, q := range questions {
		if seen[q.ID] != 1 {
			t.Errorf("question %s queued %d times", q.ID, seen[q.ID])
		}
	}
	for _, q := range b.New {
		if q.ReviewCount != 0 {
			t.Errorf("new bucket holds reviewed question %s", q.ID)
		}
	}
}

func TestCategorize_DueBeatsStruggling(t *testing.T) {
	q := reviewed("q", 5, 1, 1.3, daysAgo(2))
	q.StruggleCount = 9
	b := Categorize([]Question{q}, testNow)
	if len(b.ToReview) != 1 || len(b.Struggling) != 0 {
		t.Errorf("expected due question in ToReview only, got %d to review and %d struggling", len(b.ToReview), len(b.Struggling))
	}
}

func TestCategorize_ToReviewMostOverdueFirst(t *testing.T) {
	a := reviewed("a", 1, 1, 2.5, daysAgo(2))  // 1 day overdue
	b := reviewed("b", 1, 1, 2.5, daysAgo(11)) // 10 days overdue
	c := reviewed("c", 1, 1, 2.5, nil)         // never timestamped
	d := reviewed("d", 1, 6, 2.5, daysAgo(9))  // 3 days overdue

	got := Categorize([]Question{a, b, c, d}, testNow)
	if order := ids(got.ToReview); !reflect.DeepEqual(order, []string{"c", "b", "d", "a"}) {
		t.Errorf("ToReview order = %v, want [c b d a]", order)
	}

	for i := 1; i < len(got.ToReview); i++ {
		if OverdueDays(got.ToReview[i-1], testNow) < OverdueDays(got.ToReview[i], testNow) {
			t.Errorf("ToReview[%d] is less overdue than ToReview[%d]", i-1, i)
		}
	}
}

func TestBuckets_QueueOrder(t *testing.T) {
	b := Buckets{
		ToReview:   []Question{{ID: "r"}},
		Struggling: []Question{{ID: "s"}},
		New:        []Question{{ID: "n"}},
		Learning:   []Question{{ID: "l"}},
	}
	if got := ids(b.Queue()); !reflect.DeepEqual(got, []string{"r", "s", "n", "l"}) {
		t.Errorf("Queue() = %v, want [r s n l]", got)
	}
	if got := Counts(b)[BucketStruggling]; got != 1 {
		t.Errorf("Counts()[struggling] = %d, want 1", got)
	}
}
