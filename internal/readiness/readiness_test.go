package readiness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/store"
)

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func q(ease float64, lastReviewedDaysAgo int, topics ...string) srs.Question {
	question := srs.NewQuestion("", "u1", "Q", "")
	question.ReviewEase = ease
	question.Topics = topics
	if lastReviewedDaysAgo >= 0 {
		t := testNow.AddDate(0, 0, -lastReviewedDaysAgo)
		question.LastReviewed = &t
		question.ReviewCount = 1
	}
	return question
}

func TestEstimate_Empty(t *testing.T) {
	s := Estimate(Inputs{}, DefaultConfig(), testNow)
	assert.Equal(t, Score{}, s)
	assert.Equal(t, LevelNotReady, s.Level())
}

func TestEstimate_Breakdown(t *testing.T) {
	in := Inputs{
		Correct:   8,
		Incorrect: 2,
		Questions: []srs.Question{
			q(2.5, 0, "algorithms"),
			q(1.3, 10, "system-design"),
			q(2.5, -1, "go"),
			q(2.6, 20),
		},
	}

	s := Estimate(in, DefaultConfig(), testNow)

	// 80 - 1/4*30
	assert.InDelta(t, 72.5, s.Breakdown.Mastery, 1e-9)
	assert.InDelta(t, 80, s.Breakdown.Consistency, 1e-9)
	// algorithms and system-design out of three required.
	assert.InDelta(t, 200.0/3, s.Breakdown.Coverage, 1e-9)
	// avg days over reviewed questions (0, 10, 20) = 10.
	assert.InDelta(t, 100-10.0/30*100, s.Breakdown.Recency, 1e-9)
	// 29 + 24 + 13.33 + 6.67 = 73
	assert.Equal(t, 73, s.Overall)
	assert.Equal(t, LevelReady, s.Level())
}

func TestEstimate_MasteryFloorsAtZero(t *testing.T) {
	in := Inputs{Correct: 1, Incorrect: 9, Questions: []srs.Question{q(1.3, 1), q(1.4, 1)}}
	s := Estimate(in, DefaultConfig(), testNow)
	assert.Equal(t, 0.0, s.Breakdown.Mastery)
}

func TestEstimate_RecencyCapsAtHorizon(t *testing.T) {
	s := Estimate(Inputs{Questions: []srs.Question{q(2.5, 90)}}, DefaultConfig(), testNow)
	assert.Equal(t, 0.0, s.Breakdown.Recency)

	s = Estimate(Inputs{Questions: []srs.Question{q(2.5, 0)}}, DefaultConfig(), testNow)
	assert.Equal(t, 100.0, s.Breakdown.Recency)
}

func TestEstimate_NoRequiredTopics(t *testing.T) {
	s := Estimate(Inputs{Questions: []srs.Question{q(2.5, -1, "algorithms")}}, Config{}, testNow)
	assert.Equal(t, 0.0, s.Breakdown.Coverage)
}

func TestEstimate_CustomRequiredTopics(t *testing.T) {
	cfg := Config{RequiredTopics: []string{"go", "go", "kubernetes"}}
	s := Estimate(Inputs{Questions: []srs.Question{q(2.5, -1, "go")}}, cfg, testNow)
	assert.Equal(t, 50.0, s.Breakdown.Coverage)
}

func TestEstimate_AllSubScoresInRange(t *testing.T) {
	future := q(3.0, -1)
	ts := testNow.AddDate(0, 0, 5)
	future.LastReviewed = &ts

	inputs := []Inputs{
		{Correct: 100},
		{Incorrect: 100},
		{Correct: 5, Questions: []srs.Question{future}},
		{Correct: 3, Incorrect: 1, Questions: []srs.Question{q(1.3, 400, "algorithms", "data-structures", "system-design")}},
	}
	for _, in := range inputs {
		s := Estimate(in, DefaultConfig(), testNow)
		for _, v := range []float64{s.Breakdown.Mastery, s.Breakdown.Consistency, s.Breakdown.Coverage, s.Breakdown.Recency} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
		assert.GreaterOrEqual(t, s.Overall, 0)
		assert.LessOrEqual(t, s.Overall, 100)
	}
}

func TestScore_Level(t *testing.T) {
	assert.Equal(t, LevelNotReady, Score{Overall: 39}.Level())
	assert.Equal(t, LevelDeveloping, Score{Overall: 40}.Level())
	assert.Equal(t, LevelDeveloping, Score{Overall: 69}.Level())
	assert.Equal(t, LevelReady, Score{Overall: 70}.Level())
}

func TestService_Calculate(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := NewService(st, DefaultConfig()).WithClock(func() time.Time { return testNow })

	s, err := svc.Calculate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Overall)

	question := q(2.5, 0, "algorithms", "data-structures", "system-design")
	require.NoError(t, st.CreateQuestion(ctx, &question))
	require.NoError(t, st.RecordReview(ctx, store.Review{UserID: "u1", QuestionID: question.ID, Remembered: true, ReviewedAt: testNow}))

	s, err = svc.Calculate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Breakdown{Mastery: 100, Consistency: 100, Coverage: 100, Recency: 100}, s.Breakdown)
	assert.Equal(t, 100, s.Overall)
}
