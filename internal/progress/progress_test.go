package progress

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/store"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func setup(t *testing.T) (*Service, *store.Store, *testClock) {
	t.Helper()
	st, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := &testClock{now: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(st, WithClock(clock.Now), WithLogger(log)), st, clock
}

func createQuestion(t *testing.T, st *store.Store, userID, content string) srs.Question {
	t.Helper()
	q := srs.NewQuestion("", userID, content, "")
	require.NoError(t, st.CreateQuestion(context.Background(), &q))
	return q
}

func TestRecordReview_CreatesAndIncrementsMetrics(t *testing.T) {
	svc, st, clock := setup(t)
	ctx := context.Background()
	q := createQuestion(t, st, "u1", "What is DNS?")

	require.NoError(t, svc.RecordReview(ctx, "u1", q.ID, true))
	m, err := st.GetMetrics(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalQuestions)
	assert.Equal(t, 1, m.CorrectAnswers)
	assert.Equal(t, 0, m.IncorrectAnswers)
	assert.True(t, clock.now.Equal(m.LastReviewedAt))

	clock.now = clock.now.Add(time.Hour)
	require.NoError(t, svc.RecordReview(ctx, "u1", q.ID, false))
	m, err = st.GetMetrics(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalQuestions)
	assert.Equal(t, 1, m.IncorrectAnswers)
	assert.True(t, clock.now.Equal(m.LastReviewedAt))

	reviews, err := st.ListReviews(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestSubmitReview(t *testing.T) {
	svc, st, clock := setup(t)
	ctx := context.Background()
	q := createQuestion(t, st, "u1", "Explain TLS handshake")

	updated, err := svc.SubmitReview(ctx, "u1", q.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ReviewCount)
	assert.Equal(t, 1, updated.ReviewInterval)
	assert.InDelta(t, 2.6, updated.ReviewEase, 1e-9)

	stored, err := st.GetQuestion(ctx, "u1", q.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ReviewCount)
	require.NotNil(t, stored.LastReviewed)
	assert.True(t, clock.now.Equal(*stored.LastReviewed))

	clock.now = clock.now.AddDate(0, 0, 1)
	updated, err = svc.SubmitReview(ctx, "u1", q.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.StruggleCount)

	m, err := st.GetMetrics(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalQuestions)
	assert.Equal(t, 1, m.CorrectAnswers)
	assert.Equal(t, 1, m.IncorrectAnswers)

	reviews, err := st.ListReviews(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.True(t, reviews[0].Remembered)
	assert.False(t, reviews[1].Remembered)
}

func TestSubmitReview_NotFound(t *testing.T) {
	svc, st, _ := setup(t)
	q := createQuestion(t, st, "owner", "Q")

	_, err := svc.SubmitReview(context.Background(), "u1", q.ID, 80)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.SubmitReview(context.Background(), "owner", "missing", 80)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmitReview_RollsBackOnFailure(t *testing.T) {
	svc, st, _ := setup(t)
	ctx := context.Background()
	q := createQuestion(t, st, "u1", "Q")

	_, err := st.DB().ExecContext(ctx, "DROP TABLE "+store.TableProgressMetrics)
	require.NoError(t, err)

	_, err = svc.SubmitReview(ctx, "u1", q.ID, 95)
	var pe *store.PersistenceError
	require.ErrorAs(t, err, &pe)

	stored, err := st.GetQuestion(ctx, "u1", q.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ReviewCount, "question state must not change")
	assert.Nil(t, stored.LastReviewed)

	reviews, err := st.ListReviews(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, reviews, "ledger must not change")
}

func TestUserMetrics(t *testing.T) {
	svc, st, clock := setup(t)
	ctx := context.Background()

	fresh := createQuestion(t, st, "u1", "new")
	reviewed := createQuestion(t, st, "u1", "reviewed")
	createQuestion(t, st, "u2", "someone else")

	m, err := svc.UserMetrics(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Overall{}, m.Overall)
	assert.Len(t, m.NextReviewDates, 2)

	for i := 0; i < 3; i++ {
		_, err := svc.SubmitReview(ctx, "u1", reviewed.ID, 70)
		require.NoError(t, err)
	}
	require.NoError(t, svc.RecordReview(ctx, "u1", fresh.ID, false))

	m, err = svc.UserMetrics(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Overall{TotalQuestions: 4, CorrectAnswers: 3, IncorrectAnswers: 1, MasteryScore: 75}, m.Overall)
	assert.Equal(t, clock.now, m.NextReviewDates[fresh.ID], "never reviewed is due now")
	// Third pass gives ceil(6*2.5)=15 days.
	assert.Equal(t, clock.now.AddDate(0, 0, 15), m.NextReviewDates[reviewed.ID])
}

func TestAnalytics_NoMetrics(t *testing.T) {
	svc, st, clock := setup(t)
	require.NoError(t, st.SetTopicMastery(context.Background(), store.TopicMastery{UserID: "u1", Topic: "go", MasteryLevel: 40}))

	a, err := svc.Analytics(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, Overall{}, a.OverallProgress)
	assert.Empty(t, a.ProgressTrend)
	assert.Empty(t, a.RecentReviews)
	assert.Empty(t, a.TopicMastery)
	assert.NotNil(t, a.ProgressTrend)
	assert.Equal(t, clock.now, a.CalculatedAt)
}

func TestAnalytics(t *testing.T) {
	svc, st, clock := setup(t)
	ctx := context.Background()
	q := createQuestion(t, st, "u1", "Q")

	day1 := clock.now
	// Day 1: pass, fail. Day 2: pass, pass. Day 3: 12 fails.
	outcomes := []struct {
		at         time.Time
		remembered bool
	}{
		{day1, true},
		{day1.Add(time.Hour), false},
		{day1.AddDate(0, 0, 1), true},
		{day1.AddDate(0, 0, 1).Add(time.Hour), true},
	}
	for _, o := range outcomes {
		clock.now = o.at
		require.NoError(t, svc.RecordReview(ctx, "u1", q.ID, o.remembered))
	}
	for i := 0; i < 12; i++ {
		clock.now = day1.AddDate(0, 0, 2).Add(time.Duration(i) * time.Minute)
		require.NoError(t, svc.RecordReview(ctx, "u1", q.ID, false))
	}
	require.NoError(t, st.SetTopicMastery(ctx, store.TopicMastery{UserID: "u1", Topic: "networking", MasteryLevel: 62.5}))

	a, err := svc.Analytics(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, Overall{TotalQuestions: 16, CorrectAnswers: 3, IncorrectAnswers: 13, MasteryScore: 19}, a.OverallProgress)
	assert.Equal(t, []TrendPoint{
		{Date: "2025-04-01", Score: 50},
		{Date: "2025-04-02", Score: 75},
		{Date: "2025-04-03", Score: 19},
	}, a.ProgressTrend)

	require.Len(t, a.RecentReviews, RecentReviewLimit)
	assert.True(t, a.RecentReviews[0].ReviewedAt.After(a.RecentReviews[1].ReviewedAt), "newest first")
	assert.True(t, day1.AddDate(0, 0, 2).Add(11*time.Minute).Equal(a.RecentReviews[0].ReviewedAt))

	require.Len(t, a.TopicMastery, 1)
	assert.Equal(t, "networking", a.TopicMastery[0].Topic)
	assert.Equal(t, 62.5, a.TopicMastery[0].MasteryLevel)
}

func TestTrend_UsesUTCDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	reviews := []store.Review{
		// 2025-04-02 01:00 IST is still 2025-04-01 in UTC.
		{Remembered: true, ReviewedAt: time.Date(2025, 4, 2, 1, 0, 0, 0, ist)},
		{Remembered: false, ReviewedAt: time.Date(2025, 4, 1, 22, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, []TrendPoint{{Date: "2025-04-01", Score: 50}}, Trend(reviews))
}

func TestRecent(t *testing.T) {
	reviews := []store.Review{{QuestionID: "a"}, {QuestionID: "b"}, {QuestionID: "c"}}
	got := Recent(reviews, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].QuestionID)
	assert.Equal(t, "b", got[1].QuestionID)
	assert.Empty(t, Recent(nil, 10))
}
