package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/prepdeck/internal/srs"
)

// AppendReview adds an entry to the review ledger.
func (q *Queries) AppendReview(ctx context.Context, r Review) error {
	ins := q.builder().Insert(TableReviews).
		Columns("user_id", "question_id", "remembered", "reviewed_at").
		Values(r.UserID, r.QuestionID, r.Remembered, r.ReviewedAt.UTC())
	if _, err := q.exec(ctx, ins); err != nil {
		return wrapErr("append review", err)
	}
	return nil
}

// ListReviews returns userID's ledger in chronological order.
func (q *Queries) ListReviews(ctx context.Context, userID string) ([]Review, error) {
	b := q.builder()
	sel := b.Select("id", "user_id", "question_id", "remembered", "reviewed_at").
		From(b.Table(TableReviews)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("reviewed_at", "id")

	var out []Review
	if err := q.selectAll(ctx, &out, sel); err != nil {
		return nil, wrapErr("list reviews", err)
	}
	for i := range out {
		out[i].ReviewedAt = out[i].ReviewedAt.UTC()
	}
	return out, nil
}

// GetMetrics returns userID's aggregate metrics, or ErrNotFound before the
// first review.
func (q *Queries) GetMetrics(ctx context.Context, userID string) (*ProgressMetrics, error) {
	b := q.builder()
	sel := b.Select("user_id", "total_questions", "correct_answers", "incorrect_answers", "last_reviewed_at").
		From(b.Table(TableProgressMetrics)).
		Where(entsql.EQ("user_id", userID))

	var m ProgressMetrics
	if err := q.get(ctx, &m, sel); err != nil {
		return nil, wrapErr("get metrics", err)
	}
	m.LastReviewedAt = m.LastReviewedAt.UTC()
	return &m, nil
}

// IncrementMetrics counts one review for userID, creating the metrics row on
// the first review.
func (q *Queries) IncrementMetrics(ctx context.Context, userID string, remembered bool, at time.Time) error {
	correct, incorrect := 0, 1
	if remembered {
		correct, incorrect = 1, 0
	}
	at = at.UTC()

	upd := q.builder().Update(TableProgressMetrics).
		Add("total_questions", 1).
		Add("correct_answers", correct).
		Add("incorrect_answers", incorrect).
		Set("last_reviewed_at", at).
		Where(entsql.EQ("user_id", userID))
	n, err := q.exec(ctx, upd)
	if err != nil {
		return wrapErr("update metrics", err)
	}
	if n > 0 {
		return nil
	}

	ins := q.builder().Insert(TableProgressMetrics).
		Columns("user_id", "total_questions", "correct_answers", "incorrect_answers", "last_reviewed_at").
		Values(userID, 1, correct, incorrect, at)
	if _, err := q.exec(ctx, ins); err != nil {
		return wrapErr("create metrics", err)
	}
	return nil
}

// RecordReview appends a ledger entry and counts it in userID's metrics in
// one transaction.
func (s *Store) RecordReview(ctx context.Context, r Review) error {
	return s.InTx(ctx, func(tx *Tx) error {
		if err := tx.AppendReview(ctx, r); err != nil {
			return err
		}
		return tx.IncrementMetrics(ctx, r.UserID, r.Remembered, r.ReviewedAt)
	})
}

// SaveReviewedQuestion writes question's new review state, appends the
// ledger entry and counts it in the metrics, all in one transaction.
func (s *Store) SaveReviewedQuestion(ctx context.Context, question srs.Question, r Review) error {
	return s.InTx(ctx, func(tx *Tx) error {
		if err := tx.UpdateQuestionState(ctx, question); err != nil {
			return err
		}
		if err := tx.AppendReview(ctx, r); err != nil {
			return err
		}
		return tx.IncrementMetrics(ctx, r.UserID, r.Remembered, r.ReviewedAt)
	})
}
