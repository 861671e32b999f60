package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/prepdeck/internal/srs"
)

var questionColumns = []string{
	"id", "user_id", "content", "answer", "topics", "category", "difficulty",
	"review_count", "review_interval", "review_ease", "struggle_count",
	"last_reviewed", "last_struggled_at", "created_at",
}

// questionRow is the storage shape of srs.Question.
type questionRow struct {
	ID              string       `db:"id"`
	UserID          string       `db:"user_id"`
	Content         string       `db:"content"`
	Answer          string       `db:"answer"`
	Topics          string       `db:"topics"`
	Category        string       `db:"category"`
	Difficulty      string       `db:"difficulty"`
	ReviewCount     int          `db:"review_count"`
	ReviewInterval  int          `db:"review_interval"`
	ReviewEase      float64      `db:"review_ease"`
	StruggleCount   int          `db:"struggle_count"`
	LastReviewed    sql.NullTime `db:"last_reviewed"`
	LastStruggledAt sql.NullTime `db:"last_struggled_at"`
	CreatedAt       time.Time    `db:"created_at"`
}

func (r questionRow) toQuestion() (srs.Question, error) {
	q := srs.Question{
		ID:             r.ID,
		UserID:         r.UserID,
		Content:        r.Content,
		Answer:         r.Answer,
		Category:       r.Category,
		Difficulty:     r.Difficulty,
		ReviewCount:    r.ReviewCount,
		ReviewInterval: r.ReviewInterval,
		ReviewEase:     r.ReviewEase,
		StruggleCount:  r.StruggleCount,
		CreatedAt:      r.CreatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(r.Topics), &q.Topics); err != nil {
		return q, fmt.Errorf("question %s topics: %w", r.ID, err)
	}
	if q.Topics == nil {
		q.Topics = []string{}
	}
	if r.LastReviewed.Valid {
		t := r.LastReviewed.Time.UTC()
		q.LastReviewed = &t
	}
	if r.LastStruggledAt.Valid {
		t := r.LastStruggledAt.Time.UTC()
		q.LastStruggledAt = &t
	}
	return q, nil
}

func rowsToQuestions(rows []questionRow) ([]srs.Question, error) {
	out := make([]srs.Question, 0, len(rows))
	for _, r := range rows {
		q, err := r.toQuestion()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func encodeTopics(topics []string) (string, error) {
	b, err := json.Marshal(lo.Uniq(lo.Compact(topics)))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// sortByLastReviewed orders questions by last review time, never-reviewed
// first. Ties keep their existing order.
func sortByLastReviewed(qs []srs.Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		a, b := qs[i].LastReviewed, qs[j].LastReviewed
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
}

// CreateQuestion inserts q, assigning an ID and creation time when unset.
func (q *Queries) CreateQuestion(ctx context.Context, question *srs.Question) error {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}
	question.CreatedAt = question.CreatedAt.UTC()
	if question.ReviewEase == 0 {
		question.ReviewEase = srs.DefaultEase
	}
	if question.Topics == nil {
		question.Topics = []string{}
	}

	topics, err := encodeTopics(question.Topics)
	if err != nil {
		return wrapErr("encode topics", err)
	}

	ins := q.builder().Insert(TableQuestions).
		Columns(questionColumns...).
		Values(
			question.ID, question.UserID, question.Content, question.Answer, topics,
			question.Category, question.Difficulty,
			question.ReviewCount, question.ReviewInterval, question.ReviewEase, question.StruggleCount,
			nullTime(question.LastReviewed), nullTime(question.LastStruggledAt), question.CreatedAt,
		)
	if _, err := q.exec(ctx, ins); err != nil {
		return wrapErr("create question", err)
	}
	return nil
}

// GetQuestion returns question id owned by userID.
func (q *Queries) GetQuestion(ctx context.Context, userID, id string) (*srs.Question, error) {
	b := q.builder()
	sel := b.Select(questionColumns...).
		From(b.Table(TableQuestions)).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("user_id", userID),
		))

	var row questionRow
	if err := q.get(ctx, &row, sel); err != nil {
		return nil, wrapErr("get question", err)
	}
	question, err := row.toQuestion()
	if err != nil {
		return nil, wrapErr("decode question", err)
	}
	return &question, nil
}

// ListQuestions returns every question owned by userID, oldest first.
func (q *Queries) ListQuestions(ctx context.Context, userID string) ([]srs.Question, error) {
	b := q.builder()
	sel := b.Select(questionColumns...).
		From(b.Table(TableQuestions)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("created_at", "id")

	var rows []questionRow
	if err := q.selectAll(ctx, &rows, sel); err != nil {
		return nil, wrapErr("list questions", err)
	}
	questions, err := rowsToQuestions(rows)
	if err != nil {
		return nil, wrapErr("decode questions", err)
	}
	return questions, nil
}

// UpdateQuestionState writes the review state fields of question.
func (q *Queries) UpdateQuestionState(ctx context.Context, question srs.Question) error {
	upd := q.builder().Update(TableQuestions).
		Set("review_count", question.ReviewCount).
		Set("review_interval", question.ReviewInterval).
		Set("review_ease", question.ReviewEase).
		Set("struggle_count", question.StruggleCount).
		Set("last_reviewed", nullTime(question.LastReviewed)).
		Set("last_struggled_at", nullTime(question.LastStruggledAt)).
		Where(entsql.And(
			entsql.EQ("id", question.ID),
			entsql.EQ("user_id", question.UserID),
		))

	n, err := q.exec(ctx, upd)
	if err != nil {
		return wrapErr("update question", err)
	}
	if n == 0 {
		return fmt.Errorf("update question %s: %w", question.ID, ErrNotFound)
	}
	return nil
}
