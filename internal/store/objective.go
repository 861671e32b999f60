package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/prepdeck/internal/srs"
)

var objectiveColumns = []string{"id", "user_id", "name", "description", "created_at"}

// CreateObjective inserts o, assigning an ID and creation time when unset.
func (q *Queries) CreateObjective(ctx context.Context, o *Objective) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	o.CreatedAt = o.CreatedAt.UTC()

	ins := q.builder().Insert(TableObjectives).
		Columns(objectiveColumns...).
		Values(o.ID, o.UserID, o.Name, o.Description, o.CreatedAt)
	if _, err := q.exec(ctx, ins); err != nil {
		return wrapErr("create objective", err)
	}
	return nil
}

// GetObjective returns the objective id owned by userID.
func (q *Queries) GetObjective(ctx context.Context, userID, id string) (*Objective, error) {
	b := q.builder()
	sel := b.Select(objectiveColumns...).
		From(b.Table(TableObjectives)).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("user_id", userID),
		))

	var o Objective
	if err := q.get(ctx, &o, sel); err != nil {
		return nil, wrapErr("get objective", err)
	}
	return &o, nil
}

// ListObjectives returns userID's objectives, oldest first. An empty userID
// lists every user's objectives.
func (q *Queries) ListObjectives(ctx context.Context, userID string) ([]Objective, error) {
	b := q.builder()
	sel := b.Select(objectiveColumns...).
		From(b.Table(TableObjectives)).
		OrderBy("created_at", "id")
	if userID != "" {
		sel.Where(entsql.EQ("user_id", userID))
	}

	var out []Objective
	if err := q.selectAll(ctx, &out, sel); err != nil {
		return nil, wrapErr("list objectives", err)
	}
	return out, nil
}

// AddQuestionToObjective associates an existing question with an objective.
func (q *Queries) AddQuestionToObjective(ctx context.Context, objectiveID, questionID string) error {
	ins := q.builder().Insert(TableObjectiveQuestions).
		Columns("objective_id", "question_id").
		Values(objectiveID, questionID)
	if _, err := q.exec(ctx, ins); err != nil {
		return wrapErr("associate question", err)
	}
	return nil
}

// ObjectiveQuestions returns the questions associated with objectiveID,
// least recently reviewed first. Never-reviewed questions lead.
func (q *Queries) ObjectiveQuestions(ctx context.Context, objectiveID string) ([]srs.Question, error) {
	b := q.builder()
	qt := b.Table(TableQuestions)
	oq := b.Table(TableObjectiveQuestions)
	sel := b.Select(qt.Columns(questionColumns...)...).
		From(qt).
		Join(oq).
		On(qt.C("id"), oq.C("question_id")).
		Where(entsql.EQ(oq.C("objective_id"), objectiveID)).
		OrderBy(qt.C("created_at"), qt.C("id"))

	var rows []questionRow
	if err := q.selectAll(ctx, &rows, sel); err != nil {
		return nil, wrapErr("list objective questions", err)
	}
	questions, err := rowsToQuestions(rows)
	if err != nil {
		return nil, wrapErr("decode objective questions", err)
	}
	sortByLastReviewed(questions)
	return questions, nil
}

// ObjectiveWithQuestions loads an objective owned by userID together with its
// questions. Returns ErrNotFound when the objective is missing or foreign.
func (q *Queries) ObjectiveWithQuestions(ctx context.Context, userID, objectiveID string) (*Objective, []srs.Question, error) {
	o, err := q.GetObjective(ctx, userID, objectiveID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := q.ObjectiveQuestions(ctx, objectiveID)
	if err != nil {
		return nil, nil, err
	}
	return o, questions, nil
}

// CreateQuestionInObjective inserts q and associates it with objectiveID in
// one transaction. Either both rows exist afterwards or neither does.
func (s *Store) CreateQuestionInObjective(ctx context.Context, objectiveID string, q *srs.Question) error {
	return s.InTx(ctx, func(tx *Tx) error {
		if err := tx.CreateQuestion(ctx, q); err != nil {
			return err
		}
		return tx.AddQuestionToObjective(ctx, objectiveID, q.ID)
	})
}
