package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SetTopicMastery stores the externally computed mastery level for a topic,
// replacing any previous value.
func (q *Queries) SetTopicMastery(ctx context.Context, tm TopicMastery) error {
	if tm.UpdatedAt.IsZero() {
		tm.UpdatedAt = time.Now()
	}
	at := tm.UpdatedAt.UTC()

	upd := q.builder().Update(TableUserTopics).
		Set("mastery_level", tm.MasteryLevel).
		Set("updated_at", at).
		Where(entsql.And(
			entsql.EQ("user_id", tm.UserID),
			entsql.EQ("topic", tm.Topic),
		))
	n, err := q.exec(ctx, upd)
	if err != nil {
		return wrapErr("update topic mastery", err)
	}
	if n > 0 {
		return nil
	}

	ins := q.builder().Insert(TableUserTopics).
		Columns("user_id", "topic", "mastery_level", "updated_at").
		Values(tm.UserID, tm.Topic, tm.MasteryLevel, at)
	if _, err := q.exec(ctx, ins); err != nil {
		return wrapErr("create topic mastery", err)
	}
	return nil
}

// ListTopicMastery returns userID's topic mastery rows ordered by topic.
func (q *Queries) ListTopicMastery(ctx context.Context, userID string) ([]TopicMastery, error) {
	b := q.builder()
	sel := b.Select("user_id", "topic", "mastery_level", "updated_at").
		From(b.Table(TableUserTopics)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("topic")

	var out []TopicMastery
	if err := q.selectAll(ctx, &out, sel); err != nil {
		return nil, wrapErr("list topic mastery", err)
	}
	return out, nil
}
