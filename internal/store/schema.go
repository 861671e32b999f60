package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	TableObjectives         = "objectives"
	TableQuestions          = "questions"
	TableObjectiveQuestions = "objective_questions"
	TableReviews            = "reviews"
	TableProgressMetrics    = "progress_metrics"
	TableUserTopics         = "user_topics"
	TableLLMRequestEvents   = "llm_request_events"
)

const textSize = 2147483647

var (
	objectivesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Size: textSize},
		{Name: "created_at", Type: field.TypeTime},
	}
	objectivesTable = &schema.Table{
		Name:       TableObjectives,
		Columns:    objectivesColumns,
		PrimaryKey: []*schema.Column{objectivesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "objectives_user_id", Columns: []*schema.Column{objectivesColumns[1]}},
		},
	}

	questionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "content", Type: field.TypeString, Size: textSize},
		{Name: "answer", Type: field.TypeString, Size: textSize},
		{Name: "topics", Type: field.TypeString, Size: textSize},
		{Name: "category", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "review_count", Type: field.TypeInt},
		{Name: "review_interval", Type: field.TypeInt},
		{Name: "review_ease", Type: field.TypeFloat64},
		{Name: "struggle_count", Type: field.TypeInt},
		{Name: "last_reviewed", Type: field.TypeTime, Nullable: true},
		{Name: "last_struggled_at", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	questionsTable = &schema.Table{
		Name:       TableQuestions,
		Columns:    questionsColumns,
		PrimaryKey: []*schema.Column{questionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "questions_user_id", Columns: []*schema.Column{questionsColumns[1]}},
		},
	}

	objectiveQuestionsColumns = []*schema.Column{
		{Name: "objective_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
	}
	objectiveQuestionsTable = &schema.Table{
		Name:       TableObjectiveQuestions,
		Columns:    objectiveQuestionsColumns,
		PrimaryKey: []*schema.Column{objectiveQuestionsColumns[0], objectiveQuestionsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "objective_questions_objective_id",
				Columns:    []*schema.Column{objectiveQuestionsColumns[0]},
				RefColumns: []*schema.Column{objectivesColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "objective_questions_question_id",
				Columns:    []*schema.Column{objectiveQuestionsColumns[1]},
				RefColumns: []*schema.Column{questionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	reviewsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "remembered", Type: field.TypeBool},
		{Name: "reviewed_at", Type: field.TypeTime},
	}
	reviewsTable = &schema.Table{
		Name:       TableReviews,
		Columns:    reviewsColumns,
		PrimaryKey: []*schema.Column{reviewsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "reviews_question_id",
				Columns:    []*schema.Column{reviewsColumns[2]},
				RefColumns: []*schema.Column{questionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "reviews_user_id_reviewed_at", Columns: []*schema.Column{reviewsColumns[1], reviewsColumns[4]}},
		},
	}

	progressMetricsColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString, Unique: true},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "correct_answers", Type: field.TypeInt},
		{Name: "incorrect_answers", Type: field.TypeInt},
		{Name: "last_reviewed_at", Type: field.TypeTime},
	}
	progressMetricsTable = &schema.Table{
		Name:       TableProgressMetrics,
		Columns:    progressMetricsColumns,
		PrimaryKey: []*schema.Column{progressMetricsColumns[0]},
	}

	userTopicsColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "mastery_level", Type: field.TypeFloat64},
		{Name: "updated_at", Type: field.TypeTime},
	}
	userTopicsTable = &schema.Table{
		Name:       TableUserTopics,
		Columns:    userTopicsColumns,
		PrimaryKey: []*schema.Column{userTopicsColumns[0], userTopicsColumns[1]},
	}

	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: textSize},
		{Name: "request_body", Type: field.TypeString, Size: textSize},
		{Name: "response_body", Type: field.TypeString, Size: textSize},
	}
	llmRequestEventsTable = &schema.Table{
		Name:       TableLLMRequestEvents,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llm_request_events_created_at", Columns: []*schema.Column{llmRequestEventsColumns[1]}},
			{Name: "llm_request_events_purpose", Columns: []*schema.Column{llmRequestEventsColumns[4]}},
		},
	}

	tables = []*schema.Table{
		objectivesTable,
		questionsTable,
		objectiveQuestionsTable,
		reviewsTable,
		progressMetricsTable,
		userTopicsTable,
		llmRequestEventsTable,
	}
)

func init() {
	objectiveQuestionsTable.ForeignKeys[0].RefTable = objectivesTable
	objectiveQuestionsTable.ForeignKeys[1].RefTable = questionsTable
	reviewsTable.ForeignKeys[0].RefTable = questionsTable
}

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
