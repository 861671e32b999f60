package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// Objective is a named learning goal that groups questions.
type Objective struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// Review is one entry in the append-only review ledger.
type Review struct {
	ID         int64     `db:"id"`
	UserID     string    `db:"user_id"`
	QuestionID string    `db:"question_id"`
	Remembered bool      `db:"remembered"`
	ReviewedAt time.Time `db:"reviewed_at"`
}

// ProgressMetrics holds a user's running review totals.
type ProgressMetrics struct {
	UserID           string    `db:"user_id"`
	TotalQuestions   int       `db:"total_questions"`
	CorrectAnswers   int       `db:"correct_answers"`
	IncorrectAnswers int       `db:"incorrect_answers"`
	LastReviewedAt   time.Time `db:"last_reviewed_at"`
}

// TopicMastery is an externally computed mastery level for one topic.
type TopicMastery struct {
	UserID       string    `db:"user_id" json:"-"`
	Topic        string    `db:"topic" json:"topic"`
	MasteryLevel float64   `db:"mastery_level" json:"masteryLevel"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID           int64     `db:"id"`
	Timestamp    time.Time `db:"created_at"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
}

// LLMPurposeUsage aggregates token usage for one purpose.
type LLMPurposeUsage struct {
	Purpose      string `db:"purpose"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	AvgLatencyMs int64  `db:"avg_latency_ms"`
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string `db:"model"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
