package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "created_at", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

// AppendLLMRequest records an LLM API call event.
func (q *Queries) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	ins := q.builder().Insert(TableLLMRequestEvents).
		Columns(llmEventColumns[1:]...).
		Values(
			time.Now().UTC(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		)
	if _, err := q.exec(ctx, ins); err != nil {
		return wrapErr("save LLM request event", err)
	}
	return nil
}

// QueryLLMEvents returns LLM events newest first, filtered by opts.
func (q *Queries) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	b := q.builder()
	sel := b.Select(llmEventColumns...).
		From(b.Table(TableLLMRequestEvents)).
		OrderBy(entsql.Desc("id"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("id", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("id", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UTC()))
	}
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var out []LLMRequestEvent
	if err := q.selectAll(ctx, &out, sel); err != nil {
		return nil, wrapErr("query LLM events", err)
	}
	return out, nil
}

// GetLLMEvent returns a single LLM event by id.
func (q *Queries) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error) {
	b := q.builder()
	sel := b.Select(llmEventColumns...).
		From(b.Table(TableLLMRequestEvents)).
		Where(entsql.EQ("id", id))

	var e LLMRequestEvent
	if err := q.get(ctx, &e, sel); err != nil {
		return nil, wrapErr("get LLM event", err)
	}
	return &e, nil
}

// LLMUsageByPurpose aggregates calls and tokens per purpose.
func (q *Queries) LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error) {
	b := q.builder()
	sel := b.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Sum("latency_ms"), "total_latency_ms"),
	).
		From(b.Table(TableLLMRequestEvents)).
		GroupBy("purpose").
		OrderBy("purpose")

	var rows []struct {
		LLMPurposeUsage
		TotalLatencyMs int64 `db:"total_latency_ms"`
	}
	if err := q.selectAll(ctx, &rows, sel); err != nil {
		return nil, wrapErr("query LLM usage by purpose", err)
	}

	out := make([]LLMPurposeUsage, 0, len(rows))
	for _, r := range rows {
		u := r.LLMPurposeUsage
		if u.Calls > 0 {
			u.AvgLatencyMs = r.TotalLatencyMs / int64(u.Calls)
		}
		out = append(out, u)
	}
	return out, nil
}

// LLMUsageByModel aggregates calls and tokens per model.
func (q *Queries) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	b := q.builder()
	sel := b.Select(
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
	).
		From(b.Table(TableLLMRequestEvents)).
		GroupBy("model").
		OrderBy("model")

	var out []LLMModelUsage
	if err := q.selectAll(ctx, &out, sel); err != nil {
		return nil, wrapErr("query LLM usage by model", err)
	}
	return out, nil
}

// PruneLLMEvents deletes events recorded before cutoff and returns how many
// were removed.
func (q *Queries) PruneLLMEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	del := q.builder().Delete(TableLLMRequestEvents).
		Where(entsql.LT("created_at", cutoff.UTC()))
	n, err := q.exec(ctx, del)
	if err != nil {
		return 0, wrapErr("prune LLM events", err)
	}
	return n, nil
}
