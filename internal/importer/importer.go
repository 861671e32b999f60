package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/prepdeck/internal/questiongen"
	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/store"
)

// CategoryImported is the category of imported questions without one.
const CategoryImported = "imported"

// Store is the persistence the importer needs.
type Store interface {
	CreateObjective(ctx context.Context, o *store.Objective) error
	ListObjectives(ctx context.Context, userID string) ([]store.Objective, error)
	ObjectiveQuestions(ctx context.Context, objectiveID string) ([]srs.Question, error)
	CreateQuestionInObjective(ctx context.Context, objectiveID string, q *srs.Question) error
}

// Result summarizes an import.
type Result struct {
	ObjectiveID      string
	CreatedObjective bool
	Imported         int
	Skipped          int
	Errors           []string
}

// Importer writes decks to storage.
type Importer struct {
	store Store
	log   logrus.FieldLogger
}

// New creates an Importer.
func New(st Store, log logrus.FieldLogger) *Importer {
	return &Importer{store: st, log: log}
}

// Import adds deck's questions to userID's objective named deck.Objective,
// creating the objective if needed. Questions whose content already exists in
// the objective are skipped. Each question is stored in its own transaction,
// so a failure leaves earlier questions in place.
func (im *Importer) Import(ctx context.Context, userID string, deck *Deck) (*Result, error) {
	name := strings.TrimSpace(deck.Objective)
	if name == "" {
		return nil, fmt.Errorf("deck has no objective name")
	}

	obj, created, err := im.objective(ctx, userID, name, deck.Description)
	if err != nil {
		return nil, err
	}
	res := &Result{ObjectiveID: obj.ID, CreatedObjective: created, Errors: []string{}}

	existing, err := im.store.ObjectiveQuestions(ctx, obj.ID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, q := range existing {
		seen[normalize(q.Content)] = true
	}

	for i, dq := range deck.Questions {
		content := strings.TrimSpace(dq.Content)
		if content == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("question %d: content is empty", i+1))
			continue
		}
		if seen[normalize(content)] {
			res.Skipped++
			continue
		}

		q := srs.NewQuestion("", userID, content, strings.TrimSpace(dq.Answer))
		q.Topics = questiongen.NormalizeTopics(dq.Topics)
		q.Category = strings.TrimSpace(dq.Category)
		if q.Category == "" {
			q.Category = CategoryImported
		}
		if d := strings.ToLower(strings.TrimSpace(dq.Difficulty)); d != "" {
			q.Difficulty = d
		}

		if err := im.store.CreateQuestionInObjective(ctx, obj.ID, &q); err != nil {
			return res, fmt.Errorf("question %d: %w", i+1, err)
		}
		seen[normalize(content)] = true
		res.Imported++
	}

	im.log.WithFields(logrus.Fields{
		"user_id":      userID,
		"objective_id": obj.ID,
		"imported":     res.Imported,
		"skipped":      res.Skipped,
	}).Info("deck imported")
	return res, nil
}

func (im *Importer) objective(ctx context.Context, userID, name, description string) (*store.Objective, bool, error) {
	objectives, err := im.store.ListObjectives(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	for _, o := range objectives {
		if strings.EqualFold(o.Name, name) {
			return &o, false, nil
		}
	}

	o := &store.Objective{UserID: userID, Name: name, Description: description}
	if err := im.store.CreateObjective(ctx, o); err != nil {
		return nil, false, err
	}
	return o, true, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
