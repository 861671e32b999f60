// Package importer loads decks of hand-written questions into an objective.
// Decks come as YAML documents or XLSX sheets.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Deck is a set of questions for one objective.
type Deck struct {
	Objective   string         `yaml:"objective"`
	Description string         `yaml:"description"`
	Questions   []DeckQuestion `yaml:"questions"`
}

// DeckQuestion is one authored question.
type DeckQuestion struct {
	Content    string   `yaml:"content"`
	Answer     string   `yaml:"answer"`
	Topics     []string `yaml:"topics"`
	Category   string   `yaml:"category"`
	Difficulty string   `yaml:"difficulty"`
}

// ParseYAML decodes a YAML deck.
func ParseYAML(r io.Reader) (*Deck, error) {
	var d Deck
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode yaml deck: %w", err)
	}
	return &d, nil
}

// ReadFile reads a deck from path, picking the format from the extension.
// For XLSX files the objective name defaults to the first sheet's name.
func ReadFile(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(f)
	case ".xlsx":
		return ParseXLSX(f, "")
	default:
		return nil, fmt.Errorf("unsupported deck format %q", ext)
	}
}

// splitTopics parses a comma-separated topic cell.
func splitTopics(cell string) []string {
	return lo.Map(strings.Split(cell, ","), func(t string, _ int) string {
		return strings.TrimSpace(t)
	})
}
