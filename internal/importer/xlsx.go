package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxColumns is the required header row, in any order.
var xlsxColumns = []string{"content", "answer", "topics", "category", "difficulty"}

// ParseXLSX reads a deck from sheet of an XLSX workbook, or from the first
// sheet when sheet is empty. The first row is a header naming the columns
// content, answer, topics, category and difficulty; only content is
// required. The sheet name becomes the objective name.
func ParseXLSX(r io.Reader, sheet string) (*Deck, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["content"]; !ok {
		return nil, fmt.Errorf("sheet %q: header must include %q", sheet, "content")
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	deck := &Deck{Objective: sheet}
	for _, row := range rows[1:] {
		q := DeckQuestion{
			Content:    cell(row, "content"),
			Answer:     cell(row, "answer"),
			Category:   cell(row, "category"),
			Difficulty: cell(row, "difficulty"),
		}
		if t := cell(row, "topics"); t != "" {
			q.Topics = splitTopics(t)
		}
		if q.Content == "" && q.Answer == "" {
			continue
		}
		deck.Questions = append(deck.Questions, q)
	}
	return deck, nil
}

// WriteXLSXTemplate writes an empty workbook with the header row, for users
// to fill in.
func WriteXLSXTemplate(w io.Writer, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	header := make([]interface{}, len(xlsxColumns))
	for i, c := range xlsxColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
