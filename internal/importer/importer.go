// Package importer reads vocabulary words from uploaded spreadsheets
package importer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/amiramtracker/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// Column layout of an import workbook. Row 1 is a header.
const (
	englishColumn = 0
	hebrewColumn  = 1
	startRow      = 2
)

// MaxWordLength matches the vocab_words column width
const MaxWordLength = 255

// ParseResult holds the words read from a workbook together with per-row outcomes
type ParseResult struct {
	Words     []models.VocabWord
	Processed int
	Skipped   int
	Errors    []string
}

// ParseVocabWorkbook reads the first sheet of an .xlsx workbook.
// Column A holds the English word and column B the Hebrew word.
// Blank rows are ignored; rows missing one side or longer than MaxWordLength are skipped and reported.
func ParseVocabWorkbook(r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", models.ErrValidation, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", models.ErrValidation)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ParseResult{
		Words:  make([]models.VocabWord, 0, len(rows)),
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		rowNumber := i + 1
		if rowNumber < startRow {
			continue
		}

		english := cell(row, englishColumn)
		hebrew := cell(row, hebrewColumn)
		if english == "" && hebrew == "" {
			continue
		}

		result.Processed++
		switch {
		case english == "":
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: English word is empty", rowNumber))
		case hebrew == "":
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Hebrew word is empty", rowNumber))
		case utf8.RuneCountInString(english) > MaxWordLength:
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: English word is too long", rowNumber))
		case utf8.RuneCountInString(hebrew) > MaxWordLength:
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Hebrew word is too long", rowNumber))
		default:
			result.Words = append(result.Words, models.VocabWord{
				EnglishWord: english,
				HebrewWord:  hebrew,
			})
		}
	}

	return result, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
