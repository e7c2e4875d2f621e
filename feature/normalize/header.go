package normalize

import (
	"strings"

	"sheet-sync/core/dataset"
)

// CleanHeader turns a worksheet header cell into a column name: lower case,
// spaces replaced with underscores, apostrophes removed, trimmed.
func CleanHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "'", "")
	return strings.TrimSpace(h)
}

// kindOf infers a column kind from its cleaned name.
func (n *Normalizer) kindOf(name string) dataset.Kind {
	switch {
	case name == n.opts.DeletedColumn,
		strings.HasPrefix(name, "is_"),
		strings.HasPrefix(name, "has_"):
		return dataset.KindBool
	case strings.Contains(name, "date"):
		return dataset.KindDate
	default:
		return dataset.KindString
	}
}

// buildSchema cleans the header and returns the schema together with the
// source position of each schema column. Columns with a blank header are
// dropped.
func (n *Normalizer) buildSchema(header []string) (*dataset.Schema, []int, []string, error) {
	cols := make([]dataset.Column, 0, len(header))
	positions := make([]int, 0, len(header))
	var dropped []string
	for i, h := range header {
		name := CleanHeader(h)
		if name == "" {
			dropped = append(dropped, columnLetter(i))
			continue
		}
		cols = append(cols, dataset.Column{Name: name, Kind: n.kindOf(name)})
		positions = append(positions, i)
	}

	schema, err := dataset.NewSchema(cols)
	if err != nil {
		return nil, nil, nil, err
	}
	return schema, positions, dropped, nil
}

// columnLetter returns the spreadsheet letter of a zero-based column.
func columnLetter(i int) string {
	letters := ""
	for i >= 0 {
		letters = string(rune('A'+i%26)) + letters
		i = i/26 - 1
	}
	return letters
}
