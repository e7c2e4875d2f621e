package normalize

import (
	"strings"
	"time"

	"sheet-sync/core/dataset"

	"github.com/spf13/cast"
)

// dateLayouts are tried in order before falling back to cast.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// parseCell converts one raw cell into a value of the column kind. Blank
// cells and values that cannot be parsed become nil. Text is kept as is
// unless trim is set.
func parseCell(kind dataset.Kind, raw string, trim bool) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	switch kind {
	case dataset.KindDate:
		if d, ok := parseDate(s); ok {
			return d
		}
		return nil
	case dataset.KindBool:
		if b, ok := parseBool(s); ok {
			return b
		}
		return nil
	default:
		if trim {
			return s
		}
		return raw
	}
}

// parseDate returns the calendar date of s at UTC midnight.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDate(t), true
		}
	}
	if t, err := cast.ToTimeE(s); err == nil {
		return truncateDate(t), true
	}
	return time.Time{}, false
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	}
	b, err := cast.ToBoolE(s)
	if err != nil {
		return false, false
	}
	return b, true
}
