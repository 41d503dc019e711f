package extract

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// exportLayouts перечисляет форматы дат, встречающиеся в выгрузках.
// Строка приводится к нижнему регистру до разбора, поэтому используется "pm".
var exportLayouts = []string{
	"Jan 2, 2006 3:04 pm",
	"Jan 2, 2006, 3:04 pm",
	"Jan 2, 2006 3:04:05 pm",
	"January 2, 2006 3:04 pm",
	"January 2, 2006, 3:04 pm",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// DateParser переводит человекочитаемую дату выгрузки в момент времени.
type DateParser struct {
	loc *time.Location
}

// NewDateParser создаёт парсер, трактующий даты без зоны в указанной локации.
func NewDateParser(loc *time.Location) DateParser {
	if loc == nil {
		loc = time.UTC
	}
	return DateParser{loc: loc}
}

// Parse разбирает строку: сначала ISO и известные форматы выгрузки, затем dateparse.
func (p DateParser) Parse(raw string) (time.Time, bool) {
	value := normalizeDate(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, value, p.loc); err == nil {
			return t.UTC(), true
		}
	}
	lower := strings.ToLower(value)
	for _, layout := range exportLayouts {
		if t, err := time.ParseInLocation(layout, lower, p.loc); err == nil {
			return t.UTC(), true
		}
	}
	t, err := dateparse.ParseIn(value, p.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func normalizeDate(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
