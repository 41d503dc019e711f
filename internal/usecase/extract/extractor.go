package extract

import (
	"net/url"
	"strings"

	"follow-analyzer/internal/domain"
)

// Stats описывает, сколько контейнеров обработано при извлечении.
type Stats struct {
	Entries       int
	Extracted     int
	Skipped       int
	DateEstimated int
}

// Service извлекает записи пользователей из HTML выгрузки.
type Service struct {
	parser domain.MarkupParser
	dates  DateParser
	clock  domain.Clock
}

var _ domain.Extractor = (*Service)(nil)

// NewService создаёт экстрактор.
func NewService(parser domain.MarkupParser, dates DateParser, clock domain.Clock) *Service {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Service{parser: parser, dates: dates, clock: clock}
}

// Extract возвращает записи в порядке документа.
func (s *Service) Extract(markup string) []domain.UserRecord {
	records, _ := s.ExtractWithStats(markup)
	return records
}

// ExtractWithStats извлекает записи и считает пропущенные контейнеры.
// Контейнер без имени пользователя или без даты молча пропускается.
// Ошибка разбора документа даёт пустой результат.
func (s *Service) ExtractWithStats(markup string) ([]domain.UserRecord, Stats) {
	var stats Stats
	doc, err := s.parser.Parse(markup)
	if err != nil || doc == nil {
		return []domain.UserRecord{}, stats
	}
	entries := doc.Entries()
	stats.Entries = len(entries)
	now := s.clock.Now().UTC()

	records := make([]domain.UserRecord, 0, len(entries))
	for _, entry := range entries {
		href, _ := entry.ProfileLink()
		username := UsernameFromURL(href)
		dateText := strings.TrimSpace(entry.DateText())
		if username == "" || dateText == "" {
			stats.Skipped++
			continue
		}
		record := domain.UserRecord{Username: username, URL: href}
		if date, ok := s.dates.Parse(dateText); ok {
			record.Date = date
		} else {
			record.Date = now
			record.DateEstimated = true
			stats.DateEstimated++
		}
		records = append(records, record)
	}
	stats.Extracted = len(records)
	return records, stats
}

// UsernameFromURL возвращает последний сегмент пути ссылки на профиль.
func UsernameFromURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	path := href
	if u, err := url.Parse(href); err == nil {
		path = u.Path
		if u.Host == "" && u.Opaque != "" {
			path = u.Opaque
		}
	}
	path = strings.TrimRight(path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	return path
}
