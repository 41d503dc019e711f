package analysis

import (
	"sort"
	"strings"

	"follow-analyzer/internal/domain"
)

// Filter отбирает записи по подстроке имени (без учёта регистра) и
// включительному диапазону дат. Нулевые границы не применяются.
// Непустая подстрока применяется как есть, в том числе из одних пробелов.
func Filter(records []domain.UserRecord, c domain.Criteria) []domain.UserRecord {
	term := strings.ToLower(c.Search)
	out := make([]domain.UserRecord, 0, len(records))
	for _, r := range records {
		if term != "" && !strings.Contains(strings.ToLower(r.Username), term) {
			continue
		}
		if !c.From.IsZero() && r.Date.Before(c.From) {
			continue
		}
		if !c.To.IsZero() && r.Date.After(c.To) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort возвращает новую отсортированную копию записей.
// По возрастанию сортировка стабильна. По убыванию результат является
// точным разворотом сортировки по возрастанию.
func Sort(records []domain.UserRecord, key domain.SortKey, order domain.SortOrder) []domain.UserRecord {
	out := make([]domain.UserRecord, len(records))
	copy(out, records)

	var less func(a, b domain.UserRecord) bool
	switch key {
	case domain.SortByUsername:
		less = func(a, b domain.UserRecord) bool {
			return strings.ToLower(a.Username) < strings.ToLower(b.Username)
		}
	default:
		less = func(a, b domain.UserRecord) bool {
			return a.Date.Before(b.Date)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	if order == domain.OrderDesc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
