package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается кэшем, если ключ отсутствует или истёк.
var ErrCacheMiss = errors.New("cache miss")

// MarkupParser разбирает HTML выгрузки в документ с записями.
// Конкретная библиотека разбора скрыта за этим интерфейсом.
type MarkupParser interface {
	Parse(markup string) (Document, error)
}

// Document описывает разобранную выгрузку.
type Document interface {
	// Entries возвращает контейнеры записей в порядке документа.
	Entries() []Entry
}

// Entry описывает один контейнер записи выгрузки.
type Entry interface {
	// ProfileLink возвращает href первой ссылки на платформу.
	ProfileLink() (string, bool)
	// DateText возвращает текст последнего текстового блока контейнера.
	DateText() string
}

// Clock отдаёт текущее время.
type Clock interface {
	Now() time.Time
}

// SystemClock реализует Clock через time.Now.
type SystemClock struct{}

// Now возвращает текущее время в UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Extractor извлекает записи из HTML выгрузки.
type Extractor interface {
	Extract(markup string) []UserRecord
}

// Cache используется для TTL-хранилища отчётов.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ReportService строит отчёты и отдаёт выборки из них.
type ReportService interface {
	AnalyzeDocuments(ctx context.Context, followersHTML, followingHTML string) (Report, error)
	Report(ctx context.Context, id string) (Report, error)
	Query(ctx context.Context, id string, q Query) ([]UserRecord, error)
	Search(ctx context.Context, id, term string) ([]SearchResult, error)
	Export(ctx context.Context, id string, q Query, now time.Time) (Export, error)
}
