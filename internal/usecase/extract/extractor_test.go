package extract

import (
	"errors"
	"testing"
	"time"

	"follow-analyzer/internal/adapters/markup"
	"follow-analyzer/internal/domain"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubEntry struct {
	href     string
	hasLink  bool
	dateText string
}

func (e stubEntry) ProfileLink() (string, bool) { return e.href, e.hasLink }
func (e stubEntry) DateText() string            { return e.dateText }

type stubDocument []domain.Entry

func (d stubDocument) Entries() []domain.Entry { return d }

type stubParser struct {
	doc domain.Document
	err error
}

func (p stubParser) Parse(string) (domain.Document, error) { return p.doc, p.err }

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestService(parser domain.MarkupParser) *Service {
	return NewService(parser, NewDateParser(time.UTC), fixedClock{now: testNow})
}

const exportHTML = `<html><body><main>
<div class="pam _3-95 _2ph- _a6-g uiBoxWhite noborder"><div class="_a6-p"><div><div><a target="_blank" href="https://www.instagram.com/alice">alice</a></div><div>Sep 24, 2025 1:44 am</div></div></div></div>
<div class="pam _3-95 _2ph- _a6-g uiBoxWhite noborder"><div class="_a6-p"><div><div><a target="_blank" href="https://www.instagram.com/bob">bob</a></div><div>Aug 3, 2024 11:05 pm</div></div></div></div>
<div class="pam _3-95 _2ph- _a6-g uiBoxWhite noborder"><div class="_a6-p"><div><div><a target="_blank" href="https://www.instagram.com/alice">alice</a></div><div>Jan 5, 2023 7:00 am</div></div></div></div>
<div class="pam _3-95 _2ph- _a6-g uiBoxWhite noborder"><div class="_a6-p"><div><div>no link here</div><div>Jan 5, 2023 7:00 am</div></div></div></div>
</main></body></html>`

func TestExtractFromExportMarkup(t *testing.T) {
	svc := newTestService(markup.NewGoquery("", ""))
	records, stats := svc.ExtractWithStats(exportHTML)

	if len(records) != 3 {
		t.Fatalf("ожидали 3 записи, получили %d", len(records))
	}
	wantNames := []string{"alice", "bob", "alice"}
	for i, name := range wantNames {
		if records[i].Username != name {
			t.Fatalf("запись %d: ожидали %s, получили %s", i, name, records[i].Username)
		}
	}
	if records[0].URL != "https://www.instagram.com/alice" {
		t.Fatalf("ожидали полный href, получили %q", records[0].URL)
	}
	want := time.Date(2025, 9, 24, 1, 44, 0, 0, time.UTC)
	if !records[0].Date.Equal(want) {
		t.Fatalf("ожидали %s, получили %s", want, records[0].Date)
	}
	if want := time.Date(2024, 8, 3, 23, 5, 0, 0, time.UTC); !records[1].Date.Equal(want) {
		t.Fatalf("ожидали %s, получили %s", want, records[1].Date)
	}
	if stats.Entries != 4 || stats.Skipped != 1 || stats.Extracted != 3 || stats.DateEstimated != 0 {
		t.Fatalf("неожиданная статистика: %+v", stats)
	}
}

func TestExtractSkipsNoise(t *testing.T) {
	doc := stubDocument{
		stubEntry{href: "https://www.instagram.com/alice", hasLink: true, dateText: "2025-01-02"},
		stubEntry{dateText: "2025-01-02"},
		stubEntry{href: "https://www.instagram.com/bob", hasLink: true, dateText: "   "},
		stubEntry{href: "https://www.instagram.com/carol", hasLink: true, dateText: "Mar 1, 2024"},
	}
	records, stats := newTestService(stubParser{doc: doc}).ExtractWithStats("ignored")
	if len(records) != 2 {
		t.Fatalf("ожидали 2 записи, получили %d", len(records))
	}
	if records[0].Username != "alice" || records[1].Username != "carol" {
		t.Fatalf("нарушен порядок документа: %+v", records)
	}
	if stats.Skipped != 2 {
		t.Fatalf("ожидали 2 пропуска, получили %d", stats.Skipped)
	}
}

func TestExtractDateFallbackToNow(t *testing.T) {
	doc := stubDocument{
		stubEntry{href: "https://www.instagram.com/dave", hasLink: true, dateText: "yesterday-ish"},
	}
	records, stats := newTestService(stubParser{doc: doc}).ExtractWithStats("ignored")
	if len(records) != 1 {
		t.Fatalf("ожидали 1 запись, получили %d", len(records))
	}
	if !records[0].Date.Equal(testNow) {
		t.Fatalf("ожидали подстановку текущего времени, получили %s", records[0].Date)
	}
	if !records[0].DateEstimated {
		t.Fatalf("ожидали флаг DateEstimated")
	}
	if stats.DateEstimated != 1 {
		t.Fatalf("ожидали 1 оценённую дату, получили %d", stats.DateEstimated)
	}
}

func TestExtractParserFailureYieldsEmpty(t *testing.T) {
	records := newTestService(stubParser{err: errors.New("boom")}).Extract("<html>")
	if records == nil || len(records) != 0 {
		t.Fatalf("ожидали пустой срез (не nil), получили %#v", records)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	records := newTestService(markup.NewGoquery("", "")).Extract("")
	if len(records) != 0 {
		t.Fatalf("ожидали 0 записей, получили %d", len(records))
	}
}

func TestUsernameFromURL(t *testing.T) {
	cases := map[string]string{
		"https://www.instagram.com/alice":        "alice",
		"https://www.instagram.com/alice/":       "alice",
		"https://www.instagram.com/_u/bob":       "bob",
		"https://www.instagram.com/carol?hl=en":  "carol",
		"https://www.instagram.com/dave#profile": "dave",
		"https://www.instagram.com":              "",
		"":                                       "",
		"instagram.com/eve":                      "eve",
	}
	for input, want := range cases {
		if got := UsernameFromURL(input); got != want {
			t.Fatalf("UsernameFromURL(%q) = %q, want %q", input, got, want)
		}
	}
}
