package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"follow-analyzer/internal/domain"
)

const (
	DefaultContainerClass = "_a6-g"
	DefaultProfileDomain  = "instagram.com"
)

// GoqueryParser реализует domain.MarkupParser поверх goquery.
type GoqueryParser struct {
	containerSelector string
	linkSelector      string
}

var _ domain.MarkupParser = (*GoqueryParser)(nil)

// NewGoquery создаёт парсер для класса контейнера и домена платформы.
// Пустые значения заменяются значениями по умолчанию.
func NewGoquery(containerClass, profileDomain string) *GoqueryParser {
	containerClass = strings.TrimPrefix(strings.TrimSpace(containerClass), ".")
	if containerClass == "" {
		containerClass = DefaultContainerClass
	}
	profileDomain = strings.Trim(strings.TrimSpace(profileDomain), `"'`)
	if profileDomain == "" {
		profileDomain = DefaultProfileDomain
	}
	return &GoqueryParser{
		containerSelector: "." + containerClass,
		linkSelector:      fmt.Sprintf(`a[href*=%q]`, profileDomain),
	}
}

// Parse разбирает HTML и собирает контейнеры записей.
func (p *GoqueryParser) Parse(markup string) (domain.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var entries []domain.Entry
	doc.Find(p.containerSelector).Each(func(_ int, sel *goquery.Selection) {
		entries = append(entries, entry{sel: sel, linkSelector: p.linkSelector})
	})
	return document(entries), nil
}

type document []domain.Entry

func (d document) Entries() []domain.Entry {
	return d
}

type entry struct {
	sel          *goquery.Selection
	linkSelector string
}

func (e entry) ProfileLink() (string, bool) {
	return e.sel.Find(e.linkSelector).First().Attr("href")
}

func (e entry) DateText() string {
	return e.sel.Find("div").Last().Text()
}
