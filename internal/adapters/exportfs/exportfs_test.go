package exportfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"follow-analyzer/internal/adapters/markup"
	"follow-analyzer/internal/usecase/extract"
)

func exportPage(title string, users ...string) string {
	page := `<html><head><title>` + title + `</title></head><body class="_5vb_ _2yq _a7o5"><div class="_3a6-"><main class="_a706" role="main">`
	for _, u := range users {
		page += `<div class="pam _3-95 _2ph- _a6-g uiBoxWhite noborder"><div class="_a6-p"><div><div>` +
			`<a target="_blank" href="https://www.instagram.com/` + u + `">` + u + `</a></div>` +
			`<div>Sep 24, 2025 1:44 am</div></div></div></div>`
	}
	return page + `</main></div></body></html>`
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadArchiveRoot(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, filepath.FromSlash(ConnectionsDir))
	writeFile(t, base, "followers_1.html", "<p>one</p>")
	writeFile(t, base, "followers_2.html", "<p>two</p>")
	writeFile(t, base, "followers_4.html", "<p>gap</p>")
	writeFile(t, base, "following.html", "<p>following</p>")

	docs, err := Load(root)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if docs.Followers != "<p>one</p><p>two</p>" {
		t.Fatalf("части должны склеиваться до первого пропуска, получили %q", docs.Followers)
	}
	if docs.Following != "<p>following</p>" {
		t.Fatalf("неожиданные подписки %q", docs.Following)
	}
	if len(docs.Files) != 3 {
		t.Fatalf("ожидали 3 файла, получили %v", docs.Files)
	}
}

func TestLoadConnectionsDirDirectly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "followers_1.html", "f")
	writeFile(t, dir, "following.html", "g")

	docs, err := Load(dir)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if docs.Followers != "f" || docs.Following != "g" {
		t.Fatalf("неожиданное содержимое: %+v", docs)
	}
}

func TestLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); !errors.Is(err, ErrNoFollowers) {
		t.Fatalf("ожидали ErrNoFollowers, получили %v", err)
	}
	writeFile(t, dir, "followers_1.html", "f")
	if _, err := Load(dir); !errors.Is(err, ErrNoFollowing) {
		t.Fatalf("ожидали ErrNoFollowing, получили %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.html", "content")
	got, err := ReadFile(filepath.Join(dir, "x.html"))
	if err != nil || got != "content" {
		t.Fatalf("ReadFile = %q, %v", got, err)
	}
	if _, err := ReadFile(filepath.Join(dir, "absent.html")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ожидали os.ErrNotExist, получили %v", err)
	}
}

func TestLoadMultipartExportExtractsAllParts(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, filepath.FromSlash(ConnectionsDir))
	writeFile(t, base, "followers_1.html", exportPage("Followers", "alice", "bob"))
	writeFile(t, base, "followers_2.html", exportPage("Followers", "carol", "dave"))
	writeFile(t, base, "following.html", exportPage("Following", "bob"))

	docs, err := Load(root)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}

	svc := extract.NewService(markup.NewGoquery("", ""), extract.NewDateParser(time.UTC), nil)
	var got []string
	for _, r := range svc.Extract(docs.Followers) {
		got = append(got, r.Username)
	}
	if diff := cmp.Diff([]string{"alice", "bob", "carol", "dave"}, got); diff != "" {
		t.Fatalf("подписчики из обеих частей (-want +got):\n%s", diff)
	}
}
