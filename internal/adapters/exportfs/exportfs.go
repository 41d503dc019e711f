// Package exportfs читает HTML-файлы связей из распакованного архива выгрузки.
package exportfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConnectionsDir содержит списки подписчиков и подписок внутри архива.
const ConnectionsDir = "connections/followers_and_following"

const (
	followersPattern = "followers_%d.html"
	followingFile    = "following.html"
)

// ErrNoFollowers возвращается, если в каталоге нет followers_1.html.
var ErrNoFollowers = errors.New("в выгрузке нет файла followers_1.html")

// ErrNoFollowing возвращается, если в каталоге нет following.html.
var ErrNoFollowing = errors.New("в выгрузке нет файла following.html")

// Documents содержит HTML обоих списков.
type Documents struct {
	Followers string
	Following string
	// Files перечисляет прочитанные файлы в порядке чтения.
	Files []string
}

// Load читает выгрузку из dir. dir может указывать как на корень архива,
// так и сразу на каталог followers_and_following.
// Части followers_2.html, followers_3.html и далее склеиваются по порядку.
func Load(dir string) (Documents, error) {
	base := resolveBase(dir)

	var docs Documents
	var followers strings.Builder
	for i := 1; ; i++ {
		path := filepath.Join(base, fmt.Sprintf(followersPattern, i))
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			if i == 1 {
				return Documents{}, fmt.Errorf("%s: %w", base, ErrNoFollowers)
			}
			break
		}
		if err != nil {
			return Documents{}, fmt.Errorf("чтение %s: %w", path, err)
		}
		followers.Write(data)
		docs.Files = append(docs.Files, path)
	}
	docs.Followers = followers.String()

	path := filepath.Join(base, followingFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Documents{}, fmt.Errorf("%s: %w", base, ErrNoFollowing)
	}
	if err != nil {
		return Documents{}, fmt.Errorf("чтение %s: %w", path, err)
	}
	docs.Following = string(data)
	docs.Files = append(docs.Files, path)
	return docs, nil
}

// ReadFile читает один HTML-файл выгрузки.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("чтение %s: %w", path, err)
	}
	return string(data), nil
}

func resolveBase(dir string) string {
	nested := filepath.Join(dir, filepath.FromSlash(ConnectionsDir))
	if info, err := os.Stat(nested); err == nil && info.IsDir() {
		return nested
	}
	return dir
}
