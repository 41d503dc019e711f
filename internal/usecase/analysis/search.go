package analysis

import (
	"strings"

	"follow-analyzer/internal/domain"
)

// SearchUsers ищет имя по подстроке в обоих списках и помечает статус связи.
// Совпадение из подписок пропускается, если то же имя уже найдено среди подписчиков.
func SearchUsers(followers, following []domain.UserRecord, term string) []domain.SearchResult {
	needle := strings.ToLower(strings.TrimSpace(term))
	followersSet := usernames(followers)
	followingSet := usernames(following)

	results := make([]domain.SearchResult, 0)
	matchedFollowers := make(map[string]struct{})
	for _, u := range followers {
		if !strings.Contains(strings.ToLower(u.Username), needle) {
			continue
		}
		matchedFollowers[u.Username] = struct{}{}
		status := domain.StatusFollowerOnly
		if _, ok := followingSet[u.Username]; ok {
			status = domain.StatusMutual
		}
		results = append(results, domain.SearchResult{UserRecord: u, Status: status, Source: domain.ListFollowers})
	}
	for _, u := range following {
		if !strings.Contains(strings.ToLower(u.Username), needle) {
			continue
		}
		if _, ok := matchedFollowers[u.Username]; ok {
			continue
		}
		status := domain.StatusFollowingOnly
		if _, ok := followersSet[u.Username]; ok {
			status = domain.StatusMutual
		}
		results = append(results, domain.SearchResult{UserRecord: u, Status: status, Source: domain.ListFollowing})
	}
	return results
}
