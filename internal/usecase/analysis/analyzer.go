package analysis

import "follow-analyzer/internal/domain"

// Analyze сопоставляет подписчиков и подписки по имени пользователя.
//
// Принадлежность проверяется по множеству уникальных имён, а разбиения
// сохраняют кратность: повторяющаяся запись классифицируется каждый раз
// отдельно и может попасть в разбиение несколько раз.
func Analyze(followers, following []domain.UserRecord) domain.Analysis {
	followersSet := usernames(followers)
	followingSet := usernames(following)

	mutual := make([]domain.UserRecord, 0, len(followers))
	followersOnly := make([]domain.UserRecord, 0)
	for _, f := range followers {
		if _, ok := followingSet[f.Username]; ok {
			mutual = append(mutual, f)
			continue
		}
		followersOnly = append(followersOnly, f)
	}

	followingOnly := make([]domain.UserRecord, 0)
	for _, f := range following {
		if _, ok := followersSet[f.Username]; !ok {
			followingOnly = append(followingOnly, f)
		}
	}

	return domain.Analysis{
		MutualFollows:             mutual,
		FollowingNotFollowingBack: followingOnly,
		FollowersNotFollowingBack: followersOnly,
		TotalFollowers:            len(followers),
		TotalFollowing:            len(following),
		MutualCount:               len(mutual),
	}
}

func usernames(records []domain.UserRecord) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, r := range records {
		set[r.Username] = struct{}{}
	}
	return set
}
