package domain

import "time"

// UserRecord описывает одну запись из списка подписчиков или подписок.
type UserRecord struct {
	Username string    `json:"username"`
	URL      string    `json:"url"`
	Date     time.Time `json:"date"`
	// DateEstimated выставляется, когда дату из выгрузки разобрать не удалось
	// и вместо неё подставлено время извлечения.
	DateEstimated bool `json:"date_estimated,omitempty"`
}

// Analysis содержит результат сопоставления подписчиков и подписок.
// Значение не изменяется после построения, пересчёт всегда создаёт новое.
type Analysis struct {
	MutualFollows             []UserRecord `json:"mutualFollows"`
	FollowingNotFollowingBack []UserRecord `json:"followingNotFollowingBack"`
	FollowersNotFollowingBack []UserRecord `json:"followersNotFollowingBack"`
	TotalFollowers            int          `json:"totalFollowers"`
	TotalFollowing            int          `json:"totalFollowing"`
	MutualCount               int          `json:"mutualCount"`
}

// RatioNotApplicable подставляется в DetailedStats.Ratio, если подписок нет.
const RatioNotApplicable = "N/A"

// DetailedStats расширяет Analysis производными показателями.
type DetailedStats struct {
	Analysis
	FollowBackRate float64 `json:"followBackRate"`
	FollowingRate  float64 `json:"followingRate"`
	Ratio          string  `json:"ratio"`
}

// Summary содержит компактную сводку для карточек статистики.
type Summary struct {
	TotalFollowers   int     `json:"totalFollowers"`
	TotalFollowing   int     `json:"totalFollowing"`
	MutualFollows    int     `json:"mutualFollows"`
	NotFollowingBack int     `json:"notFollowingBack"`
	NotFollowedBy    int     `json:"notFollowedBy"`
	FollowRatio      float64 `json:"followRatio"`
	MutualRatio      float64 `json:"mutualRatio"`
}

// Criteria задаёт фильтр по имени и датам. Нулевые From/To означают отсутствие границы.
type Criteria struct {
	Search string
	From   time.Time
	To     time.Time
}

// SearchResult описывает найденного пользователя и его статус относительно аккаунта.
type SearchResult struct {
	UserRecord
	Status RelationStatus `json:"status"`
	Source ListType       `json:"source"`
}

// Report объединяет исходные списки и результаты анализа одной пары выгрузок.
type Report struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	Followers []UserRecord `json:"followers"`
	Following []UserRecord `json:"following"`
	Analysis  Analysis     `json:"analysis"`
	Warnings  []string     `json:"warnings,omitempty"`
}

// List возвращает последовательность записей выбранного списка.
func (r Report) List(t ListType) []UserRecord {
	switch t {
	case ListFollowers:
		return r.Followers
	case ListFollowing:
		return r.Following
	case ListMutual:
		return r.Analysis.MutualFollows
	case ListNotFollowingBack:
		return r.Analysis.FollowingNotFollowingBack
	case ListFollowersNotFollowingBack:
		return r.Analysis.FollowersNotFollowingBack
	default:
		return nil
	}
}

// Query описывает выборку из отчёта: список, фильтр и сортировку.
type Query struct {
	List     ListType
	Criteria Criteria
	SortKey  SortKey
	Order    SortOrder
}

// Export содержит сериализованную выборку и имя файла для скачивания.
type Export struct {
	Filename string
	Data     []byte
}
