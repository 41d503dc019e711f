package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnknownListType  = errors.New("unknown list type")
	ErrUnknownSortKey   = errors.New("unknown sort key")
	ErrUnknownSortOrder = errors.New("unknown sort order")
)

// ListType определяет, какой из списков отчёта выбран.
type ListType string

const (
	ListFollowers                 ListType = "followers"
	ListFollowing                 ListType = "following"
	ListMutual                    ListType = "mutual"
	ListNotFollowingBack          ListType = "not_following_back"
	ListFollowersNotFollowingBack ListType = "followers_not_following_back"
)

var listTypes = map[ListType]struct{}{
	ListFollowers:                 {},
	ListFollowing:                 {},
	ListMutual:                    {},
	ListNotFollowingBack:          {},
	ListFollowersNotFollowingBack: {},
}

// ParseListType приводит строку к ListType.
func ParseListType(s string) (ListType, error) {
	t := ListType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := listTypes[t]; !ok {
		return "", ErrUnknownListType
	}
	return t, nil
}

// SortKey задаёт поле сортировки.
type SortKey string

const (
	SortByUsername SortKey = "username"
	SortByDate     SortKey = "date"
)

// SortOrder задаёт направление сортировки.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortKey разбирает ключ сортировки. Пустая строка даёт значение по умолчанию.
func ParseSortKey(s string, def SortKey) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return def, nil
	case SortByUsername, SortByDate:
		return k, nil
	default:
		return "", ErrUnknownSortKey
	}
}

// ParseSortOrder разбирает направление сортировки. Пустая строка даёт значение по умолчанию.
func ParseSortOrder(s string, def SortOrder) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return def, nil
	case OrderAsc, OrderDesc:
		return o, nil
	default:
		return "", ErrUnknownSortOrder
	}
}

// RelationStatus описывает связь найденного пользователя с аккаунтом.
type RelationStatus string

const (
	StatusMutual        RelationStatus = "mutual"
	StatusFollowerOnly  RelationStatus = "follower_only"
	StatusFollowingOnly RelationStatus = "following_only"
)
