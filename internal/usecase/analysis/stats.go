package analysis

import (
	"fmt"
	"math"

	"follow-analyzer/internal/domain"
)

// DetailedStats дополняет анализ процентами взаимности и соотношением.
// Деление на ноль даёт 0 или domain.RatioNotApplicable.
func DetailedStats(a domain.Analysis) domain.DetailedStats {
	stats := domain.DetailedStats{Analysis: a, Ratio: domain.RatioNotApplicable}
	if a.TotalFollowers > 0 {
		stats.FollowBackRate = round(float64(a.MutualCount)/float64(a.TotalFollowers)*100, 2)
	}
	if a.TotalFollowing > 0 {
		stats.FollowingRate = round(float64(a.MutualCount)/float64(a.TotalFollowing)*100, 2)
		stats.Ratio = fmt.Sprintf("%.2f", float64(a.TotalFollowers)/float64(a.TotalFollowing))
	}
	return stats
}

// Summarize строит сводку для карточек статистики.
func Summarize(a domain.Analysis) domain.Summary {
	s := domain.Summary{
		TotalFollowers:   a.TotalFollowers,
		TotalFollowing:   a.TotalFollowing,
		MutualFollows:    a.MutualCount,
		NotFollowingBack: len(a.FollowingNotFollowingBack),
		NotFollowedBy:    len(a.FollowersNotFollowingBack),
	}
	if a.TotalFollowing > 0 {
		s.FollowRatio = round(float64(a.TotalFollowers)/float64(a.TotalFollowing), 2)
	}
	if a.TotalFollowers > 0 {
		s.MutualRatio = round(float64(a.MutualCount)/float64(a.TotalFollowers)*100, 1)
	}
	return s
}

func round(v float64, places int) float64 {
	pow := math.Pow10(places)
	return math.Round(v*pow) / pow
}
