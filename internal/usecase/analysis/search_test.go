package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"follow-analyzer/internal/domain"
)

func TestSearchUsers(t *testing.T) {
	followers := []domain.UserRecord{user("anna", day1), user("annette", day2), user("boris", day3)}
	following := []domain.UserRecord{user("anna", day1), user("joanna", day2), user("boris", day3)}

	got := SearchUsers(followers, following, " ANN ")

	type hit struct {
		Username string
		Status   domain.RelationStatus
		Source   domain.ListType
	}
	hits := make([]hit, 0, len(got))
	for _, r := range got {
		hits = append(hits, hit{Username: r.Username, Status: r.Status, Source: r.Source})
	}
	want := []hit{
		{Username: "anna", Status: domain.StatusMutual, Source: domain.ListFollowers},
		{Username: "annette", Status: domain.StatusFollowerOnly, Source: domain.ListFollowers},
		{Username: "joanna", Status: domain.StatusFollowingOnly, Source: domain.ListFollowing},
	}
	if diff := cmp.Diff(want, hits); diff != "" {
		t.Fatalf("SearchUsers (-want +got):\n%s", diff)
	}
}

func TestSearchUsersNoMatches(t *testing.T) {
	got := SearchUsers([]domain.UserRecord{user("anna", day1)}, nil, "zzz")
	if got == nil || len(got) != 0 {
		t.Fatalf("ожидали пустой срез, получили %#v", got)
	}
}
